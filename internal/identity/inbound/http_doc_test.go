package inbound

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	routeRe = regexp.MustCompile(`r\.(?:(GET|POST|PUT|PATCH|DELETE)\(|Public\(http\.Method(\w+), )"([^"]+)", end\.(\w+)\)`)
	paramRe = regexp.MustCompile(`:(\w+)`)
)

// Every registered route carries an API doc block whose @Router line matches
// the registration.
func TestHTTPEndpoint_RouterAnnotations(t *testing.T) {
	src, err := os.ReadFile("http.go")
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "http_endpoint.go", nil, parser.ParseComments)
	require.NoError(t, err)

	docs := map[string]string{}
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if ok && fn.Recv != nil && fn.Doc != nil {
			docs[fn.Name.Name] = fn.Doc.Text()
		}
	}

	routes := routeRe.FindAllStringSubmatch(string(src), -1)
	require.NotEmpty(t, routes)

	for _, m := range routes {
		method := strings.ToLower(m[1] + m[2])
		path := paramRe.ReplaceAllString(m[3], "{$1}")
		handler := m[4]

		doc, ok := docs[handler]
		if !assert.True(t, ok, "%s has no doc comment", handler) {
			continue
		}
		assert.Contains(t, doc, "@Summary ", handler)
		assert.Contains(t, doc, "@Router "+path+" ["+method+"]", handler)
	}
}
