// Package rbac builds the casbin enforcer that guards admin operations.
// Subjects are role names taken from the access token.
package rbac

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// DefaultRules are used when configuration provides none. Admins inherit
// every user permission.
var DefaultRules = []string{
	"p, user, booking, create",
	"p, user, booking, mine",
	"p, user, media, upload",
	"p, admin, booking, *",
	"g, admin, user",
}

// New builds an in-memory enforcer from casbin CSV style rules
// ("p, sub, obj, act" or "g, member, role").
func New(rules []string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if len(rules) == 0 {
		rules = DefaultRules
	}

	for _, line := range rules {
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		switch {
		case fields[0] == "p" && len(fields) == 4:
			_, err = e.AddPolicy(fields[1], fields[2], fields[3])
		case fields[0] == "g" && len(fields) == 3:
			_, err = e.AddGroupingPolicy(fields[1], fields[2])
		default:
			err = fmt.Errorf("rbac: malformed rule %q", line)
		}
		if err != nil {
			return nil, err
		}
	}

	return e, nil
}
