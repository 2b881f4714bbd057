package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

// Request wraps http.Request with decoding helpers for inbound handlers.
type Request struct {
	*http.Request
}

func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	v, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid path parameter " + key)
	}
	return v, nil
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt returns 0 when the query is absent.
func (r *Request) GetQueryInt(key string) (int, error) {
	q := r.GetQuery(key)
	if q == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(q)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid query " + key)
	}
	return v, nil
}

func (r *Request) GetHeader(key string) string {
	return strings.TrimSpace(r.Header.Get(key))
}

// DecodeBody decodes exactly one JSON value into dst, rejecting unknown
// fields.
func (r *Request) DecodeBody(dst any) error {
	if r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// File is an uploaded file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 { return int64(len(f.Data)) }

// ReadSingleFile reads the multipart part named field. The content type is
// sniffed from the bytes, not taken from the client.
func (r *Request) ReadSingleFile(field string, maxBytes int64) (File, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return File{}, goerror.NewInvalidFormat("Invalid request content-type")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return File{}, goerror.NewInvalidFormat()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return File{}, goerror.NewInvalidInput(nil, field, field+" is required")
		}
		if err != nil {
			return File{}, goerror.NewInvalidFormat()
		}

		if part.FormName() != field {
			_ = drain(part)
			continue
		}

		return readPart(part, field, maxBytes)
	}
}

func readPart(part *multipart.Part, field string, maxBytes int64) (File, error) {
	defer part.Close()

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(part, maxBytes+1))
	if err != nil {
		return File{}, goerror.NewInvalidFormat()
	}
	if n > maxBytes {
		return File{}, goerror.NewInvalidInput(nil, field, "file exceeds "+strconv.FormatInt(maxBytes, 10)+" bytes")
	}
	if n == 0 {
		return File{}, goerror.NewInvalidInput(nil, field, field+" is empty")
	}

	return File{
		Name:        part.FileName(),
		ContentType: http.DetectContentType(buf.Bytes()),
		Data:        buf.Bytes(),
	}, nil
}

func drain(part *multipart.Part) error {
	defer part.Close()
	_, err := io.Copy(io.Discard, part)
	return err
}
