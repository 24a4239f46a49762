// Package errors renders registry failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ProblemDetail is the application/problem+json body.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with an additional extension property. The
// receiver's extension map is never mutated.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Kind classifies a failure the way the registry reports it.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindValidation
	KindConflict
	KindNotFound
	// KindReferential is a souvenir pointing at a manufacturer that does not exist.
	KindReferential
)

const (
	TypeInternal      = "/problems/internal-error"
	TypeBadRequest    = "/problems/bad-request"
	TypeValidation    = "/problems/validation-error"
	TypeConflict      = "/problems/conflict"
	TypeNotFound      = "/problems/not-found"
	TypeUnprocessable = "/problems/unprocessable-entity"
)

var templates = map[Kind]ProblemDetail{
	KindInternal:    {Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError},
	KindBadRequest:  {Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest},
	KindValidation:  {Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest},
	KindConflict:    {Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict},
	KindNotFound:    {Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound},
	KindReferential: {Type: TypeUnprocessable, Title: "Unprocessable Entity", Status: http.StatusUnprocessableEntity},
}

// Problem returns the document for kind. Unknown kinds render as internal
// errors.
func Problem(kind Kind, detail string) ProblemDetail {
	template, ok := templates[kind]
	if !ok {
		template = templates[KindInternal]
	}
	return template.WithDetail(detail)
}

// NewValidationProblem lists every failed rule, in the order the validator
// reported them, under extensions.errors.
func NewValidationProblem(messages []string) ProblemDetail {
	return Problem(KindValidation, strings.Join(messages, " ")).
		WithExtension("errors", messages)
}
