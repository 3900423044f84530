package transport

import (
	"errors"
	"net/http"

	"github.com/rpggio/cookbook/internal/domain/entry"
	"github.com/rpggio/cookbook/internal/domain/name"
	"github.com/rpggio/cookbook/internal/domain/summary"
)

// Error codes carried in the X-Error-Code header.
const (
	CodeInput      = "INPUT_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeLookup     = "LOOKUP_ERROR"
	CodeGraph      = "GRAPH_ERROR"
	CodeRateLimit  = "RATE_LIMIT_EXCEEDED"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrInvalidBody indicates a request body that is not the expected JSON.
var ErrInvalidBody = errors.New("invalid request body")

// APIError is the client-facing form of an error.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// MapError classifies err. Errors caused by the caller map to 400 with the
// error text as the reason; anything else is an internal error.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidBody),
		errors.Is(err, name.ErrUnparseable):
		return badRequest(CodeInput, err)
	case errors.Is(err, entry.ErrInvalidType),
		errors.Is(err, entry.ErrInvalidName),
		errors.Is(err, entry.ErrNegativeCookTime),
		errors.Is(err, entry.ErrDuplicateName),
		errors.Is(err, entry.ErrInvalidRequiredItems):
		return badRequest(CodeValidation, err)
	case errors.Is(err, entry.ErrEntryNotFound),
		errors.Is(err, summary.ErrRecipeNotFound),
		errors.Is(err, summary.ErrDependencyNotFound):
		return badRequest(CodeLookup, err)
	case errors.Is(err, summary.ErrCyclicDependency),
		errors.Is(err, summary.ErrDepthExceeded),
		errors.Is(err, summary.ErrQuantityOverflow):
		return badRequest(CodeGraph, err)
	default:
		return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal error"}
	}
}

func badRequest(code string, err error) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: err.Error()}
}
