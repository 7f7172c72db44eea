package api

import (
	"errors"
	"net/http"

	"fitnessmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation_error"
	KindForbidden        Kind = "forbidden"
	KindUnauthorized     Kind = "unauthorized"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindConflict         Kind = "conflict"
	KindInvalidDate      Kind = "invalid_date"
	KindInvalidSchedule  Kind = "invalid_schedule"
)

// Error is a client-facing failure. Domain packages declare their sentinel
// errors as *Error values so handlers can map them with RespondError.
type Error struct {
	Kind    Kind
	Message string
	Detail  string

	base *Error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// Is matches copies made by WithDetail against their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.base != nil && e.base == t
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetail returns a copy of e carrying detail.
func (e *Error) WithDetail(detail string) *Error {
	base := e
	if e.base != nil {
		base = e.base
	}
	return &Error{Kind: e.Kind, Message: e.Message, Detail: detail, base: base}
}

func NotFound(message string) *Error   { return NewError(KindNotFound, message) }
func Validation(message string) *Error { return NewError(KindValidation, message) }
func Forbidden(message string) *Error  { return NewError(KindForbidden, message) }
func Conflict(message string) *Error   { return NewError(KindConflict, message) }

func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindInvalidDate, KindInvalidSchedule:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindCapacityExceeded, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// RespondError writes err as a JSON error body. Errors that are not *Error
// are logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	var e *Error
	if errors.As(err, &e) {
		c.JSON(e.Kind.Status(), ErrorResponse{Error: e.Message, Detail: e.Detail})
		return
	}

	logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
