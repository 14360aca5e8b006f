package except

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type ErrorReason string

const (
	ErrNotFound      ErrorReason = "NotFound"
	ErrInternalError ErrorReason = "InternalError"
	ErrUnsupported   ErrorReason = "Unsupported"
	ErrInvalid       ErrorReason = "Invalid"
	ErrParse         ErrorReason = "Parse"
)

type routemapError struct {
	Reason  ErrorReason
	Message string
}

func (s *routemapError) Error() string {
	return s.Message
}

// Reason returns the ErrorReason of err, looking through any pkg/errors
// wrapping. Errors that did not originate from NewError are internal.
func Reason(err error) ErrorReason {
	if err != nil {
		switch v := errors.Cause(err).(type) {
		case *routemapError:
			return v.Reason
		case BatchError:
			return v.Reason()
		}
	}
	return ErrInternalError
}

func Is(err error, reason ErrorReason) bool {
	return err != nil && Reason(err) == reason
}

func ToHttpStatus(err error) int {
	switch Reason(err) {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUnsupported, ErrInvalid, ErrParse:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NewError(msg string, reason ErrorReason, args ...interface{}) error {
	return &routemapError{
		Reason:  reason,
		Message: fmt.Sprintf(msg, args...),
	}
}
