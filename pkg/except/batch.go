package except

import (
	"fmt"
	"strings"
)

type BatchError interface {
	error
	Reason() ErrorReason
	Add(err error)
	Len() int
	// ErrorOrNil returns nil when nothing was added.
	ErrorOrNil() error
}

func NewBatchError(msg string, args ...interface{}) BatchError {
	return &batchError{
		Message:      fmt.Sprintf(msg, args...),
		Errors:       []error{},
		ErrorStrings: []string{},
	}
}

type batchError struct {
	Message      string
	Errors       []error
	ErrorStrings []string
}

func (b *batchError) Len() int {
	return len(b.Errors)
}

// Reason is the shared reason of every added error, or InternalError when
// they disagree.
func (b *batchError) Reason() ErrorReason {
	if len(b.Errors) == 0 {
		return ErrInternalError
	}
	r := Reason(b.Errors[0])
	for _, err := range b.Errors[1:] {
		if Reason(err) != r {
			return ErrInternalError
		}
	}
	return r
}

func (b *batchError) Error() string {
	return b.Message + ":\n" + strings.Join(b.ErrorStrings, "\n")
}

func (b *batchError) Add(err error) {
	b.Errors = append(b.Errors, err)
	b.ErrorStrings = append(b.ErrorStrings, err.Error())
}

func (b *batchError) ErrorOrNil() error {
	if b.Len() == 0 {
		return nil
	}
	return b
}
