package errors

import (
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Err        error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so callers can compare
// against the catalogue values after details have been attached.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails returns a copy of e with details attached. The catalogue
// values are shared and must never be mutated.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e carrying cause.
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.Err = cause
	return &cp
}

// MissingColumn reports a table without the named column.
func MissingColumn(column string) *AppError {
	return ErrMissingColumn.WithDetails(map[string]interface{}{"column": column})
}

// OverlayUnreadable reports an overlay file that could not be read or parsed.
func OverlayUnreadable(path string, cause error) *AppError {
	return ErrOverlayUnreadable.
		WithDetails(map[string]interface{}{"path": path}).
		Wrap(cause)
}

// InvalidObservation reports a row whose cell could not be used.
func InvalidObservation(row int, column string) *AppError {
	return ErrInvalidObservation.WithDetails(map[string]interface{}{
		"row":    row,
		"column": column,
	})
}
