package store

import "fmt"

// FieldError reports an input field a store refused to accept.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldName implements httperr.FieldError.
func (e *FieldError) FieldName() string {
	return e.Field
}

func invalidField(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
