package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

// ValidationError is a rejected user answer: non-numeric, negative or empty.
type ValidationError struct {
	ErrorMessage
}

// MalformedRecordError means a stored profile record could not be decoded.
type MalformedRecordError struct {
	ErrorMessage
	Field string
}

type UnknownCategoryError struct {
	ErrorMessage
	Category string
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMalformedRecordError(field, reason string) *MalformedRecordError {
	return &MalformedRecordError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("malformed profile record: %s %s", field, reason)},
		Field:        field,
	}
}

func NewUnknownCategoryError(category string) *UnknownCategoryError {
	return &UnknownCategoryError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("unknown expense category %q", category)},
		Category:     category,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service, message string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}
