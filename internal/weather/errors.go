package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema matches every *SchemaError.
	ErrSchema = errors.New("forecast payload does not match schema")

	errNoFeatures = errors.New("feature collection is empty")
)

// SchemaError reports a payload that does not have the expected structure.
// Err is the underlying decoding error, unchanged.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSchema, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func schemaErrorf(format string, args ...any) error {
	return &SchemaError{Err: fmt.Errorf(format, args...)}
}
