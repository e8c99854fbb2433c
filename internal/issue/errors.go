package issue

import "fmt"

// ValidationError reports a submission with a required field absent or empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

// ServerError wraps any failure that happened after validation passed. The
// image may already be on disk when it is returned.
type ServerError struct {
	Err error
}

func (e *ServerError) Error() string {
	return "issue report failed: " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
