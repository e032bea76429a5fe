package types

import "fmt"

// I/O operations named by IOError.
const (
	OperationRead  = "read"
	OperationWrite = "write"
	OperationCopy  = "copy"
	OperationWalk  = "walk"
	OperationMkdir = "mkdir"
)

// PatternError reports pattern text that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (patternError *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", patternError.Pattern, patternError.Err)
}

func (patternError *PatternError) Unwrap() error {
	return patternError.Err
}

// IOError reports a read, write, or copy failure together with the offending path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (ioError *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", ioError.Op, ioError.Path, ioError.Err)
}

func (ioError *IOError) Unwrap() error {
	return ioError.Err
}

// SerializationError reports a failure to encode structured output.
type SerializationError struct {
	Format string
	Err    error
}

func (serializationError *SerializationError) Error() string {
	return fmt.Sprintf("encoding %s output: %v", serializationError.Format, serializationError.Err)
}

func (serializationError *SerializationError) Unwrap() error {
	return serializationError.Err
}

// ValidationError reports user input rejected before it reaches a core component.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", validationError.Field, validationError.Value, validationError.Reason)
}
