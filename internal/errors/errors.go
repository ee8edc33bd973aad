// Package errors provides sentinel errors and error types for seer-inspect.
// It defines the decode failure taxonomy and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrUnknownVariant indicates an enumeration ordinal outside its defined range.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrFieldNotFound indicates a named field is absent on a raw value.
	ErrFieldNotFound = errors.New("field not found")

	// ErrDataIntegrity indicates occupancy bitboards that contradict each other.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrNotInteger indicates a raw value that cannot be coerced to an integer.
	ErrNotInteger = errors.New("not an integer")

	// ErrNotOptional indicates a raw value without a present/absent tag.
	ErrNotOptional = errors.New("not an optional value")

	// ErrIndexOutOfRange indicates an array index past the end of a raw array.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownSymbol indicates an expression naming a value absent from the snapshot.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrBadExpression indicates a malformed expression string.
	ErrBadExpression = errors.New("malformed expression")

	// ErrNoPrinter indicates no registered printer matches a type name.
	ErrNoPrinter = errors.New("no printer for type")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSnapshotNotFound indicates a snapshot missing from the archive.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// DecodeError wraps errors with decode context: the domain type being decoded
// and the field path inside the raw value. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type DecodeError struct {
	Err  error  // The underlying error
	Type string // Domain type being decoded, e.g. "ChessBoard"
	Path string // Field path inside the raw value, e.g. "piece_occupancy[2].__0"
}

// Error returns a formatted error message including all available context.
func (e *DecodeError) Error() string {
	var parts []string

	if e.Type != "" {
		parts = append(parts, "decoding "+e.Type)
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("at %s", e.Path))
	}

	context := strings.Join(parts, " ")
	if context == "" {
		context = "decode"
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the DecodeError wrapper.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoding wraps err in a DecodeError for the given type and path.
// A nil err yields nil. A nested DecodeError is flattened: its path is appended
// to path and the outer type wins.
func Decoding(err error, typeName, path string) error {
	if err == nil {
		return nil
	}
	var inner *DecodeError
	if errors.As(err, &inner) {
		path = JoinPath(path, inner.Path)
		err = inner.Err
	}
	return &DecodeError{Err: err, Type: typeName, Path: path}
}

// JoinPath appends a field path segment to a prefix, without a dot before
// index segments such as "[2]".
func JoinPath(prefix, segment string) string {
	switch {
	case prefix == "":
		return segment
	case segment == "":
		return prefix
	case strings.HasPrefix(segment, "["):
		return prefix + segment
	default:
		return prefix + "." + segment
	}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
