// FILE: lixenwraith/typedconfig/errors.go
package typedconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrValue reports a raw string that does not match the grammar of its declared type.
	ErrValue = errors.New("invalid value")
	// ErrSchema reports a declared type the parser cannot satisfy with any string.
	ErrSchema = errors.New("unsupported type")
	// ErrUnknownField reports a key with no matching field or nested record.
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingField reports required fields that were never supplied.
	ErrMissingField = errors.New("missing required field")
	// ErrArgFormat reports a token that is not a well-formed key=value pair.
	ErrArgFormat = errors.New("malformed argument")
	// ErrConfigNotFound is returned when the configured file does not exist. It is not fatal.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrCLIParse wraps token splitting failures of command-line arguments.
	ErrCLIParse = errors.New("failed to parse command-line arguments")
)

// FieldError is the single failure type of the parser and assembler.
// Kind is one of ErrValue, ErrSchema, ErrUnknownField or ErrMissingField.
type FieldError struct {
	Kind     error
	Record   reflect.Type // record type whose field failed, nil for bare ParseValue calls
	Path     []string     // field path from the top-level record
	Value    string       // offending raw value, value errors only
	Expected *Descriptor  // descriptor the value was checked against
	Missing  []string     // dotted paths of unbound required fields
	Reason   string
	Err      error // underlying cause
}

func (e *FieldError) Error() string {
	path := e.PathString()
	var msg string
	switch e.Kind {
	case ErrValue:
		if path == "" {
			msg = fmt.Sprintf("could not parse %q as '%s'", e.Value, e.Expected)
		} else {
			msg = fmt.Sprintf("could not parse argument '%s=%s' as '%s'", path, e.Value, e.Expected)
		}
	case ErrSchema:
		target := path
		if e.Record != nil {
			target = recordName(e.Record) + "." + path
		}
		target = strings.TrimSuffix(target, ".")
		if target == "" {
			msg = fmt.Sprintf("unknown type '%s'", e.Expected)
		} else {
			msg = fmt.Sprintf("argument '%s' has unknown type '%s'", target, e.Expected)
		}
	case ErrUnknownField:
		msg = fmt.Sprintf("unknown argument '%s'", path)
		if e.Record != nil {
			msg += " for " + recordName(e.Record)
		}
	case ErrMissingField:
		quoted := make([]string, len(e.Missing))
		for i, m := range e.Missing {
			quoted[i] = "'" + m + "'"
		}
		msg = "missing required argument(s)"
		if e.Record != nil {
			msg += " for " + recordName(e.Record)
		}
		msg += ": " + strings.Join(quoted, ", ")
	default:
		msg = fmt.Sprintf("argument '%s': %v", path, e.Kind)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap exposes the kind sentinel and the underlying cause to errors.Is/As.
func (e *FieldError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// PathString returns the dotted field path.
func (e *FieldError) PathString() string {
	return strings.Join(e.Path, ".")
}

// within prefixes the error path with an enclosing field name. Missing paths
// are prefixed too so nested failures report the full dotted path.
func (e *FieldError) within(field string, record reflect.Type) *FieldError {
	e.Path = append([]string{field}, e.Path...)
	for i, m := range e.Missing {
		e.Missing[i] = field + "." + m
	}
	e.Record = record
	return e
}

func valueError(d *Descriptor, raw string, cause error) *FieldError {
	return &FieldError{Kind: ErrValue, Value: raw, Expected: d, Err: cause}
}

func schemaError(d *Descriptor, reason string) *FieldError {
	return &FieldError{Kind: ErrSchema, Expected: d, Reason: reason}
}

func recordName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
