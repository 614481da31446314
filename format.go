// FILE: lixenwraith/typedconfig/format.go
package typedconfig

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// FormatValue renders v, a value of the type described by d, into the token
// vocabulary accepted by ParseValue.
func FormatValue(d *Descriptor, v reflect.Value) (string, error) {
	switch d.Kind {
	case KindString:
		return v.String(), nil
	case KindInt:
		return strconv.FormatInt(v.Int(), 10), nil
	case KindUint:
		return strconv.FormatUint(v.Uint(), 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, d.Type.Bits()), nil
	case KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case KindNone:
		return "none", nil
	case KindLiteral:
		return FormatValue(d.Elems[0], v)
	case KindDuration:
		return time.Duration(v.Int()).String(), nil
	case KindText:
		if m, ok := v.Interface().(encoding.TextMarshaler); ok {
			text, err := m.MarshalText()
			if err != nil {
				return "", fmt.Errorf("failed to format %s: %w", d, err)
			}
			return string(text), nil
		}
		return fmt.Sprint(v.Interface()), nil

	case KindUnion:
		if d.Type.Kind() == reflect.Pointer {
			if v.IsNil() {
				return "none", nil
			}
			return FormatValue(d.Elems[1], v.Elem())
		}
		i, held, ok := v.Interface().(unionType).held()
		if !ok {
			return "", fmt.Errorf("%w: %s holds no value", ErrValue, d)
		}
		hv := reflect.ValueOf(held)
		if !hv.IsValid() {
			hv = reflect.Zero(d.Elems[i].Type)
		}
		return FormatValue(d.Elems[i], hv)

	case KindTuple:
		var items []reflect.Value
		if d.Type.Kind() == reflect.Array {
			for i := 0; i < v.Len(); i++ {
				items = append(items, v.Index(i))
			}
		} else {
			for _, item := range v.Interface().(tupleType).values() {
				items = append(items, reflect.ValueOf(item))
			}
		}
		parts := make([]string, len(items))
		for i, item := range items {
			elem := d.Elems[0]
			if !d.Variadic {
				elem = d.Elems[i]
			}
			s, err := FormatValue(elem, item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, ",") + ")", nil

	default:
		return "", schemaError(d, d.reason)
	}
}

// Format renders a record into key=value tokens in schema order.
// An unset optional record renders as name=none. Parsing the result with
// Parse yields an equal record.
func Format(record any) ([]string, error) {
	args, err := formatArgs(record)
	if err != nil {
		return nil, err
	}
	tokens := make([]string, len(args))
	for i, a := range args {
		tokens[i] = a.String()
	}
	return tokens, nil
}

func formatArgs(record any) ([]RawArg, error) {
	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot format nil %T", record)
		}
		rv = rv.Elem()
	}
	s, err := SchemaOf(rv.Type())
	if err != nil {
		return nil, err
	}
	return s.format(rv, "")
}

func (s *Schema) format(rv reflect.Value, prefix string) ([]RawArg, error) {
	var args []RawArg
	for _, f := range s.Fields {
		fv := rv.FieldByIndex(f.Index)
		if f.Desc.Kind == KindRecord {
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					args = append(args, RawArg{Key: prefix + f.Name, Value: "none"})
					continue
				}
				fv = fv.Elem()
			}
			sub, err := f.Desc.Record.format(fv, prefix+f.Name+".")
			if err != nil {
				return nil, err
			}
			args = append(args, sub...)
			continue
		}
		text, err := FormatValue(f.Desc, fv)
		if err != nil {
			return nil, fmt.Errorf("field %s%s: %w", prefix, f.Name, err)
		}
		args = append(args, RawArg{Key: prefix + f.Name, Value: text})
	}
	return args, nil
}
