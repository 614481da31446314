// FILE: lixenwraith/typedconfig/value.go
package typedconfig

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ParseValue parses raw into a value of the type described by d.
//
// Failures are *FieldError values: ErrValue when raw does not match the
// grammar of d, ErrSchema when d itself cannot be parsed from any string.
func ParseValue(d *Descriptor, raw string) (reflect.Value, error) {
	switch d.Kind {
	case KindString:
		return reflect.ValueOf(raw).Convert(d.Type), nil

	case KindInt:
		i, err := strconv.ParseInt(raw, 10, d.Type.Bits())
		if err != nil {
			return reflect.Value{}, valueError(d, raw, err)
		}
		v := reflect.New(d.Type).Elem()
		v.SetInt(i)
		return v, nil

	case KindUint:
		u, err := strconv.ParseUint(raw, 10, d.Type.Bits())
		if err != nil {
			return reflect.Value{}, valueError(d, raw, err)
		}
		v := reflect.New(d.Type).Elem()
		v.SetUint(u)
		return v, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, d.Type.Bits())
		if err != nil {
			return reflect.Value{}, valueError(d, raw, err)
		}
		v := reflect.New(d.Type).Elem()
		v.SetFloat(f)
		return v, nil

	case KindBool:
		var b bool
		switch raw {
		case "true", "True":
			b = true
		case "false", "False":
			b = false
		default:
			return reflect.Value{}, valueError(d, raw, nil)
		}
		return reflect.ValueOf(b).Convert(d.Type), nil

	case KindUnion:
		return parseUnion(d, raw)

	case KindTuple:
		return parseTuple(d, raw)

	case KindNone:
		if isNone(raw) {
			return reflect.ValueOf(None{}), nil
		}
		return reflect.Value{}, valueError(d, raw, nil)

	case KindLiteral:
		if !slices.Contains(d.Choices, raw) {
			return reflect.Value{}, valueError(d, raw, nil)
		}
		return ParseValue(d.Elems[0], raw)

	case KindDuration:
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return reflect.Value{}, valueError(d, raw, err)
		}
		return reflect.ValueOf(dur), nil

	case KindText:
		v := reflect.New(d.Type)
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, valueError(d, raw, err)
		}
		return v.Elem(), nil

	case KindRecord:
		return reflect.Value{}, schemaError(d, "records are set field by field with dotted keys")

	default:
		return reflect.Value{}, schemaError(d, d.reason)
	}
}

// unionOrder returns alternative indices with None moved to the front, so the
// tokens "none" and "None" never reach a string alternative.
func unionOrder(d *Descriptor) []int {
	order := make([]int, 0, len(d.Elems))
	for i, alt := range d.Elems {
		if alt.Kind == KindNone {
			order = append(order, i)
		}
	}
	for i, alt := range d.Elems {
		if alt.Kind != KindNone {
			order = append(order, i)
		}
	}
	return order
}

// parseUnion returns the first alternative that accepts raw. Schema errors are
// never swallowed: an unsupported alternative fails the union on every input.
func parseUnion(d *Descriptor, raw string) (reflect.Value, error) {
	for _, alt := range d.Elems {
		if alt.Kind == KindUnsupported {
			return reflect.Value{}, schemaError(alt, alt.reason)
		}
	}
	for _, i := range unionOrder(d) {
		v, err := ParseValue(d.Elems[i], raw)
		if err != nil {
			if fe, ok := err.(*FieldError); ok && fe.Kind == ErrSchema {
				return reflect.Value{}, fe
			}
			continue
		}
		return wrapUnion(d, i, v), nil
	}
	return reflect.Value{}, valueError(d, raw, nil)
}

// wrapUnion stores v as alternative i of the union type of d.
func wrapUnion(d *Descriptor, i int, v reflect.Value) reflect.Value {
	if d.Type.Kind() == reflect.Pointer {
		if d.Elems[i].Kind == KindNone {
			return reflect.Zero(d.Type)
		}
		p := reflect.New(d.Type.Elem())
		p.Elem().Set(v)
		return p
	}
	out := reflect.New(d.Type)
	out.Interface().(unionSetter).setHeld(i, v.Interface())
	return out.Elem()
}

// splitTuple strips one pair of parentheses, splits on commas and drops empty items.
func splitTuple(raw string) []string {
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseTuple(d *Descriptor, raw string) (reflect.Value, error) {
	items := splitTuple(raw)

	elems := d.Elems
	if d.Variadic {
		elems = make([]*Descriptor, len(items))
		for i := range items {
			elems[i] = d.Elems[0]
		}
	} else if len(items) != len(d.Elems) {
		fe := valueError(d, raw, nil)
		fe.Reason = fmt.Sprintf("expected %d items, got %d", len(d.Elems), len(items))
		return reflect.Value{}, fe
	}

	values := make([]reflect.Value, len(items))
	for i, item := range items {
		v, err := ParseValue(elems[i], item)
		if err != nil {
			if fe, ok := err.(*FieldError); ok && fe.Kind == ErrSchema {
				return reflect.Value{}, fe
			}
			return reflect.Value{}, valueError(d, raw, err)
		}
		values[i] = v
	}

	if d.Type.Kind() == reflect.Array {
		out := reflect.New(d.Type).Elem()
		for i, v := range values {
			out.Index(i).Set(v)
		}
		return out, nil
	}

	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v.Interface()
	}
	out := reflect.New(d.Type)
	out.Interface().(tupleSetter).setValues(vs)
	return out.Elem(), nil
}
