// FILE: lixenwraith/typedconfig/descriptor.go
package typedconfig

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a Descriptor.
type Kind int

const (
	KindUnsupported Kind = iota
	KindString
	KindInt
	KindUint
	KindFloat
	KindBool
	KindNone
	KindUnion
	KindTuple
	KindLiteral
	KindDuration
	KindText
	KindRecord

	// KindTotal is the number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindUnsupported: "unsupported",
	KindString:      "string",
	KindInt:         "int",
	KindUint:        "uint",
	KindFloat:       "float",
	KindBool:        "bool",
	KindNone:        "none",
	KindUnion:       "union",
	KindTuple:       "tuple",
	KindLiteral:     "literal",
	KindDuration:    "duration",
	KindText:        "text",
	KindRecord:      "record",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsStructural reports whether values of this kind are built from other descriptors.
func (k Kind) IsStructural() bool {
	switch k {
	case KindUnion, KindTuple, KindRecord:
		return true
	default:
		return false
	}
}

// Descriptor describes the declared type of a field and drives parsing.
type Descriptor struct {
	Kind Kind
	Type reflect.Type

	// Elems holds union alternatives in declaration order, tuple element
	// descriptors, or the base descriptor of a literal.
	Elems []*Descriptor

	// Variadic marks a tuple whose single element descriptor repeats.
	Variadic bool

	// Choices holds the accepted raw tokens of a literal.
	Choices []string

	// Record is the schema of a record, set by SchemaOf.
	Record *Schema

	reason string
}

var (
	noneType          = typeOf[None]()
	durationType      = typeOf[time.Duration]()
	unionSetterType   = typeOf[unionSetter]()
	tupleSetterType   = typeOf[tupleSetter]()
	textUnmarshalType = typeOf[encoding.TextUnmarshaler]()
)

// Describe derives the descriptor of a Go type. It never fails: types the
// parser cannot handle get KindUnsupported and fail when a value is parsed.
// Record descriptors returned by Describe carry no schema; use SchemaOf.
func Describe(t reflect.Type) *Descriptor {
	d := &Descriptor{Type: t}

	switch {
	case t == noneType:
		d.Kind = KindNone
		return d
	case t == durationType:
		d.Kind = KindDuration
		return d
	}

	ptr := reflect.PointerTo(t)
	switch {
	case t.Kind() != reflect.Pointer && ptr.Implements(unionSetterType):
		d.Kind = KindUnion
		for _, alt := range reflect.Zero(t).Interface().(unionType).alternatives() {
			d.Elems = append(d.Elems, Describe(alt))
		}
		return d
	case t.Kind() != reflect.Pointer && ptr.Implements(tupleSetterType):
		d.Kind = KindTuple
		tt := reflect.Zero(t).Interface().(tupleType)
		for _, elem := range tt.elements() {
			d.Elems = append(d.Elems, Describe(elem))
		}
		d.Variadic = tt.variadic()
		return d
	case t.Kind() != reflect.Pointer && ptr.Implements(textUnmarshalType):
		d.Kind = KindText
		return d
	}

	switch t.Kind() {
	case reflect.String:
		d.Kind = KindString
	case reflect.Bool:
		d.Kind = KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		d.Kind = KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		d.Kind = KindUint
	case reflect.Float32, reflect.Float64:
		d.Kind = KindFloat
	case reflect.Array:
		d.Kind = KindTuple
		elem := Describe(t.Elem())
		for i := 0; i < t.Len(); i++ {
			d.Elems = append(d.Elems, elem)
		}
	case reflect.Struct:
		d.Kind = KindRecord
	case reflect.Pointer:
		elem := t.Elem()
		switch {
		case elem.Kind() == reflect.Pointer:
			d.reason = "pointer to pointer"
		case elem.Kind() == reflect.Struct && !reflect.PointerTo(elem).Implements(unionSetterType) &&
			!reflect.PointerTo(elem).Implements(tupleSetterType) && !reflect.PointerTo(elem).Implements(textUnmarshalType) &&
			elem != noneType:
			d.Kind = KindRecord
		default:
			d.Kind = KindUnion
			d.Elems = []*Descriptor{Describe(noneType), Describe(elem)}
		}
	case reflect.Slice:
		d.reason = "mutable sequences are not supported, use VarTuple"
	case reflect.Map:
		d.reason = "maps are not supported, use a nested struct"
	default:
		d.reason = t.Kind().String() + " fields are not supported"
	}
	return d
}

// withChoices wraps a primitive descriptor into a literal restricted to choices.
func withChoices(base *Descriptor, choices []string) *Descriptor {
	return &Descriptor{
		Kind:    KindLiteral,
		Type:    base.Type,
		Elems:   []*Descriptor{base},
		Choices: choices,
	}
}

// IsOptional reports whether the descriptor is a union containing None.
func (d *Descriptor) IsOptional() bool {
	if d.Kind != KindUnion {
		return false
	}
	for _, alt := range d.Elems {
		if alt.Kind == KindNone {
			return true
		}
	}
	return false
}

// String renders the descriptor the way it appears in error messages.
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	switch d.Kind {
	case KindNone:
		return "none"
	case KindUnion:
		parts := make([]string, len(d.Elems))
		for i, alt := range d.Elems {
			parts[i] = alt.String()
		}
		return strings.Join(parts, " | ")
	case KindTuple:
		if d.Variadic {
			return "(" + d.Elems[0].String() + ", ...)"
		}
		parts := make([]string, len(d.Elems))
		for i, elem := range d.Elems {
			parts[i] = elem.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindLiteral:
		return "one of [" + strings.Join(d.Choices, " ") + "]"
	case KindRecord:
		return recordName(d.Type)
	default:
		if d.Type == nil {
			return d.Kind.String()
		}
		return d.Type.String()
	}
}
