// FILE: lixenwraith/typedconfig/schema.go
package typedconfig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Struct tags read by SchemaOf.
const (
	TagName    = "toml"    // key segment of a field, "-" skips the field
	TagDefault = "default" // raw default value, parsed like a command-line value
	TagOneOf   = "oneof"   // space-separated accepted tokens of a primitive field
)

// Field is one entry of a Schema.
type Field struct {
	Name       string // key segment
	GoName     string
	Index      []int
	Desc       *Descriptor
	Default    string
	HasDefault bool
}

// Schema maps the key segments of one record level to field descriptors.
// Schemas are immutable and shared between concurrent parses.
type Schema struct {
	Type   reflect.Type // struct type, never a pointer
	Fields []*Field     // declaration order
	byName map[string]*Field
}

var schemaCache = xsync.NewMapOf[reflect.Type, *Schema]()

// SchemaOf returns the schema of a struct type (or pointer to struct type).
// Schemas are derived once per type and cached for the life of the process.
// Recursive record types are rejected with ErrSchema.
func SchemaOf(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: record must be a struct, got %v", ErrSchema, t)
	}
	if s, ok := schemaCache.Load(t); ok {
		return s, nil
	}
	s, err := buildSchema(t, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}
	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual, nil
}

func buildSchema(t reflect.Type, visiting map[reflect.Type]bool) (*Schema, error) {
	if visiting[t] {
		return nil, &FieldError{
			Kind:     ErrSchema,
			Record:   t,
			Expected: &Descriptor{Kind: KindRecord, Type: t},
			Reason:   "recursive record types are not supported",
		}
	}
	visiting[t] = true
	defer delete(visiting, t)

	s := &Schema{Type: t, byName: make(map[string]*Field)}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		name := sf.Name
		if tag != "" {
			if parts := strings.Split(tag, ","); parts[0] != "" {
				name = parts[0]
			}
		}
		if !isValidKeySegment(name) {
			return nil, fmt.Errorf("%w: field %s of %s has invalid key %q", ErrSchema, sf.Name, recordName(t), name)
		}
		if _, dup := s.byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q in %s", ErrSchema, name, recordName(t))
		}

		f := &Field{
			Name:   name,
			GoName: sf.Name,
			Index:  sf.Index,
			Desc:   Describe(sf.Type),
		}
		f.Default, f.HasDefault = sf.Tag.Lookup(TagDefault)

		if oneOf, ok := sf.Tag.Lookup(TagOneOf); ok {
			switch f.Desc.Kind {
			case KindString, KindInt, KindUint, KindFloat, KindBool:
				f.Desc = withChoices(f.Desc, strings.Fields(oneOf))
			default:
				return nil, fmt.Errorf("%w: %s tag on field %s of %s requires a primitive type", ErrSchema, TagOneOf, sf.Name, recordName(t))
			}
		}

		if f.Desc.Kind == KindRecord {
			sub, err := buildSchema(derefType(sf.Type), visiting)
			if err != nil {
				if fe, ok := err.(*FieldError); ok {
					return nil, fe.within(name, t)
				}
				return nil, err
			}
			f.Desc.Record = sub
		}

		s.Fields = append(s.Fields, f)
		s.byName[name] = f
	}

	return s, nil
}

// Field returns the field with the given key segment.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Records returns the nested record fields in declaration order.
func (s *Schema) Records() []*Field {
	var out []*Field
	for _, f := range s.Fields {
		if f.Desc.Kind == KindRecord {
			out = append(out, f)
		}
	}
	return out
}

// Paths returns the dotted paths of all scalar fields, descending into nested records.
func (s *Schema) Paths() []string {
	var paths []string
	for _, f := range s.Fields {
		if f.Desc.Kind == KindRecord {
			for _, sub := range f.Desc.Record.Paths() {
				paths = append(paths, f.Name+"."+sub)
			}
			continue
		}
		paths = append(paths, f.Name)
	}
	return paths
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
