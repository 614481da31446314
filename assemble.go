// FILE: lixenwraith/typedconfig/assemble.go
package typedconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Parse splits key=value tokens and assembles them into a new T.
//
//	cfg, err := typedconfig.Parse[Config](os.Args[1:])
func Parse[T any](tokens []string) (T, error) {
	var out T
	args, err := SplitArgs(tokens)
	if err != nil {
		return out, err
	}
	err = Unmarshal(args, &out)
	return out, err
}

// MustParse is like Parse but panics on error.
func MustParse[T any](tokens []string) T {
	out, err := Parse[T](tokens)
	if err != nil {
		panic(fmt.Sprintf("typedconfig: %v", err))
	}
	return out
}

// Unmarshal assembles args into the struct pointed to by target.
// target is only written when assembly succeeds.
func Unmarshal(args []RawArg, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("unmarshal target must be non-nil pointer, got %T", target)
	}
	v, err := Assemble(rv.Elem().Type(), args)
	if err != nil {
		return err
	}
	rv.Elem().Set(v)
	return nil
}

// Assemble builds a record of type t (a struct or pointer to struct) from args.
func Assemble(t reflect.Type, args []RawArg) (reflect.Value, error) {
	s, err := SchemaOf(t)
	if err != nil {
		return reflect.Value{}, err
	}
	v, err := assemble(s, args)
	if err != nil {
		return reflect.Value{}, err
	}
	if t.Kind() == reflect.Pointer {
		p := reflect.New(s.Type)
		p.Elem().Set(v)
		return p, nil
	}
	return v, nil
}

func assemble(s *Schema, args []RawArg) (reflect.Value, error) {
	bound := make(map[string]any, len(s.Fields))

	// Nested records first, in declaration order
	for _, f := range s.Records() {
		if f.Desc.Type.Kind() == reflect.Pointer && setToNone(args, f.Name) {
			for _, a := range args {
				if strings.HasPrefix(a.Key, f.Name+".") {
					return reflect.Value{}, &FieldError{
						Kind:   ErrUnknownField,
						Record: s.Type,
						Path:   []string{a.Key},
						Reason: fmt.Sprintf("%s is none", f.Name),
					}
				}
			}
			bound[f.Name] = reflect.Zero(f.Desc.Type).Interface()
			continue
		}

		sub, err := assemble(f.Desc.Record, subArgs(args, f.Name))
		if err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				return reflect.Value{}, fe.within(f.Name, s.Type)
			}
			return reflect.Value{}, err
		}
		if f.Desc.Type.Kind() == reflect.Pointer {
			p := reflect.New(f.Desc.Record.Type)
			p.Elem().Set(sub)
			sub = p
		}
		bound[f.Name] = sub.Interface()
	}

	// Scalars of this level, in argument order
	for _, a := range args {
		head, _, dotted := strings.Cut(a.Key, ".")
		f, known := s.byName[head]

		if dotted {
			if known && f.Desc.Kind == KindRecord {
				continue // consumed by the nested record
			}
			path := head
			if known {
				path = a.Key
			}
			return reflect.Value{}, &FieldError{Kind: ErrUnknownField, Record: s.Type, Path: []string{path}}
		}

		if !known {
			return reflect.Value{}, &FieldError{Kind: ErrUnknownField, Record: s.Type, Path: []string{a.Key}}
		}
		if f.Desc.Kind == KindRecord {
			if f.Desc.Type.Kind() == reflect.Pointer && isNone(a.Value) {
				continue // bound as nil above
			}
			return reflect.Value{}, &FieldError{
				Kind:   ErrUnknownField,
				Record: s.Type,
				Path:   []string{a.Key},
				Reason: fmt.Sprintf("%s is a nested record, set its fields as %s.<field>", a.Key, a.Key),
			}
		}

		v, err := ParseValue(f.Desc, a.Value)
		if err != nil {
			return reflect.Value{}, fieldFailure(err, s, f, a.Value)
		}
		bound[f.Name] = v.Interface()
	}

	return s.construct(bound)
}

func isNone(raw string) bool {
	return raw == "none" || raw == "None"
}

// setToNone reports whether an undotted name=none argument is present.
func setToNone(args []RawArg, name string) bool {
	for _, a := range args {
		if a.Key == name && isNone(a.Value) {
			return true
		}
	}
	return false
}

// fieldFailure attaches field context to a ParseValue failure.
func fieldFailure(err error, s *Schema, f *Field, raw string) error {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return err
	}
	out := &FieldError{
		Kind:     fe.Kind,
		Record:   s.Type,
		Path:     []string{f.Name},
		Expected: f.Desc,
		Reason:   fe.Reason,
		Err:      fe,
	}
	if fe.Kind == ErrValue {
		out.Value = raw
		if fe.Expected != f.Desc {
			out.Reason = ""
		}
	} else {
		out.Expected = fe.Expected
		out.Err = nil
	}
	return out
}
