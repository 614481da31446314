// FILE: lixenwraith/typedconfig/decode.go
package typedconfig

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// construct binds resolved field values by key into a new record.
// Unbound fields take their default tag; unbound fields without one are
// reported together as ErrMissingField.
func (s *Schema) construct(bound map[string]any) (reflect.Value, error) {
	for _, f := range s.Fields {
		if _, ok := bound[f.Name]; ok || !f.HasDefault {
			continue
		}
		v, err := ParseValue(f.Desc, f.Default)
		if err != nil {
			return reflect.Value{}, &FieldError{
				Kind:     ErrSchema,
				Record:   s.Type,
				Path:     []string{f.Name},
				Expected: f.Desc,
				Reason:   fmt.Sprintf("invalid default %q", f.Default),
				Err:      err,
			}
		}
		bound[f.Name] = v.Interface()
	}

	var missing []string
	for _, f := range s.Fields {
		if _, ok := bound[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return reflect.Value{}, &FieldError{Kind: ErrMissingField, Record: s.Type, Missing: missing}
	}

	out := reflect.New(s.Type)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out.Interface(),
		TagName:     TagName,
		ErrorUnused: true,
	})
	if err != nil {
		return reflect.Value{}, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(bound); err != nil {
		return reflect.Value{}, fmt.Errorf("decode failed for %s: %w", recordName(s.Type), err)
	}

	return out.Elem(), nil
}
