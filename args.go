// FILE: lixenwraith/typedconfig/args.go
package typedconfig

import (
	"fmt"
	"strings"
)

// RawArg is one key=value pair. Keys are dotted paths, values are raw text.
type RawArg struct {
	Key   string
	Value string
}

func (a RawArg) String() string {
	return a.Key + "=" + a.Value
}

// SplitArgs turns "key=value" tokens into raw arguments. Only the first '='
// separates key and value; whitespace around both is trimmed. A leading "--"
// on the key is accepted and dropped.
func SplitArgs(tokens []string) ([]RawArg, error) {
	args := make([]RawArg, 0, len(tokens))
	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		if !found {
			return nil, fmt.Errorf("%w: argument %q does not contain '='", ErrArgFormat, token)
		}
		key = strings.TrimPrefix(strings.TrimSpace(key), "--")
		if !validKeyPath(key) {
			return nil, fmt.Errorf("%w: invalid key %q in argument %q", ErrArgFormat, key, token)
		}
		args = append(args, RawArg{Key: key, Value: strings.TrimSpace(value)})
	}
	return args, nil
}

// subArgs selects the arguments under prefix "name." and strips that prefix.
func subArgs(args []RawArg, name string) []RawArg {
	prefix := name + "."
	var out []RawArg
	for _, a := range args {
		if rest, ok := strings.CutPrefix(a.Key, prefix); ok {
			out = append(out, RawArg{Key: rest, Value: a.Value})
		}
	}
	return out
}

// mergeArgs layers argument lists, later layers overriding earlier ones by key.
// The first position of each key is kept.
func mergeArgs(layers ...[]RawArg) []RawArg {
	index := make(map[string]int)
	var merged []RawArg
	for _, layer := range layers {
		for _, a := range layer {
			if i, ok := index[a.Key]; ok {
				merged[i].Value = a.Value
				continue
			}
			index[a.Key] = len(merged)
			merged = append(merged, a)
		}
	}
	return merged
}
