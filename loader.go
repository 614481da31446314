// FILE: lixenwraith/typedconfig/loader.go
package typedconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source represents a configuration source, used to define load precedence
type Source string

const (
	// SourceDefault represents the default tags of the target struct
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI Source = "cli"
)

// EnvTransformFunc converts a configuration path to an environment variable name
type EnvTransformFunc func(path string) string

// LoadOptions configures how raw arguments are collected from multiple sources
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceEnv, SourceFile, SourceDefault]
	Sources []Source

	// EnvPrefix is prepended to environment variable names
	// Example: "MYAPP_" transforms "server.port" to "MYAPP_SERVER_PORT"
	EnvPrefix string

	// EnvTransform customizes how paths map to environment variables
	// If nil, uses default transformation (dots to underscores, uppercase)
	EnvTransform EnvTransformFunc

	// EnvWhitelist limits which paths are checked for env vars (nil = all)
	EnvWhitelist map[string]bool

	// FileFormat forces "toml", "json" or "yaml"; empty or "auto" detects it
	FileFormat string
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources: []Source{SourceCLI, SourceEnv, SourceFile, SourceDefault},
	}
}

// loadFile reads a TOML, JSON or YAML file and flattens it into raw arguments.
func loadFile(path, format string) ([]RawArg, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if format == "" || format == "auto" {
		format = detectFileFormat(path)
		if format == "" {
			format = detectFormatFromContent(fileData)
		}
	}

	fileConfig := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(fileData))
		decoder.UseNumber() // Preserve number text
		if err := decoder.Decode(&fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(fileData, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unable to determine config format for file '%s'", path)
	}

	flat := flattenMap(fileConfig, "")
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]RawArg, 0, len(keys))
	for _, k := range keys {
		if !validKeyPath(k) {
			return nil, fmt.Errorf("%w: invalid key %q in config file '%s'", ErrArgFormat, k, path)
		}
		text, err := fileValueText(flat[k])
		if err != nil {
			return nil, fmt.Errorf("config file '%s', key %q: %w", path, k, err)
		}
		args = append(args, RawArg{Key: k, Value: text})
	}
	return args, nil
}

// fileValueText renders a decoded file value into the command-line token vocabulary.
func fileValueText(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "none", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case json.Number:
		return val.String(), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return val.String(), nil
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			s, err := fileValueText(item)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, ",") + ")", nil
	default:
		return "", fmt.Errorf("%w: unsupported file value of type %T", ErrValue, v)
	}
}

// loadEnv collects environment variables for every scalar path of the schema.
func loadEnv(s *Schema, opts LoadOptions) []RawArg {
	transform := opts.EnvTransform
	if transform == nil {
		transform = defaultEnvTransform(opts.EnvPrefix)
	}

	var args []RawArg
	for _, path := range s.Paths() {
		if opts.EnvWhitelist != nil && !opts.EnvWhitelist[path] {
			continue
		}
		if value, exists := os.LookupEnv(transform(path)); exists {
			args = append(args, RawArg{Key: path, Value: value})
		}
	}
	return args
}

// DiscoverEnv returns a map of path -> env var name for the paths of the
// record type that have a matching environment variable set.
func DiscoverEnv(record any, prefix string) (map[string]string, error) {
	s, err := SchemaOf(reflectType(record))
	if err != nil {
		return nil, err
	}
	transform := defaultEnvTransform(prefix)
	discovered := make(map[string]string)
	for _, path := range s.Paths() {
		envVar := transform(path)
		if _, exists := os.LookupEnv(envVar); exists {
			discovered[path] = envVar
		}
	}
	return discovered, nil
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(path string) string {
		env := strings.ReplaceAll(path, ".", "_")
		env = strings.ReplaceAll(env, "-", "_")
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// TOML before YAML, most TOML documents are not YAML mappings
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
