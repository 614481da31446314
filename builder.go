// File: lixenwraith/typedconfig/builder.go
package typedconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"time"
)

// ValidatorFunc defines the signature for a function that can validate a parsed record.
// It receives the pointer passed to Build and should return an error if validation fails.
type ValidatorFunc func(target any) error

// Builder collects raw arguments from files, environment variables and the
// command line, then assembles them into a record.
type Builder struct {
	opts       LoadOptions
	file       string
	args       []string
	err        error
	validators []ValidatorFunc
	logger     *slog.Logger
	debounce   time.Duration
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		opts:       DefaultLoadOptions(),
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
		logger:     slog.New(slog.DiscardHandler),
		debounce:   DefaultDebounce,
	}
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithFileFormat forces the file format instead of detecting it
func (b *Builder) WithFileFormat(format string) *Builder {
	switch format {
	case "", "auto", "toml", "json", "yaml":
		b.opts.FileFormat = format
	default:
		b.err = fmt.Errorf("unsupported file format %q", format)
	}
	return b
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithSources sets the precedence order for configuration sources
func (b *Builder) WithSources(sources ...Source) *Builder {
	for _, s := range sources {
		switch s {
		case SourceCLI, SourceEnv, SourceFile, SourceDefault:
		default:
			b.err = fmt.Errorf("unknown configuration source %q", s)
			return b
		}
	}
	b.opts.Sources = sources
	return b
}

// WithEnvTransform sets a custom environment variable transformer
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.opts.EnvTransform = fn
	return b
}

// WithEnvWhitelist limits which paths are checked for env vars
func (b *Builder) WithEnvWhitelist(paths ...string) *Builder {
	if b.opts.EnvWhitelist == nil {
		b.opts.EnvWhitelist = make(map[string]bool)
	}
	for _, path := range paths {
		b.opts.EnvWhitelist[path] = true
	}
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// WithLogger sets the logger receiving debug records about loaded sources
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithDebounce sets the file change coalescence period used by Watch
func (b *Builder) WithDebounce(d time.Duration) *Builder {
	if d < MinDebounce {
		d = MinDebounce
	}
	b.debounce = d
	return b
}

// RawArgs collects the merged raw arguments for the record type t.
// A missing configuration file is reported as ErrConfigNotFound alongside the arguments.
func (b *Builder) RawArgs(t reflect.Type) ([]RawArg, error) {
	if b.err != nil {
		return nil, b.err
	}
	s, err := SchemaOf(t)
	if err != nil {
		return nil, err
	}

	var layers [][]RawArg
	var loadErrors []error

	// Lowest precedence first, later layers override
	for i := len(b.opts.Sources) - 1; i >= 0; i-- {
		source := b.opts.Sources[i]

		switch source {
		case SourceDefault:
			// Defaults come from struct tags during assembly
			continue

		case SourceFile:
			if b.file == "" {
				continue
			}
			layer, err := loadFile(b.file, b.opts.FileFormat)
			if err != nil {
				if errors.Is(err, ErrConfigNotFound) {
					b.logger.Debug("configuration file not found", "path", b.file)
					loadErrors = append(loadErrors, err)
					continue
				}
				return nil, err
			}
			b.logger.Debug("loaded configuration source", "source", source, "path", b.file, "args", len(layer))
			layers = append(layers, layer)

		case SourceEnv:
			layer := loadEnv(s, b.opts)
			b.logger.Debug("loaded configuration source", "source", source, "prefix", b.opts.EnvPrefix, "args", len(layer))
			layers = append(layers, layer)

		case SourceCLI:
			layer, err := SplitArgs(b.args)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
			}
			b.logger.Debug("loaded configuration source", "source", source, "args", len(layer))
			layers = append(layers, layer)
		}
	}

	return mergeArgs(layers...), errors.Join(loadErrors...)
}

// Build assembles the configured sources into target, which must be a non-nil
// pointer to a struct. It returns ErrConfigNotFound (after populating target)
// when the configured file does not exist.
func (b *Builder) Build(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("build target must be non-nil pointer, got %T", target)
	}

	args, loadErr := b.RawArgs(rv.Elem().Type())
	if loadErr != nil && !errors.Is(loadErr, ErrConfigNotFound) {
		return loadErr
	}

	if err := Unmarshal(args, target); err != nil {
		return err
	}

	for _, validator := range b.validators {
		if err := validator(target); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild(target any) {
	if err := b.Build(target); err != nil {
		// Missing file is not fatal, the record is still complete
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("config build failed: %v", err))
		}
	}
}

// Quick parses os.Args[1:], environment variables with envPrefix and the
// optional configFile into target with the standard precedence: CLI > Env > File > Default
func Quick(target any, envPrefix, configFile string) error {
	return NewBuilder().
		WithEnvPrefix(envPrefix).
		WithFile(configFile).
		Build(target)
}

func reflectType(v any) reflect.Type {
	if t, ok := v.(reflect.Type); ok {
		return t
	}
	return reflect.TypeOf(v)
}
