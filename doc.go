// File: lixenwraith/typedconfig/doc.go

// Package typedconfig parses flat key=value arguments into typed, nested Go
// structs. The struct's declared field types are the schema: no schema
// language and no code generation.
//
// Features:
//   - Strict type-directed parsing of strings, integers, floats and booleans
//   - Optionals (*T or Either[None, T]) and closed unions (Either, Either3)
//   - Fixed tuples (Tuple2, Tuple3, [N]T) and variadic tuples (VarTuple)
//   - Nested records addressed with dotted keys (server.port=8080); a
//     *Struct record is optional and set to nil with tls=none
//   - Defaults and restricted choices through struct tags
//   - One typed error (*FieldError) carrying the full dotted path
//   - TOML, JSON and YAML files plus environment variables as extra sources
//   - File watching with fsnotify
//
// Quick Start:
//
//	type Config struct {
//	    Name    string             `toml:"name"`
//	    Retries int                `toml:"retries" default:"3"`
//	    Limit   *int               `toml:"limit" default:"none"`
//	    Window  Tuple2[int, float64] `toml:"window" default:"(3, 10.0)"`
//	    Server  struct {
//	        Host string `toml:"host" default:"localhost"`
//	        Port int    `toml:"port"`
//	    } `toml:"server"`
//	}
//
//	cfg, err := typedconfig.Parse[Config]([]string{"name=api", "server.port=8080"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Literal Vocabulary:
//
//	true | True | false | False   booleans
//	none | None                   absence
//	(a, b, c)                     tuples
//	a.b.c                         nested record paths
//
// Default Precedence of the Builder (highest to lowest):
//  1. Command-line arguments (server.port=9090 or --server.port=9090)
//  2. Environment variables (MYAPP_SERVER_PORT=9090)
//  3. Configuration file (config.toml)
//  4. Default tags
//
// Errors:
// Failures are *FieldError values. Use errors.Is with ErrValue, ErrSchema,
// ErrUnknownField or ErrMissingField to tell them apart.
//
// Thread Safety:
// Parsing is pure. Schemas are derived once per struct type and shared through
// a concurrent cache.
package typedconfig
