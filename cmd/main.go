// FILE: lixenwraith/typedconfig/cmd/main.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/lixenwraith/typedconfig"
)

// AppConfig is the demo record
type AppConfig struct {
	Name     string `toml:"name" default:"demo"`
	LogLevel string `toml:"log_level" default:"info" oneof:"debug info warn error"`

	Server struct {
		Host    string                                    `toml:"host" default:"localhost"`
		Port    int                                       `toml:"port" default:"8080"`
		Timeout time.Duration                             `toml:"timeout" default:"30s"`
		Limit   *int                                      `toml:"limit" default:"none"`
		Window  typedconfig.Tuple2[int, float64]          `toml:"window" default:"(3, 10.0)"`
		Mode    typedconfig.Either[typedconfig.None, int] `toml:"mode" default:"none"`
	} `toml:"server"`

	Features struct {
		Caching bool                         `toml:"caching" default:"false"`
		Tags    typedconfig.VarTuple[string] `toml:"tags" default:"()"`
	} `toml:"features"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var cfg AppConfig
	err := typedconfig.NewBuilder().
		WithArgs(os.Args[1:]).
		WithEnvPrefix("DEMO_").
		WithLogger(logger).
		WithFileDiscovery(typedconfig.DefaultDiscoveryOptions("typedconfig-demo")).
		Build(&cfg)
	if err != nil && !errors.Is(err, typedconfig.ErrConfigNotFound) {
		logger.Error("failed to parse arguments", "error", err)
		os.Exit(2)
	}

	spew.Dump(cfg)

	tokens, err := typedconfig.Format(&cfg)
	if err != nil {
		logger.Error("failed to format configuration", "error", err)
		os.Exit(1)
	}
	for _, token := range tokens {
		fmt.Println(token)
	}
}
