// FILE: lixenwraith/typedconfig/format_test.go
package typedconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formatConfig struct {
	Name    string                      `toml:"name"`
	Level   string                      `toml:"level" oneof:"debug info"`
	Count   int64                       `toml:"count"`
	Port    uint16                      `toml:"port"`
	Ratio   float64                     `toml:"ratio"`
	Enabled bool                        `toml:"enabled"`
	Limit   *int                        `toml:"limit"`
	Mode    Either[None, string]        `toml:"mode"`
	Pick    Either3[int, bool, string]  `toml:"pick"`
	Window  Tuple2[int, float64]        `toml:"window"`
	Triple  Tuple3[string, bool, uint8] `toml:"triple"`
	Tags    VarTuple[string]            `toml:"tags"`
	Pair    [2]int                      `toml:"pair"`
	Timeout time.Duration               `toml:"timeout"`
	Server  struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	} `toml:"server"`
}

type optionalLeaf struct {
	Port int `toml:"port"`
}

type optionalRecordConfig struct {
	Main optionalLeaf  `toml:"main"`
	Opt  *optionalLeaf `toml:"opt"`
	Name string        `toml:"name"`
}

func sampleFormatConfig() formatConfig {
	limit := 5
	cfg := formatConfig{
		Name:    "api",
		Level:   "info",
		Count:   -42,
		Port:    8080,
		Ratio:   0.25,
		Enabled: true,
		Limit:   &limit,
		Mode:    EitherB[None]("fast"),
		Pick:    Either3Of[int, bool, string](1, true),
		Window:  Tuple2[int, float64]{V1: 3, V2: 10.5},
		Triple:  Tuple3[string, bool, uint8]{V1: "x", V2: false, V3: 7},
		Tags:    VarTupleOf("a", "b", "c"),
		Pair:    [2]int{1, 2},
		Timeout: 90 * time.Second,
	}
	cfg.Server.Host = "localhost"
	cfg.Server.Port = 9090
	return cfg
}

func TestFormatValue(t *testing.T) {
	t.Run("Tokens", func(t *testing.T) {
		tests := []struct {
			value any
			want  string
		}{
			{"s", "s"},
			{-3, "-3"},
			{uint8(200), "200"},
			{10.0, "10"},
			{0.1, "0.1"},
			{true, "true"},
			{None{}, "none"},
			{(*int)(nil), "none"},
			{EitherA[None, int](None{}), "none"},
			{EitherB[None](8), "8"},
			{Tuple2[int, float64]{V1: 4, V2: 20}, "(4,20)"},
			{VarTupleOf[int](), "()"},
			{VarTupleOf(1, 2), "(1,2)"},
			{[3]bool{true, false, true}, "(true,false,true)"},
			{time.Minute, "1m0s"},
		}
		for _, tt := range tests {
			v := reflect.ValueOf(tt.value)
			got, err := FormatValue(Describe(v.Type()), v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		values := []any{
			Tuple2[int, float64]{V1: 4, V2: 20.5},
			Tuple3[string, bool, int]{V1: "a", V2: true, V3: -1},
			VarTupleOf("x", "y"),
			VarTupleOf[int](),
			[2]float64{1.5, 2},
			EitherB[None](3),
			EitherA[int, string](7),
		}
		for _, value := range values {
			v := reflect.ValueOf(value)
			d := Describe(v.Type())
			text, err := FormatValue(d, v)
			require.NoError(t, err)
			back, err := ParseValue(d, text)
			require.NoError(t, err, text)
			assert.Equal(t, value, back.Interface(), text)
		}
	})

	t.Run("UnsetUnion", func(t *testing.T) {
		v := reflect.ValueOf(Either[int, string]{})
		_, err := FormatValue(Describe(v.Type()), v)
		assert.ErrorIs(t, err, ErrValue)
	})

	t.Run("Unsupported", func(t *testing.T) {
		v := reflect.ValueOf([]int{1})
		_, err := FormatValue(Describe(v.Type()), v)
		assert.ErrorIs(t, err, ErrSchema)
	})
}

func TestFormat(t *testing.T) {
	t.Run("Tokens", func(t *testing.T) {
		tokens, err := Format(Config{Prop1: "a", Prop2: 3, Prop3: 1, Prop5: EitherA[None, int](None{}),
			SubConfigA: SubConfigA{Prop1: Tuple2[int, float64]{V1: 3, V2: 10}, Prop2: VarTupleOf("3", "4")}})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"sub_config_a.prop1=(3,10)",
			"sub_config_a.prop2=(3,4)",
			"sub_config_b.prop1=false",
			"prop1=a",
			"prop2=3",
			"prop3=1",
			"prop4=none",
			"prop5=none",
		}, tokens)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		cfg := sampleFormatConfig()
		tokens, err := Format(&cfg)
		require.NoError(t, err)

		back, err := Parse[formatConfig](tokens)
		require.NoError(t, err)
		assert.Equal(t, cfg, back)
	})

	t.Run("OptionalRecord", func(t *testing.T) {
		cfg := optionalRecordConfig{Name: "a"}
		cfg.Main.Port = 1
		tokens, err := Format(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"main.port=1", "opt=none", "name=a"}, tokens)

		back, err := Parse[optionalRecordConfig](tokens)
		require.NoError(t, err)
		assert.Nil(t, back.Opt)
		assert.Equal(t, cfg, back)

		cfg.Opt = &optionalLeaf{Port: 2}
		tokens, err = Format(&cfg)
		require.NoError(t, err)
		assert.Equal(t, []string{"main.port=1", "opt.port=2", "name=a"}, tokens)

		back, err = Parse[optionalRecordConfig](tokens)
		require.NoError(t, err)
		assert.Equal(t, cfg, back)
	})

	t.Run("NilRecord", func(t *testing.T) {
		_, err := Format((*Config)(nil))
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	for _, ext := range []string{".toml", ".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "config"+ext)
			cfg := sampleFormatConfig()
			require.NoError(t, Save(path, &cfg))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			var back formatConfig
			err = NewBuilder().
				WithArgs(nil).
				WithFile(path).
				WithSources(SourceFile, SourceDefault).
				Build(&back)
			require.NoError(t, err)
			assert.Equal(t, cfg, back)

			// Unset optional records survive the file round trip
			opt := optionalRecordConfig{Name: "b"}
			optPath := filepath.Join(t.TempDir(), "optional"+ext)
			require.NoError(t, Save(optPath, &opt))

			var optBack optionalRecordConfig
			err = NewBuilder().
				WithArgs(nil).
				WithFile(optPath).
				WithSources(SourceFile, SourceDefault).
				Build(&optBack)
			require.NoError(t, err)
			assert.Nil(t, optBack.Opt)
			assert.Equal(t, opt, optBack)

			// No temporary files left behind
			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}
