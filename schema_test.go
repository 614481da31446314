// FILE: lixenwraith/typedconfig/schema_test.go
package typedconfig

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	Value int   `toml:"value"`
	Next  *node `toml:"next"`
}

type ping struct {
	Pong *pong `toml:"pong"`
}

type pong struct {
	Ping ping `toml:"ping"`
}

func TestSchemaOf(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		type Inner struct {
			Port int `toml:"port" default:"80"`
		}
		type Config struct {
			Name     string `toml:"name"`
			Skipped  int    `toml:"-"`
			Level    string `toml:"level" default:"info" oneof:"debug info"`
			Server   Inner  `toml:"server"`
			Optional *Inner `toml:"optional"`

			Plain  int
			hidden int
		}

		s, err := SchemaOf(reflect.TypeOf(Config{}))
		require.NoError(t, err)

		names := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			names[i] = f.Name
		}
		assert.Equal(t, []string{"name", "level", "server", "optional", "Plain"}, names)

		level, ok := s.Field("level")
		require.True(t, ok)
		assert.Equal(t, KindLiteral, level.Desc.Kind)
		assert.Equal(t, []string{"debug", "info"}, level.Desc.Choices)
		assert.True(t, level.HasDefault)
		assert.Equal(t, "info", level.Default)

		name, _ := s.Field("name")
		assert.False(t, name.HasDefault)

		_, ok = s.Field("Skipped")
		assert.False(t, ok)

		records := s.Records()
		require.Len(t, records, 2)
		assert.Equal(t, "server", records[0].Name)
		assert.NotNil(t, records[1].Desc.Record)

		assert.Equal(t, []string{"name", "level", "server.port", "optional.port", "Plain"}, s.Paths())
	})

	t.Run("PointerAndCache", func(t *testing.T) {
		type Config struct {
			A int `toml:"a"`
		}
		s1, err := SchemaOf(reflect.TypeOf(&Config{}))
		require.NoError(t, err)
		s2, err := SchemaOf(reflect.TypeOf(Config{}))
		require.NoError(t, err)
		assert.Same(t, s1, s2)
		assert.Equal(t, reflect.TypeOf(Config{}), s1.Type)
	})

	t.Run("ConcurrentDerivation", func(t *testing.T) {
		type Config struct {
			A int    `toml:"a"`
			B string `toml:"b"`
		}
		var wg sync.WaitGroup
		schemas := make([]*Schema, 16)
		for i := range schemas {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				schemas[i], _ = SchemaOf(reflect.TypeOf(Config{}))
			}(i)
		}
		wg.Wait()
		for _, s := range schemas {
			assert.Same(t, schemas[0], s)
		}
	})

	t.Run("NotAStruct", func(t *testing.T) {
		_, err := SchemaOf(reflect.TypeOf(3))
		assert.ErrorIs(t, err, ErrSchema)

		_, err = SchemaOf(nil)
		assert.ErrorIs(t, err, ErrSchema)
	})

	t.Run("RecursiveRecord", func(t *testing.T) {
		_, err := SchemaOf(reflect.TypeOf(node{}))
		require.ErrorIs(t, err, ErrSchema)
		assert.Equal(t, "argument 'node.next' has unknown type 'node': recursive record types are not supported", err.Error())

		_, err = SchemaOf(reflect.TypeOf(ping{}))
		require.ErrorIs(t, err, ErrSchema)
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "pong.ping", fe.PathString())
	})

	t.Run("InvalidTags", func(t *testing.T) {
		type BadKey struct {
			A int `toml:"a.b"`
		}
		_, err := SchemaOf(reflect.TypeOf(BadKey{}))
		assert.ErrorIs(t, err, ErrSchema)

		type Duplicate struct {
			A int `toml:"x"`
			B int `toml:"x"`
		}
		_, err = SchemaOf(reflect.TypeOf(Duplicate{}))
		assert.ErrorIs(t, err, ErrSchema)

		type OneOfTuple struct {
			A Tuple2[int, int] `toml:"a" oneof:"(1,2)"`
		}
		_, err = SchemaOf(reflect.TypeOf(OneOfTuple{}))
		assert.ErrorIs(t, err, ErrSchema)
	})

	t.Run("UnsupportedFieldIsLazy", func(t *testing.T) {
		type Config struct {
			Items []int `toml:"items"`
		}
		s, err := SchemaOf(reflect.TypeOf(Config{}))
		require.NoError(t, err)
		f, _ := s.Field("items")
		assert.Equal(t, KindUnsupported, f.Desc.Kind)
	})
}
