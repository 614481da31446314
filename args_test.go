// FILE: lixenwraith/typedconfig/args_test.go
package typedconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		args, err := SplitArgs([]string{"prop1=astring", " prop2 = 4 ", "--server.port=8080"})
		require.NoError(t, err)
		assert.Equal(t, []RawArg{
			{Key: "prop1", Value: "astring"},
			{Key: "prop2", Value: "4"},
			{Key: "server.port", Value: "8080"},
		}, args)
	})

	t.Run("EmbeddedSeparator", func(t *testing.T) {
		args, err := SplitArgs([]string{"dsn=user=admin;pass=x"})
		require.NoError(t, err)
		require.Len(t, args, 1)
		assert.Equal(t, "dsn", args[0].Key)
		assert.Equal(t, "user=admin;pass=x", args[0].Value)
		assert.Equal(t, "dsn=user=admin;pass=x", args[0].String())
	})

	t.Run("EmptyValue", func(t *testing.T) {
		args, err := SplitArgs([]string{"name="})
		require.NoError(t, err)
		assert.Equal(t, "", args[0].Value)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, token := range []string{"novalue", "=x", "a..b=1", "a.=1", "bad key=1", "--=1"} {
			_, err := SplitArgs([]string{token})
			assert.ErrorIs(t, err, ErrArgFormat, token)
		}
	})
}

func TestArgLayers(t *testing.T) {
	t.Run("SubArgs", func(t *testing.T) {
		args := []RawArg{
			{Key: "sub.a", Value: "1"},
			{Key: "top", Value: "2"},
			{Key: "sub.inner.b", Value: "3"},
			{Key: "subway", Value: "4"},
		}
		assert.Equal(t, []RawArg{
			{Key: "a", Value: "1"},
			{Key: "inner.b", Value: "3"},
		}, subArgs(args, "sub"))
		assert.Empty(t, subArgs(args, "missing"))
	})

	t.Run("Merge", func(t *testing.T) {
		file := []RawArg{{Key: "a", Value: "file"}, {Key: "b", Value: "file"}}
		env := []RawArg{{Key: "b", Value: "env"}, {Key: "c", Value: "env"}}
		cli := []RawArg{{Key: "a", Value: "cli"}}

		assert.Equal(t, []RawArg{
			{Key: "a", Value: "cli"},
			{Key: "b", Value: "env"},
			{Key: "c", Value: "env"},
		}, mergeArgs(file, env, cli))
	})
}
