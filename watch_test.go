// FILE: lixenwraith/typedconfig/watch_test.go
package typedconfig

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watchRecorder struct {
	mu      sync.Mutex
	configs []serverConfig
	errs    []error
}

func (r *watchRecorder) record(cfg serverConfig, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs = append(r.configs, cfg)
	r.errs = append(r.errs, err)
}

func (r *watchRecorder) last() (serverConfig, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.configs) == 0 {
		return serverConfig{}, 0, nil
	}
	n := len(r.configs)
	return r.configs[n-1], n, r.errs[n-1]
}

func startWatch(t *testing.T, b *Builder, rec *watchRecorder) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, b, rec.record)
	}()
	require.Eventually(t, func() bool {
		_, n, _ := rec.last()
		return n > 0
	}, 2*time.Second, 10*time.Millisecond)
	return cancel, done
}

func TestWatch(t *testing.T) {
	t.Run("ReloadOnChange", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watch.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 8080\n"), 0644))

		b := NewBuilder().
			WithArgs(nil).
			WithEnvPrefix("TCBWATCH_").
			WithFile(path).
			WithDebounce(50 * time.Millisecond)

		rec := &watchRecorder{}
		cancel, done := startWatch(t, b, rec)

		cfg, _, err := rec.last()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)

		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9090\n"), 0644))
		require.Eventually(t, func() bool {
			cfg, _, err := rec.last()
			return err == nil && cfg.Server.Port == 9090
		}, 3*time.Second, 20*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop after cancellation")
		}
	})

	t.Run("AtomicReplace", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "watch.toml")
		require.NoError(t, os.WriteFile(path, []byte("name = \"first\"\n"), 0644))

		b := NewBuilder().
			WithArgs(nil).
			WithEnvPrefix("TCBWATCH_").
			WithFile(path).
			WithDebounce(50 * time.Millisecond)

		rec := &watchRecorder{}
		cancel, done := startWatch(t, b, rec)
		defer func() {
			cancel()
			<-done
		}()

		cfg, err := Parse[serverConfig]([]string{"name=second"})
		require.NoError(t, err)
		require.NoError(t, Save(path, &cfg))

		require.Eventually(t, func() bool {
			cfg, _, err := rec.last()
			return err == nil && cfg.Name == "second"
		}, 3*time.Second, 20*time.Millisecond)
	})

	t.Run("InvalidEditReported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watch.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 8080\n"), 0644))

		b := NewBuilder().
			WithArgs(nil).
			WithEnvPrefix("TCBWATCH_").
			WithFile(path).
			WithDebounce(50 * time.Millisecond)

		rec := &watchRecorder{}
		cancel, done := startWatch(t, b, rec)
		defer func() {
			cancel()
			<-done
		}()

		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = \"high\"\n"), 0644))
		require.Eventually(t, func() bool {
			_, _, err := rec.last()
			return err != nil
		}, 3*time.Second, 20*time.Millisecond)

		_, _, err := rec.last()
		assert.ErrorIs(t, err, ErrValue)

		// Watching continues after a failed build
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 7070\n"), 0644))
		require.Eventually(t, func() bool {
			cfg, _, err := rec.last()
			return err == nil && cfg.Server.Port == 7070
		}, 3*time.Second, 20*time.Millisecond)
	})

	t.Run("NoFile", func(t *testing.T) {
		err := Watch(context.Background(), NewBuilder().WithArgs(nil), func(serverConfig, error) {})
		assert.Error(t, err)
	})

	t.Run("DebounceFloor", func(t *testing.T) {
		b := NewBuilder().WithDebounce(time.Nanosecond)
		assert.Equal(t, MinDebounce, b.debounce)
	})
}
