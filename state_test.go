package cmdtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOption(t *testing.T) {
	t.Parallel()

	capture := func(t *testing.T, args ...string) *State {
		t.Helper()
		c := newCopyCommand(t)
		var state *State
		c.Run = func(ctx context.Context, s *State) error { state = s; return nil }
		require.NoError(t, Execute(context.Background(), c, args, nil))
		require.NotNil(t, state)
		return state
	}

	t.Run("typed values", func(t *testing.T) {
		t.Parallel()
		s := capture(t, "a.txt", "b.txt", "--target", "/tmp", "-f")
		assert.True(t, GetOption[bool](s, "force"))
		assert.Equal(t, "/tmp", GetOption[string](s, "target"))
		assert.Equal(t, "0644", GetOption[string](s, "mode"))
		assert.Equal(t, "", GetOption[string](s, "owner"))
		assert.True(t, s.IsSet("target"))
		assert.False(t, s.IsSet("mode"))
		assert.Equal(t, "b.txt", s.Argument("dst"))
		assert.Equal(t, "", s.Argument("missing"))
	})
	t.Run("option not found", func(t *testing.T) {
		t.Parallel()
		s := capture(t, "a.txt", "--target", "/tmp")
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorContains(t, err, `option "--version" not found in command "cp"`)
		}()
		// Panic because the author asked for an option the command never declared
		_ = GetOption[string](s, "version")
	})
	t.Run("option type mismatch", func(t *testing.T) {
		t.Parallel()
		s := capture(t, "a.txt", "--target", "/tmp")
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorContains(t, err, `type mismatch for option "--force" in command "cp": registered bool, requested string`)
		}()
		// Panic because the author asked for a declared option with the wrong type
		_ = GetOption[string](s, "force")
	})
}
