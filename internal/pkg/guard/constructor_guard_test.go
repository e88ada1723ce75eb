package guard_test

import (
	"errors"
	"testing"

	"printshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type renameCommand struct {
		name  string
		guard guard.ConstructorGuard
	}
	errRenameNotConstructed := errors.New("renameCommand must be created via newRenameCommand")

	newRenameCommand := func(name string) (renameCommand, error) {
		if name == "" {
			return renameCommand{}, errors.New("name is required")
		}
		return renameCommand{name: name, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newRenameCommand("Flyers A5")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errRenameNotConstructed))

	literal := renameCommand{name: "Flyers A5"}
	assert.ErrorIs(t, literal.guard.Validate(errRenameNotConstructed), errRenameNotConstructed)
}
