package items

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	seeded := NewSession(true)
	require.Equal(t, 3, seeded.Store.Len())
	require.Equal(t, 4, seeded.Store.NextID())

	empty := NewSession(false)
	require.Equal(t, 0, empty.Store.Len())
	require.Equal(t, 1, empty.Store.NextID())
}

func TestSession_Submit(t *testing.T) {
	t.Run("failure keeps draft and sets error", func(t *testing.T) {
		session := NewSession(true)
		draft := Draft{Name: "Eraser", Category: "Stationary", Price: "-1"}

		_, err := session.Submit(draft)

		require.ErrorIs(t, err, ErrInvalidPrice)
		require.Equal(t, draft, session.Draft)
		require.Equal(t, "Price must not be less than 0", session.ErrorMessage)
		require.Equal(t, 3, session.Store.Len())
	})

	t.Run("next attempt replaces the error", func(t *testing.T) {
		session := NewSession(true)

		_, err := session.Submit(Draft{Name: "", Category: "Stationary", Price: "1"})
		require.Error(t, err)
		_, err = session.Submit(Draft{Name: "Eraser", Category: "", Price: "1"})
		require.Error(t, err)

		require.Equal(t, "Please select a category", session.ErrorMessage)
	})

	t.Run("success appends, clears draft and error", func(t *testing.T) {
		session := NewSession(true)
		_, _ = session.Submit(Draft{Name: "", Category: "Stationary", Price: "1"})

		item, err := session.Submit(Draft{Name: "  Eraser ", Category: "Stationary", Price: "0"})

		require.NoError(t, err)
		require.Equal(t, Item{ID: 4, Name: "Eraser", Category: CategoryStationary, Price: 0}, item)
		require.Equal(t, Draft{}, session.Draft)
		require.Empty(t, session.ErrorMessage)
		require.Equal(t, item, session.Store.Items()[3])
	})

	t.Run("duplicate of a freshly added item is rejected", func(t *testing.T) {
		session := NewSession(false)

		_, err := session.Submit(Draft{Name: "Mug", Category: "Kitchenware", Price: "3"})
		require.NoError(t, err)
		_, err = session.Submit(Draft{Name: " MUG", Category: "Kitchenware", Price: "4"})

		require.ErrorIs(t, err, ErrDuplicateName)
		require.Equal(t, 1, session.Store.Len())
	})
}

func TestSession_Delete(t *testing.T) {
	t.Run("clears error and removes item", func(t *testing.T) {
		session := NewSession(true)
		_, _ = session.Submit(Draft{})

		removed := session.Delete(1)

		require.True(t, removed)
		require.Empty(t, session.ErrorMessage)
		require.Equal(t, 2, session.Store.Len())
	})

	t.Run("unknown id leaves collection unchanged and sets no error", func(t *testing.T) {
		session := NewSession(true)
		before := session.Store.Items()

		removed := session.Delete(42)

		require.False(t, removed)
		require.Empty(t, session.ErrorMessage)
		require.Equal(t, before, session.Store.Items())
	})
}

func TestSession_State(t *testing.T) {
	session := NewSession(true)
	draft := Draft{Name: "Pen", Category: "", Price: "2"}
	_, _ = session.Submit(draft)

	state := session.State()

	require.Len(t, state.Items, 3)
	require.Equal(t, "Please select a category", state.ErrorMessage)
	require.Equal(t, draft, state.Draft)
	require.Equal(t, Categories(), state.Categories)
}
