package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/mines"
)

func setupTestStore() (*Store, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	st := NewStore(1 << 16)
	st.now = c.now
	return st, c
}

func TestStoreReadEmpty(t *testing.T) {
	st, _ := setupTestStore()
	_, err := st.Get("some id")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, st.Delete("some id"))
}

func TestStoreCreateGetDelete(t *testing.T) {
	st, _ := setupTestStore()

	s, err := st.Create(mines.Params{Width: 9, Height: 9, MineCount: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	other, err := st.Create(mines.DefaultParams)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, other.ID)
	assert.Equal(t, 2, st.Len())

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	assert.True(t, st.Delete(s.ID))
	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, st.Len())
}

func TestStoreCreateInvalid(t *testing.T) {
	st, _ := setupTestStore()
	_, err := st.Create(mines.Params{Width: 3, Height: 3, MineCount: 9})
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Equal(t, 0, st.Len())
}

func TestStoreCreateTooLarge(t *testing.T) {
	st, _ := setupTestStore()
	for _, params := range []mines.Params{
		{Width: 100000, Height: 100000, MineCount: 1},
		{Width: 1<<16 + 1, Height: 1, MineCount: 1},
		{Width: 1<<62 + 1, Height: 4, MineCount: 1},
	} {
		_, err := st.Create(params)
		assert.ErrorIs(t, err, mines.ErrInvalidConfiguration, params.String())
	}
	assert.Equal(t, 0, st.Len())

	_, err := st.Create(mines.Params{Width: 256, Height: 256, MineCount: 1})
	assert.NoError(t, err)
}

func TestStoreSweep(t *testing.T) {
	st, c := setupTestStore()

	stale, err := st.Create(mines.DefaultParams)
	require.NoError(t, err)
	c.advance(30 * time.Minute)
	fresh, err := st.Create(mines.DefaultParams)
	require.NoError(t, err)
	c.advance(20 * time.Minute)
	_, err = stale.ToggleFlag(0, 0)
	require.NoError(t, err)
	c.advance(20 * time.Minute)

	// stale was touched 20 minutes ago, fresh 40
	assert.Equal(t, 1, st.Sweep(30*time.Minute))
	_, err = st.Get(fresh.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(stale.ID)
	assert.NoError(t, err)
}

func TestStoreRunSweeperStops(t *testing.T) {
	st := NewStore(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- st.RunSweeper(ctx, time.Millisecond, time.Hour)
	}()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
