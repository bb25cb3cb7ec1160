package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct {
	ID    string
	Label string
	Tags  []string
}

func (t *thing) EntityID() string { return t.ID }

func (t *thing) clone() *thing {
	cp := *t
	cp.Tags = append([]string(nil), t.Tags...)
	return &cp
}

func newThingStore() *Memory[*thing] {
	return NewMemory((*thing).clone)
}

func TestMemoryAddGet(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	require.NoError(t, store.Add(ctx, &thing{ID: "t1", Label: "one"}))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Label)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	require.NoError(t, store.Add(ctx, &thing{ID: "t1"}))
	assert.ErrorIs(t, store.Add(ctx, &thing{ID: "t1"}), ErrDuplicateID)

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	require.NoError(t, store.Add(ctx, &thing{ID: "t1", Label: "old"}))
	require.NoError(t, store.Update(ctx, "t1", &thing{ID: "t1", Label: "new"}))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Label)

	assert.ErrorIs(t, store.Update(ctx, "missing", &thing{ID: "missing"}), ErrNotFound)
}

func TestMemoryUpdateRejectsIDMismatch(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	require.NoError(t, store.Add(ctx, &thing{ID: "t1", Label: "original"}))
	err := store.Update(ctx, "t1", &thing{ID: "t2", Label: "impostor"})
	require.ErrorIs(t, err, ErrStorage)

	got, gerr := store.Get(ctx, "t1")
	require.NoError(t, gerr)
	assert.Equal(t, "original", got.Label)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	require.NoError(t, store.Add(ctx, &thing{ID: "t1"}))
	require.NoError(t, store.Delete(ctx, "t1"))

	_, err := store.Get(ctx, "t1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "t1"), ErrNotFound)
}

func TestMemoryListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Add(ctx, &thing{ID: fmt.Sprintf("t%d", i)}))
	}
	require.NoError(t, store.Delete(ctx, "t2"))

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"t0", "t1", "t3", "t4"}, ids)
}

func TestMemoryListFilter(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	require.NoError(t, store.Add(ctx, &thing{ID: "t1", Label: "keep"}))
	require.NoError(t, store.Add(ctx, &thing{ID: "t2", Label: "drop"}))
	require.NoError(t, store.Add(ctx, &thing{ID: "t3", Label: "keep"}))

	kept, err := store.List(ctx, func(e *thing) bool { return e.Label == "keep" })
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "t1", kept[0].ID)
	assert.Equal(t, "t3", kept[1].ID)

	none, err := store.List(ctx, func(e *thing) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, none)
}

// Mutating an entity after Add, or one returned by Get, must not leak
// into the stored snapshot.
func TestMemoryCloneIsolation(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	in := &thing{ID: "t1", Label: "stored", Tags: []string{"a"}}
	require.NoError(t, store.Add(ctx, in))
	in.Label = "mutated after add"
	in.Tags[0] = "z"

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "stored", got.Label)
	assert.Equal(t, []string{"a"}, got.Tags)

	got.Label = "mutated after get"
	again, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "stored", again.Label)
}

func TestMemoryConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := newThingStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Add(ctx, &thing{ID: fmt.Sprintf("t%d", i)})
		}(i)
	}
	wg.Wait()

	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
