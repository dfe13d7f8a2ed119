package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheRow struct {
	ID    uint
	Name  string
	Count int
}

func newRowCache(t *testing.T, source *[]cacheRow) *Cache[cacheRow] {
	t.Helper()
	c, err := NewCache(
		func(context.Context) ([]cacheRow, error) { return *source, nil },
		func(r cacheRow) uint { return r.ID },
	)
	require.NoError(t, err)
	require.NoError(t, c.Reload(context.Background()))
	return c
}

func TestCacheReloadReplacesContents(t *testing.T) {
	source := []cacheRow{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	c := newRowCache(t, &source)
	assert.Equal(t, 2, c.Len())

	source = []cacheRow{{ID: 3, Name: "c"}}
	require.NoError(t, c.Reload(context.Background()))

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
	row, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "c", row.Name)
}

func TestCacheListOrdersByID(t *testing.T) {
	source := []cacheRow{{ID: 9}, {ID: 2}, {ID: 5}}
	c := newRowCache(t, &source)

	rows := c.List()
	require.Len(t, rows, 3)
	assert.Equal(t, uint(2), rows[0].ID)
	assert.Equal(t, uint(5), rows[1].ID)
	assert.Equal(t, uint(9), rows[2].ID)
}

func TestUpdateWithRollbackCommitsServerRow(t *testing.T) {
	source := []cacheRow{{ID: 1, Name: "a", Count: 1}}
	c := newRowCache(t, &source)

	saved, err := c.UpdateWithRollback(context.Background(),
		cacheRow{ID: 1, Name: "a", Count: 5},
		func(context.Context) (cacheRow, error) {
			// persistence layer may adjust the row
			return cacheRow{ID: 1, Name: "a", Count: 6}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 6, saved.Count)

	row, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 6, row.Count)
}

func TestUpdateWithRollbackRestoresPriorRowOnFailure(t *testing.T) {
	source := []cacheRow{{ID: 1, Name: "a", Count: 1}}
	c := newRowCache(t, &source)

	_, err := c.UpdateWithRollback(context.Background(),
		cacheRow{ID: 1, Name: "a", Count: 5},
		func(context.Context) (cacheRow, error) {
			return cacheRow{}, fmt.Errorf("write refused")
		})
	require.Error(t, err)

	row, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, row.Count, "optimistic write must be rolled back")
}

func TestUpdateWithRollbackDropsNewRowOnFailure(t *testing.T) {
	source := []cacheRow{}
	c := newRowCache(t, &source)

	_, err := c.UpdateWithRollback(context.Background(),
		cacheRow{ID: 7, Name: "new"},
		func(context.Context) (cacheRow, error) {
			return cacheRow{}, fmt.Errorf("write refused")
		})
	require.Error(t, err)

	_, ok := c.Get(7)
	assert.False(t, ok)
}

func TestDeleteWithRollbackRestoresRowOnFailure(t *testing.T) {
	source := []cacheRow{{ID: 1, Name: "a"}}
	c := newRowCache(t, &source)

	err := c.DeleteWithRollback(context.Background(), 1, func(context.Context) error {
		return fmt.Errorf("delete refused")
	})
	require.Error(t, err)

	_, ok := c.Get(1)
	assert.True(t, ok)
}

func TestDeleteWithRollbackRemovesRowOnSuccess(t *testing.T) {
	source := []cacheRow{{ID: 1, Name: "a"}}
	c := newRowCache(t, &source)

	require.NoError(t, c.DeleteWithRollback(context.Background(), 1, func(context.Context) error {
		return nil
	}))

	_, ok := c.Get(1)
	assert.False(t, ok)
}
