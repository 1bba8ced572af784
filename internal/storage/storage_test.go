package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_StoreRetrieve(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	data := []byte(`{"id":"a"}`)
	require.NoError(t, store.Store(ctx, "audits/a.json", data))

	data[0] = 'X'
	got, err := store.Retrieve(ctx, "audits/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a"}`, string(got))

	got[0] = 'Y'
	again, err := store.Retrieve(ctx, "audits/a.json")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a"}`, string(again))
}

func TestMemoryStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	_, err := store.Retrieve(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "missing"), ErrNotFound)
}

func TestMemoryStorage_List(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	for _, name := range []string{"audits/b.json", "audits/a.json", "reports/x.json"} {
		require.NoError(t, store.Store(ctx, name, []byte("{}")))
	}

	names, err := store.List(ctx, "audits/")
	require.NoError(t, err)
	assert.Equal(t, []string{"audits/a.json", "audits/b.json"}, names)

	empty, err := store.List(ctx, "nothing/")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryStorage_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.Store(ctx, "audits/a.json", []byte("{}")))
	require.NoError(t, store.Delete(ctx, "audits/a.json"))

	_, err := store.Retrieve(ctx, "audits/a.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorage_Validation(t *testing.T) {
	store := NewMemoryStorage()
	assert.Error(t, store.Store(context.Background(), "", []byte("{}")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Store(ctx, "a", nil), context.Canceled)
	_, err := store.List(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStorage_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("audits/%02d.json", i)
			assert.NoError(t, store.Store(ctx, name, []byte("{}")))
			_, err := store.Retrieve(ctx, name)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	names, err := store.List(ctx, "audits/")
	require.NoError(t, err)
	assert.Len(t, names, 50)
}

func TestNewAzureStorage_Validation(t *testing.T) {
	_, err := NewAzureStorage(context.Background(), "", "audits")
	assert.Error(t, err)

	_, err = NewAzureStorage(context.Background(), "account", "")
	assert.Error(t, err)
}
