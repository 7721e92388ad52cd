package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// runKVContract checks the behaviour every KV backend must share.
func runKVContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		v, ok, err := kv.Get(ctx, "contract-missing")
		require.NoError(t, err)
		require.False(t, ok)
		require.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "contract-a", []byte(`{"n":1}`)))
		v, ok, err := kv.Get(ctx, "contract-a")
		require.NoError(t, err)
		require.True(t, ok)
		require.JSONEq(t, `{"n":1}`, string(v))
	})

	t.Run("overwrite replaces whole value", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "contract-b", []byte(`[1,2,3]`)))
		require.NoError(t, kv.Set(ctx, "contract-b", []byte(`[4]`)))
		v, ok, err := kv.Get(ctx, "contract-b")
		require.NoError(t, err)
		require.True(t, ok)
		require.JSONEq(t, `[4]`, string(v))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "contract-c", []byte(`"x"`)))
		require.NoError(t, kv.Delete(ctx, "contract-c"))
		_, ok, err := kv.Get(ctx, "contract-c")
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, kv.Delete(ctx, "contract-never-set"))
	})

	t.Run("unicode survives", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "contract-d", []byte(`{"name":"אבי מנהל"}`)))
		v, ok, err := kv.Get(ctx, "contract-d")
		require.NoError(t, err)
		require.True(t, ok)
		require.JSONEq(t, `{"name":"אבי מנהל"}`, string(v))
	})
}
