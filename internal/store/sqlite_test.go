package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTempSQLite(t *testing.T) (*SQLiteKV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kv.db")
	kv, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	return kv, path
}

func TestSQLiteKV_Contract(t *testing.T) {
	kv, _ := openTempSQLite(t)
	t.Cleanup(func() { _ = kv.Close() })
	runKVContract(t, kv)
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	kv, path := openTempSQLite(t)
	require.NoError(t, kv.Set(ctx, KeyOrders, []byte(`[{"id":1}]`)))
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	v, ok, err := reopened.Get(ctx, KeyOrders)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":1}]`, string(v))
}
