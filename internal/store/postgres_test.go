package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	testlog "yoyo-delivery/internal/testutil"
)

func TestConnectWithRetry_RetriesUntilSuccess(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })

	calls := 0
	newPool = func(context.Context, string) (*pgxpool.Pool, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("not ready")
		}
		return &pgxpool.Pool{}, nil
	}

	rec := testlog.New()
	pool, err := ConnectWithRetry(context.Background(), rec.Logger(), "dsn", 5, time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, pool)
	require.Equal(t, 3, calls)
	require.True(t, rec.Has("db connected"))
}

func TestConnectWithRetry_GivesUp(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })

	boom := errors.New("refused")
	newPool = func(context.Context, string) (*pgxpool.Pool, error) { return nil, boom }

	_, err := ConnectWithRetry(context.Background(), testlog.New().Logger(), "dsn", 2, time.Millisecond)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "after 2 attempts")
}

func TestConnectWithRetry_StopsOnCancel(t *testing.T) {
	orig := newPool
	t.Cleanup(func() { newPool = orig })
	newPool = func(context.Context, string) (*pgxpool.Pool, error) { return nil, errors.New("down") }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectWithRetry(ctx, testlog.New().Logger(), "dsn", 3, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}
