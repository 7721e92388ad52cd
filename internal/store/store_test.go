package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testlog "yoyo-delivery/internal/testutil"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// stubKV lets a test replace any KV method.
type stubKV struct {
	*MemoryKV
	getFn func(ctx context.Context, key string) ([]byte, bool, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func newStubKV() *stubKV { return &stubKV{MemoryKV: NewMemoryKV()} }

func (s *stubKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getFn != nil {
		return s.getFn(ctx, key)
	}
	return s.MemoryKV.Get(ctx, key)
}

func (s *stubKV) Set(ctx context.Context, key string, value []byte) error {
	if s.setFn != nil {
		return s.setFn(ctx, key, value)
	}
	return s.MemoryKV.Set(ctx, key, value)
}

func newFallbacks() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_fallbacks_total"}, []string{"key", "reason"})
}

func TestLoad_AbsentWritesSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := NewMemoryKV()
	fallbacks := newFallbacks()
	s := New(kv, nil, fallbacks, time.Second)

	seed := []record{{ID: 1, Name: "a"}}
	got := Load(ctx, s, KeyAccounts, seed)
	require.Equal(t, seed, got)

	raw, ok, err := kv.Get(ctx, KeyAccounts)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":1,"name":"a"}]`, string(raw))
	assert.Equal(t, 1.0, promtest.ToFloat64(fallbacks.WithLabelValues(KeyAccounts, "absent")))
}

func TestLoad_PresentWinsOverSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyOrders, []byte(`[{"id":7,"name":"stored"}]`)))
	s := New(kv, nil, nil, time.Second)

	got := Load(ctx, s, KeyOrders, []record{{ID: 1}})
	require.Equal(t, []record{{ID: 7, Name: "stored"}}, got)
}

func TestLoad_CorruptValueFallsBackToSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyOrders, []byte(`not json`)))
	rec := testlog.New()
	fallbacks := newFallbacks()
	s := New(kv, rec.Logger(), fallbacks, time.Second)

	seed := []record{{ID: 3}}
	got := Load(ctx, s, KeyOrders, seed)
	require.Equal(t, seed, got)

	raw, _, _ := kv.Get(ctx, KeyOrders)
	require.JSONEq(t, `[{"id":3,"name":""}]`, string(raw))

	e, ok := rec.Find("stored value does not parse")
	require.True(t, ok)
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, 1.0, promtest.ToFloat64(fallbacks.WithLabelValues(KeyOrders, "corrupt")))
}

func TestLoad_ReadErrorKeepsStoredValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := NewMemoryKV()
	stored := `[{"id":1,"name":""},{"id":2,"name":""},{"id":3,"name":""}]`
	require.NoError(t, mem.Set(ctx, KeyOrders, []byte(stored)))

	kv := newStubKV()
	kv.getFn = func(context.Context, string) ([]byte, bool, error) { return nil, false, errors.New("i/o timeout") }
	kv.setFn = mem.Set
	rec := testlog.New()
	fallbacks := newFallbacks()
	s := New(kv, rec.Logger(), fallbacks, time.Second)

	got := Load(ctx, s, KeyOrders, []record{{ID: 99}})
	require.Equal(t, []record{{ID: 99}}, got)

	raw, ok, err := mem.Get(ctx, KeyOrders)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, stored, string(raw))

	require.True(t, rec.Has("store read failed"))
	require.True(t, rec.Has("store unreadable, using seed without write-back"))
	assert.False(t, rec.Has("store seeded"))
	assert.Equal(t, 1.0, promtest.ToFloat64(fallbacks.WithLabelValues(KeyOrders, "read_error")))
}

func TestLoad_SeedWriteFailureStillReturnsSeed(t *testing.T) {
	t.Parallel()
	kv := newStubKV()
	kv.setFn = func(context.Context, string, []byte) error { return errors.New("read-only") }
	rec := testlog.New()
	s := New(kv, rec.Logger(), nil, time.Second)

	got := Load(context.Background(), s, KeyAccounts, []record{{ID: 2}})
	require.Equal(t, []record{{ID: 2}}, got)

	e, ok := rec.Find("seed write failed")
	require.True(t, ok)
	assert.Equal(t, "error", e.Level)
}

func TestLookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv, nil, nil, time.Second)

	_, ok := Lookup[record](ctx, s, KeySession)
	require.False(t, ok)

	_, present, _ := kv.Get(ctx, KeySession)
	require.False(t, present, "lookup must not seed")

	require.NoError(t, Save(ctx, s, KeySession, record{ID: 4, Name: "courier"}))
	got, ok := Lookup[record](ctx, s, KeySession)
	require.True(t, ok)
	require.Equal(t, record{ID: 4, Name: "courier"}, got)

	require.NoError(t, kv.Set(ctx, KeySession, []byte("{")))
	_, ok = Lookup[record](ctx, s, KeySession)
	require.False(t, ok)
}

func TestSave_WrapsBackendError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	kv := newStubKV()
	kv.setFn = func(context.Context, string, []byte) error { return boom }
	s := New(kv, nil, nil, time.Second)

	err := Save(context.Background(), s, KeyOrders, []record{})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), KeyOrders)
}

func TestSave_AppliesTimeout(t *testing.T) {
	t.Parallel()
	kv := newStubKV()
	kv.setFn = func(ctx context.Context, _ string, _ []byte) error {
		_, ok := ctx.Deadline()
		require.True(t, ok)
		return nil
	}
	s := New(kv, nil, nil, 50*time.Millisecond)
	require.NoError(t, Save(context.Background(), s, KeyOrders, 1))
}

func TestRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := NewMemoryKV()
	s := New(kv, nil, nil, 0)

	require.NoError(t, Save(ctx, s, KeySession, record{ID: 1}))
	require.NoError(t, Remove(ctx, s, KeySession))
	_, ok := Lookup[record](ctx, s, KeySession)
	require.False(t, ok)
}
