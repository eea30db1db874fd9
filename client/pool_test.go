package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/protocol"
	"github.com/coingaming/gremlex/testutil"
)

func TestPoolQuery(t *testing.T) {
	srv := testutil.NewServer(func(conn *testutil.Conn, req protocol.Request) {
		_ = conn.SendResponse(req.RequestID, 200, "", listValue("0"))
	})
	defer srv.Close()

	cfg := srv.Config()
	cfg.PoolSize = 2
	pool := NewPool(cfg, testLogger(), nil)
	require.NoError(t, pool.Start(context.Background()))
	defer func() { _ = pool.Stop(5 * time.Second) }()

	readyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.WaitReady(readyCtx))

	for i := 0; i < 5; i++ {
		values, err := pool.Query(context.Background(), "g.V().count()", 5*time.Second)
		require.NoError(t, err)
		assert.Equal(t, []any{"0"}, values)
	}
}

func TestPoolSerializesPerWorker(t *testing.T) {
	srv := testutil.NewServer(func(conn *testutil.Conn, req protocol.Request) {
		time.Sleep(50 * time.Millisecond)
		_ = conn.SendResponse(req.RequestID, 200, "", listValue("ok"))
	})
	defer srv.Close()

	cfg := srv.Config()
	cfg.PoolSize = 2
	pool := NewPool(cfg, testLogger(), nil)
	require.NoError(t, pool.Start(context.Background()))
	defer func() { _ = pool.Stop(5 * time.Second) }()

	readyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.WaitReady(readyCtx))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = pool.Query(context.Background(), "g.V()", 5*time.Second)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestPoolOverflowWorker(t *testing.T) {
	srv := testutil.NewServer(func(conn *testutil.Conn, req protocol.Request) {
		time.Sleep(100 * time.Millisecond)
		_ = conn.SendResponse(req.RequestID, 200, "", listValue("ok"))
	})
	defer srv.Close()

	cfg := srv.Config()
	cfg.PoolSize = 1
	cfg.MaxOverflow = 2
	pool := NewPool(cfg, testLogger(), nil)
	require.NoError(t, pool.Start(context.Background()))
	defer func() { _ = pool.Stop(5 * time.Second) }()

	readyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.WaitReady(readyCtx))

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = pool.Query(context.Background(), "g.V()", 10*time.Second)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestPoolQueryBeforeStart(t *testing.T) {
	srv := testutil.NewServer(nil)
	defer srv.Close()

	pool := NewPool(srv.Config(), testLogger(), nil)
	_, err := pool.Query(context.Background(), "g.V()", time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrClientClosed))
}

func TestPoolDoubleStart(t *testing.T) {
	srv := testutil.NewServer(nil)
	defer srv.Close()

	pool := NewPool(srv.Config(), testLogger(), nil)
	require.NoError(t, pool.Start(context.Background()))
	defer func() { _ = pool.Stop(5 * time.Second) }()

	require.Error(t, pool.Start(context.Background()))
}

func TestPoolStats(t *testing.T) {
	srv := testutil.NewServer(nil)
	defer srv.Close()

	cfg := srv.Config()
	cfg.PoolSize = 3
	cfg.MaxOverflow = 1
	pool := NewPool(cfg, testLogger(), nil)
	require.NoError(t, pool.Start(context.Background()))
	defer func() { _ = pool.Stop(5 * time.Second) }()

	readyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.WaitReady(readyCtx))

	stats := pool.Stats()
	assert.Equal(t, 3, stats.Size)
	assert.Equal(t, 1, stats.MaxOverflow)
	assert.Len(t, stats.Workers, 3)
}
