package database

import (
	"context"
	"flag"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/onsenkatsu/internal/database/dbtest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = dbtest.StartPostgres(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_BadConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", 2, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

// TestPool_ConnectionsReleased verifies connections are returned to the pool
func TestPool_ConnectionsReleased(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(context.Background(), testDBConnString, 4, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err, "Failed to acquire connection on iteration %d", i)

		var result int
		err = conn.QueryRow(ctx, "SELECT 1").Scan(&result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result)

		conn.Release()
	}

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "All connections should be released")
}

// TestPool_MaxConnsEnforced verifies the pool respects MaxConns
func TestPool_MaxConnsEnforced(t *testing.T) {
	requireDB(t)

	maxConns := 2
	pool, err := NewPool(context.Background(), testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conns := make([]*pgxpool.Conn, maxConns)
	for i := range conns {
		conns[i], err = pool.Acquire(ctx)
		require.NoError(t, err)
	}

	shortCtx, shortCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer shortCancel()
	_, err = pool.Acquire(shortCtx)
	assert.Error(t, err, "Should fail to acquire when pool is exhausted")

	for _, c := range conns {
		c.Release()
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(context.Background(), testDBConnString, 4, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var result int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("Worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestMigrate_UpDownUp(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testDBConnString, 2, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool, MigrateUp))
	v, err := SchemaVersion(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	require.NoError(t, Migrate(ctx, pool, MigrateDown))
	v, err = SchemaVersion(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	require.NoError(t, Migrate(ctx, pool, MigrateUp))

	var tables int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN
		('partner','user_partner','profile','nyuyoku_log','accessary','user_accessary','quest','quest_onsen','quest_submission')`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 9, tables)

	assert.Error(t, Migrate(ctx, pool, "sideways"))
}
