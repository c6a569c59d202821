package csvstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncer_SyncPending(t *testing.T) {
	ctx := context.Background()

	t.Run("выгрузка dirty таблиц", func(t *testing.T) {
		drive := newFakeDrive()
		cloud := NewCloudStore(drive, "Portal", zerolog.Nop())
		local := newLocalStore(t)
		fallback := NewFallbackStore(&flakyStore{inner: cloud, failN: -1, err: errBoom}, local, 1, zerolog.Nop())

		for _, ns := range []string{"Finance", "HR"} {
			loc, err := fallback.Ensure(ctx, ns)
			require.NoError(t, err)
			require.NoError(t, fallback.Write(ctx, loc, &Table{Name: "objectives", Header: []string{"id"}, Rows: [][]string{{ns}}}))
			require.NoError(t, fallback.Write(ctx, loc, &Table{Name: "kpis", Header: []string{"id"}}))
		}
		require.False(t, fallback.CloudAvailable())

		var mu sync.Mutex
		var synced []Location
		syncer := NewSyncer(cloud, local, zerolog.Nop(),
			WithConcurrency(2),
			WithFallback(fallback),
			WithOnSynced(func(_ context.Context, loc Location) error {
				mu.Lock()
				synced = append(synced, loc)
				mu.Unlock()
				return nil
			}),
		)

		n, err := syncer.SyncPending(ctx)

		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Len(t, synced, 2)
		assert.True(t, fallback.CloudAvailable())

		pending, err := local.Pending(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)

		loc, err := cloud.Ensure(ctx, "HR")
		require.NoError(t, err)
		table, err := cloud.Read(ctx, loc, "objectives")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"HR"}}, table.Rows)
	})

	t.Run("нечего выгружать", func(t *testing.T) {
		syncer := NewSyncer(NewCloudStore(newFakeDrive(), "Portal", zerolog.Nop()), newLocalStore(t), zerolog.Nop())

		n, err := syncer.SyncPending(ctx)

		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("ошибка облака оставляет dirty", func(t *testing.T) {
		local := newLocalStore(t)
		require.NoError(t, local.Write(ctx, Location{Namespace: "Finance"}, &Table{Name: "kpis"}))
		syncer := NewSyncer(&flakyStore{inner: NewCloudStore(newFakeDrive(), "Portal", zerolog.Nop()), failN: -1, err: errBoom}, local, zerolog.Nop())

		n, err := syncer.SyncPending(ctx)

		assert.ErrorIs(t, err, errBoom)
		assert.Zero(t, n)
		pending, err := local.Pending(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}

func TestSyncer_Schedule(t *testing.T) {
	syncer := NewSyncer(NewCloudStore(newFakeDrive(), "Portal", zerolog.Nop()), newLocalStore(t), zerolog.Nop())
	c := NewCron()

	_, err := syncer.Schedule(c, "*/5 * * * *", time.Minute)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = syncer.Schedule(c, "not a cron expression", time.Minute)
	assert.Error(t, err)
}
