package csvstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultSyncConcurrency = 4

// SyncedFunc вызывается после выгрузки всех таблиц пространства имен.
type SyncedFunc func(ctx context.Context, loc Location) error

// Syncer выгружает dirty-таблицы локального хранилища в облако.
type Syncer struct {
	cloud       Store
	local       *LocalStore
	fallback    *FallbackStore
	concurrency int
	onSynced    SyncedFunc
	log         zerolog.Logger
	running     atomic.Bool
}

type SyncerOption func(*Syncer)

func WithConcurrency(n int) SyncerOption {
	return func(s *Syncer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithOnSynced(fn SyncedFunc) SyncerOption {
	return func(s *Syncer) { s.onSynced = fn }
}

// WithFallback сбрасывает бюджет попыток хранилища после успешной выгрузки.
func WithFallback(fs *FallbackStore) SyncerOption {
	return func(s *Syncer) { s.fallback = fs }
}

func NewSyncer(cloud Store, local *LocalStore, log zerolog.Logger, opts ...SyncerOption) *Syncer {
	s := &Syncer{cloud: cloud, local: local, concurrency: defaultSyncConcurrency, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncPending выгружает все dirty-таблицы и возвращает число выгруженных.
// Пространства имен обрабатываются параллельно, таблицы внутри одного по очереди.
func (s *Syncer) SyncPending(ctx context.Context) (int, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Debug().Msg("sync already running")
		return 0, nil
	}
	defer s.running.Store(false)

	pending, err := s.local.Pending(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending tables: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	byNamespace := make(map[string][]Pending)
	order := make([]string, 0)
	for _, p := range pending {
		key := NamespaceKey(p.Namespace)
		if _, ok := byNamespace[key]; !ok {
			order = append(order, key)
		}
		byNamespace[key] = append(byNamespace[key], p)
	}

	var synced atomic.Int64
	var mu sync.Mutex
	failed := 0

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, key := range order {
		items := byNamespace[key]
		ns := items[0].Namespace
		g.Go(func() error {
			n, err := s.syncNamespace(ctx, ns, items)
			synced.Add(int64(n))
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				s.log.Warn().Err(err).Str("namespace", ns).Msg("sync namespace failed")
			}
			return err
		})
	}
	err = g.Wait()

	total := int(synced.Load())
	if failed == 0 && s.fallback != nil {
		s.fallback.Reset()
	}
	s.log.Info().Int("synced", total).Int("failed_namespaces", failed).Msg("local tables synced")
	return total, err
}

func (s *Syncer) syncNamespace(ctx context.Context, namespace string, items []Pending) (int, error) {
	loc, err := s.cloud.Ensure(ctx, namespace)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, p := range items {
		table, err := Decode(p.Name, p.Content)
		if err != nil {
			return n, err
		}
		if err := s.cloud.Write(ctx, loc, table); err != nil {
			return n, err
		}
		if _, err := s.local.MarkClean(ctx, namespace, p.Name, p.Version); err != nil {
			return n, err
		}
		n++
	}

	if s.onSynced != nil {
		if err := s.onSynced(ctx, loc); err != nil {
			return n, fmt.Errorf("after sync %s: %w", namespace, err)
		}
	}
	return n, nil
}

// Schedule регистрирует SyncPending в cron по расписанию schedule.
func (s *Syncer) Schedule(c *cron.Cron, schedule string, timeout time.Duration) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := s.SyncPending(ctx); err != nil {
			s.log.Error().Err(err).Msg("cron: sync pending tables failed")
		}
	})
}

// NewCron планировщик с пятипольным форматом расписания.
func NewCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}
