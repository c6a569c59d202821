package csvstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/onedrive"
	"github.com/rs/zerolog"
)

const DefaultMaxAttempts = 5

// FallbackStore пишет в облако, пока не исчерпан бюджет попыток, и
// переключается на локальное хранилище. Бюджет общий для всех операций
// хранилища: каждая неудачная попытка облака его уменьшает, любая удачная
// восстанавливает полностью. Ошибка авторизации исчерпывает его сразу.
type FallbackStore struct {
	cloud       Store
	local       *LocalStore
	maxAttempts int
	log         zerolog.Logger

	mu       sync.Mutex
	failures int
}

// NewFallbackStore; cloud может быть nil, тогда все операции локальные.
func NewFallbackStore(cloud Store, local *LocalStore, maxAttempts int, log zerolog.Logger) *FallbackStore {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &FallbackStore{cloud: cloud, local: local, maxAttempts: maxAttempts, log: log}
}

// CloudAvailable сообщает, будет ли следующая операция пробовать облако.
func (s *FallbackStore) CloudAvailable() bool {
	if s.cloud == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures < s.maxAttempts
}

// Reset восстанавливает бюджет попыток.
func (s *FallbackStore) Reset() {
	s.mu.Lock()
	s.failures = 0
	s.mu.Unlock()
}

func (s *FallbackStore) Local() *LocalStore { return s.local }

// tryCloud выполняет op, пока она не удастся или не кончится бюджет.
// Бюджет тратят только временные сбои, ошибка авторизации исчерпывает его
// сразу. Остальные ошибки возвращаются как есть, без повтора. Только
// ErrCloudUnavailable в результате означает переход на локальное хранилище.
func (s *FallbackStore) tryCloud(ctx context.Context, name string, op func() error) error {
	if s.cloud == nil {
		return ErrCloudUnavailable
	}
	for {
		s.mu.Lock()
		if s.failures >= s.maxAttempts {
			s.mu.Unlock()
			return ErrCloudUnavailable
		}
		s.mu.Unlock()

		err := op()
		if err == nil || errors.Is(err, ErrTableNotFound) {
			s.Reset()
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		auth := onedrive.IsAuthError(err)
		if !auth && !onedrive.IsTransient(err) {
			return err
		}

		s.mu.Lock()
		if auth {
			s.failures = s.maxAttempts
		} else {
			s.failures++
		}
		left := s.maxAttempts - s.failures
		s.mu.Unlock()

		s.log.Warn().Err(err).Str("op", name).Int("attempts_left", left).Msg("cloud storage call failed")
		if left <= 0 {
			return errors.Join(ErrCloudUnavailable, err)
		}
	}
}

func (s *FallbackStore) Ensure(ctx context.Context, namespace string) (Location, error) {
	var loc Location
	err := s.tryCloud(ctx, "ensure", func() error {
		var err error
		loc, err = s.cloud.Ensure(ctx, namespace)
		return err
	})
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, ErrCloudUnavailable) {
		return Location{}, err
	}
	s.log.Warn().Str("namespace", namespace).Msg("using local storage")
	return s.local.Ensure(ctx, namespace)
}

// Read отдает невыгруженную локальную копию, если она есть; иначе облако,
// а при его недоступности локальный кэш.
func (s *FallbackStore) Read(ctx context.Context, loc Location, name string) (*Table, error) {
	dirty, err := s.local.IsDirty(ctx, loc.Namespace, name)
	if err != nil {
		return nil, err
	}
	if dirty {
		return s.local.Read(ctx, loc, name)
	}

	var table *Table
	err = s.tryCloud(ctx, "read", func() error {
		var err error
		table, err = s.cloud.Read(ctx, loc, name)
		return err
	})
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, ErrCloudUnavailable) {
		return nil, err
	}
	return s.local.Read(ctx, loc, name)
}

// Write при успехе в облаке оставляет чистую локальную копию, иначе
// сохраняет таблицу локально как dirty.
func (s *FallbackStore) Write(ctx context.Context, loc Location, table *Table) error {
	err := s.tryCloud(ctx, "write", func() error {
		return s.cloud.Write(ctx, loc, table)
	})
	if err == nil {
		if err := s.local.Put(ctx, loc.Namespace, table, false); err != nil {
			s.log.Warn().Err(err).Str("namespace", loc.Namespace).Str("table", table.Name).Msg("local cache update failed")
		}
		return nil
	}
	if !errors.Is(err, ErrCloudUnavailable) {
		return err
	}
	s.log.Warn().Str("namespace", loc.Namespace).Str("table", table.Name).Msg("table saved locally, pending sync")
	return s.local.Write(ctx, loc, table)
}

func (s *FallbackStore) List(ctx context.Context, loc Location) ([]string, error) {
	localNames, err := s.local.List(ctx, loc)
	if err != nil {
		return nil, err
	}

	var cloudNames []string
	err = s.tryCloud(ctx, "list", func() error {
		var err error
		cloudNames, err = s.cloud.List(ctx, loc)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrCloudUnavailable) {
			return nil, err
		}
		return localNames, nil
	}

	seen := make(map[string]bool, len(cloudNames)+len(localNames))
	names := make([]string, 0, len(cloudNames)+len(localNames))
	for _, n := range append(cloudNames, localNames...) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete удаляет папку в облаке и локальные копии. Папку, уже созданную
// в облаке, без доступного облака удалить нельзя, это ErrCloudUnavailable.
func (s *FallbackStore) Delete(ctx context.Context, loc Location) error {
	err := s.tryCloud(ctx, "delete", func() error {
		return s.cloud.Delete(ctx, loc)
	})
	if err != nil && (hasCloudFolder(loc) || !errors.Is(err, ErrCloudUnavailable)) {
		return err
	}
	return s.local.Delete(ctx, loc)
}

func hasCloudFolder(loc Location) bool {
	return loc.FolderID != "" || loc.Mode == domain.StorageCloud
}
