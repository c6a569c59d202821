package csvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	_ "modernc.org/sqlite"
)

const localSchema = `
CREATE TABLE IF NOT EXISTS tables (
	ns_key     TEXT    NOT NULL,
	namespace  TEXT    NOT NULL,
	name       TEXT    NOT NULL,
	content    TEXT    NOT NULL,
	dirty      INTEGER NOT NULL DEFAULT 0,
	version    INTEGER NOT NULL DEFAULT 1,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (ns_key, name)
);
CREATE INDEX IF NOT EXISTS idx_tables_dirty ON tables(dirty);
`

// LocalStore хранилище таблиц в локальном файле SQLite. Таблицы, записанные
// через Write, помечаются dirty до выгрузки в облако. Пространства имен
// сравниваются без учета регистра, как папки OneDrive.
type LocalStore struct {
	db  *sql.DB
	now func() time.Time
}

// Pending таблица, ожидающая выгрузки в облако.
type Pending struct {
	Namespace string
	Name      string
	Content   []byte
	Version   int64
}

func OpenLocalStore(ctx context.Context, path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, localSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local store schema: %w", err)
	}
	return &LocalStore{db: db, now: time.Now}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) Ensure(_ context.Context, namespace string) (Location, error) {
	return Location{Namespace: namespace, Mode: domain.StorageLocal}, nil
}

func (s *LocalStore) Read(ctx context.Context, loc Location, name string) (*Table, error) {
	var content []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM tables WHERE ns_key = ? AND name = ?`,
		NamespaceKey(loc.Namespace), name,
	).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read local table %s/%s: %w", loc.Namespace, name, err)
	}
	return Decode(name, content)
}

// Write сохраняет таблицу и помечает ее для выгрузки.
func (s *LocalStore) Write(ctx context.Context, loc Location, table *Table) error {
	return s.Put(ctx, loc.Namespace, table, true)
}

// Put сохраняет таблицу с явным флагом dirty. Чистые копии служат кэшем облака.
func (s *LocalStore) Put(ctx context.Context, namespace string, table *Table, dirty bool) error {
	content, err := Encode(table)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tables (ns_key, namespace, name, content, dirty, version, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT (ns_key, name) DO UPDATE SET
			content = excluded.content,
			dirty = excluded.dirty,
			version = tables.version + 1,
			updated_at = excluded.updated_at`,
		NamespaceKey(namespace), namespace, table.Name, string(content), boolToInt(dirty), s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("write local table %s/%s: %w", namespace, table.Name, err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context, loc Location) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM tables WHERE ns_key = ? ORDER BY name`, NamespaceKey(loc.Namespace))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *LocalStore) Delete(ctx context.Context, loc Location) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tables WHERE ns_key = ?`, NamespaceKey(loc.Namespace))
	return err
}

// IsDirty сообщает, есть ли у таблицы невыгруженные изменения.
func (s *LocalStore) IsDirty(ctx context.Context, namespace, name string) (bool, error) {
	var dirty int
	err := s.db.QueryRowContext(ctx,
		`SELECT dirty FROM tables WHERE ns_key = ? AND name = ?`, NamespaceKey(namespace), name,
	).Scan(&dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return dirty == 1, err
}

func (s *LocalStore) Pending(ctx context.Context) ([]Pending, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT namespace, name, content, version FROM tables WHERE dirty = 1 ORDER BY ns_key, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pending
	for rows.Next() {
		var p Pending
		if err := rows.Scan(&p.Namespace, &p.Name, &p.Content, &p.Version); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkClean снимает флаг dirty, только если таблицу не перезаписали после чтения.
func (s *LocalStore) MarkClean(ctx context.Context, namespace, name string, version int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tables SET dirty = 0 WHERE ns_key = ? AND name = ? AND version = ?`,
		NamespaceKey(namespace), name, version)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// NamespaceKey ключ пространства имен без учета регистра.
func NamespaceKey(namespace string) string {
	return strings.ToLower(namespace)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
