package csvstore

import (
	"context"
	"errors"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

var (
	// ErrTableNotFound таблицы с таким именем нет в пространстве имен.
	ErrTableNotFound = errors.New("csvstore: table not found")
	// ErrCloudUnavailable облачное хранилище не настроено или бюджет попыток исчерпан.
	ErrCloudUnavailable = errors.New("csvstore: cloud storage unavailable")
)

// Location папка (пространство имен) с таблицами. Для облака FolderID это
// ID папки в OneDrive, для локального хранилища пустой.
type Location struct {
	Namespace string
	FolderID  string
	Mode      domain.StorageMode
}

// Store плоское хранилище именованных CSV-таблиц, сгруппированных по папкам.
type Store interface {
	Ensure(ctx context.Context, namespace string) (Location, error)
	Read(ctx context.Context, loc Location, name string) (*Table, error)
	Write(ctx context.Context, loc Location, table *Table) error
	List(ctx context.Context, loc Location) ([]string, error)
	Delete(ctx context.Context, loc Location) error
}
