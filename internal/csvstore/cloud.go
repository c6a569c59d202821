package csvstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/onedrive"
	"github.com/rs/zerolog"
)

// Drive операции OneDrive, которые нужны облачному хранилищу.
type Drive interface {
	EnsureFolderPath(ctx context.Context, path string) (*onedrive.Item, error)
	FindOrCreateFolder(ctx context.Context, parentID, name string) (*onedrive.Item, error)
	FindChild(ctx context.Context, folderID, name string) (*onedrive.Item, error)
	ListChildren(ctx context.Context, folderID string) ([]onedrive.Item, error)
	UploadFile(ctx context.Context, parentID, name string, content []byte) (*onedrive.Item, error)
	UpdateFileContent(ctx context.Context, id string, content []byte) (*onedrive.Item, error)
	GetFileContent(ctx context.Context, id string) ([]byte, error)
	DeleteItem(ctx context.Context, id string) error
}

// CloudStore хранит каждую таблицу как <name>.csv в папке пространства имен
// под корневой папкой приложения.
type CloudStore struct {
	drive    Drive
	rootPath string
	log      zerolog.Logger

	mu     sync.Mutex
	rootID string
}

func NewCloudStore(drive Drive, rootPath string, log zerolog.Logger) *CloudStore {
	return &CloudStore{drive: drive, rootPath: rootPath, log: log}
}

func (s *CloudStore) root(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rootID != "" {
		return s.rootID, nil
	}
	item, err := s.drive.EnsureFolderPath(ctx, s.rootPath)
	if err != nil {
		return "", fmt.Errorf("resolve root folder %q: %w", s.rootPath, err)
	}
	s.rootID = item.ID
	return s.rootID, nil
}

func (s *CloudStore) Ensure(ctx context.Context, namespace string) (Location, error) {
	rootID, err := s.root(ctx)
	if err != nil {
		return Location{}, err
	}
	folder, err := s.drive.FindOrCreateFolder(ctx, rootID, namespace)
	if err != nil {
		return Location{}, fmt.Errorf("ensure folder %q: %w", namespace, err)
	}
	s.log.Debug().Str("namespace", namespace).Str("folder_id", folder.ID).Msg("cloud folder ready")
	return Location{Namespace: namespace, FolderID: folder.ID, Mode: domain.StorageCloud}, nil
}

// folder ID папки; для локально созданного пространства папка создается.
func (s *CloudStore) folder(ctx context.Context, loc Location) (string, error) {
	if loc.FolderID != "" {
		return loc.FolderID, nil
	}
	ensured, err := s.Ensure(ctx, loc.Namespace)
	if err != nil {
		return "", err
	}
	return ensured.FolderID, nil
}

func (s *CloudStore) Read(ctx context.Context, loc Location, name string) (*Table, error) {
	folderID, err := s.folder(ctx, loc)
	if err != nil {
		return nil, err
	}
	item, err := s.drive.FindChild(ctx, folderID, FileName(name))
	if errors.Is(err, onedrive.ErrItemNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	content, err := s.drive.GetFileContent(ctx, item.ID)
	if errors.Is(err, onedrive.ErrItemNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return Decode(name, content)
}

// Write обновляет файл по ID, если он уже есть, иначе создает новый.
func (s *CloudStore) Write(ctx context.Context, loc Location, table *Table) error {
	content, err := Encode(table)
	if err != nil {
		return err
	}
	folderID, err := s.folder(ctx, loc)
	if err != nil {
		return err
	}

	item, err := s.drive.FindChild(ctx, folderID, FileName(table.Name))
	switch {
	case err == nil:
		_, err = s.drive.UpdateFileContent(ctx, item.ID, content)
	case errors.Is(err, onedrive.ErrItemNotFound):
		_, err = s.drive.UploadFile(ctx, folderID, FileName(table.Name), content)
	}
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", loc.Namespace, table.Name, err)
	}
	return nil
}

func (s *CloudStore) List(ctx context.Context, loc Location) ([]string, error) {
	folderID, err := s.folder(ctx, loc)
	if err != nil {
		return nil, err
	}
	children, err := s.drive.ListChildren(ctx, folderID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(children))
	for _, c := range children {
		if c.IsFolder() {
			continue
		}
		if name, ok := TableName(c.Name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *CloudStore) Delete(ctx context.Context, loc Location) error {
	folderID := loc.FolderID
	if folderID == "" {
		rootID, err := s.root(ctx)
		if err != nil {
			return err
		}
		item, err := s.drive.FindChild(ctx, rootID, loc.Namespace)
		if errors.Is(err, onedrive.ErrItemNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		folderID = item.ID
	}
	return s.drive.DeleteItem(ctx, folderID)
}
