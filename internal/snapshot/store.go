package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/staffing-api/internal/domain"
)

// DefaultCompanyName - имя компании, которой заменяется неудачно загруженный снапшот
const DefaultCompanyName = "New Company"

// Store определяет интерфейс хранилища снапшотов
type Store interface {
	Save(ctx context.Context, doc Document) error
	Load(ctx context.Context) (Document, error)
}

// FileStore хранит снапшот в JSON файле.
type FileStore struct {
	Path string
}

// NewFileStore создаёт файловое хранилище
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Save(_ context.Context, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot dir: %w", err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrNoSnapshot, s.Path)
		}
		return Document{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Parse(data)
}

// Open загружает компанию из хранилища. Любая ошибка загрузки не
// пробрасывается: вместо неё возвращается пустая компания с именем fallbackName.
func Open(ctx context.Context, store Store, logger *slog.Logger, fallbackName string, opts ...domain.Option) *domain.Company {
	if fallbackName == "" {
		fallbackName = DefaultCompanyName
	}
	empty := func() *domain.Company {
		c, err := domain.NewCompany(fallbackName, opts...)
		if err != nil {
			c, _ = domain.NewCompany(DefaultCompanyName, opts...)
		}
		return c
	}

	doc, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			logger.Info("no snapshot found, starting empty", slog.String("company", fallbackName))
		} else {
			logger.Error("failed to load snapshot, starting empty", slog.Any("error", err))
		}
		return empty()
	}

	c, warnings, err := Restore(doc, opts...)
	if err != nil {
		logger.Error("failed to restore snapshot, starting empty", slog.Any("error", err))
		return empty()
	}
	for _, w := range warnings {
		logger.Warn("snapshot restore", slog.String("warning", w))
	}

	logger.Info("snapshot loaded",
		slog.String("company", c.Name()),
		slog.Int("departments", len(c.Departments())),
		slog.Int("employees", len(c.AllEmployees())),
		slog.Int("projects", len(c.Projects())),
	)
	return c
}
