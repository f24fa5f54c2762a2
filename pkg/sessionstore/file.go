package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campusgate/admission_service/internal/domain"
)

// FileStore persists the collection to a single JSON file, for local runs
// without Redis. Saves write to a temp file and rename so a crash mid-write
// never leaves a torn file behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]domain.StudentProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.StudentProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var students []domain.StudentProfile
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("unmarshal student collection: %w", err)
	}
	return students, nil
}

func (s *FileStore) Save(ctx context.Context, students []domain.StudentProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal student collection: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".students-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
