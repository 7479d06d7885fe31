package sync

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the raw queue snapshot. Implementations decide where the
// bytes live; the queue only cares that Load returns what Save wrote.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore keeps the queue in a single JSON file. Writes go through a temp
// file and rename so a crash mid-write never truncates the queue.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".queue-*")
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
	return os.Rename(tmp.Name(), s.Path)
}
