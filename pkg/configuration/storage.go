package configuration

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type Storage interface {
	Set(key string, value any) error
	Unset(key string) error
}

type EmptyStorage struct{}

func (e *EmptyStorage) Set(_ string, _ any) error {
	return nil
}

func (e *EmptyStorage) Unset(_ string) error {
	return nil
}

// JsonStorage persists single keys into a flat json document. Concurrent
// processes are serialized through a lock file next to the document.
type JsonStorage struct {
	path string
}

func NewJsonStorage(path string) *JsonStorage {
	return &JsonStorage{
		path: path,
	}
}

func (s *JsonStorage) Set(key string, value any) error {
	return s.update(func(config map[string]any) {
		config[key] = value
	})
}

func (s *JsonStorage) Unset(key string) error {
	return s.update(func(config map[string]any) {
		delete(config, key)
	})
}

func (s *JsonStorage) update(modify func(config map[string]any)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	config := make(map[string]any)
	fileBytes, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if len(fileBytes) > 0 {
		// a corrupt document is replaced rather than blocking every future write
		_ = json.Unmarshal(fileBytes, &config)
	}

	modify(config)

	configJson, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, configJson, 0o600)
}
