package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

var _ Area = (*FileArea)(nil)

// FileArea persists its keys as a single JSON object on disk. The file is re-read on every
// access so that a second console process sees the latest write.
type FileArea struct {
	path string
	mu   sync.Mutex
}

// NewFileArea returns an area stored at path. The file and its directory are created on first write.
func NewFileArea(path string) *FileArea {
	return &FileArea{path: path}
}

// Path returns the backing file location
func (f *FileArea) Path() string {
	return f.path
}

func (f *FileArea) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileArea) Set(key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *FileArea) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *FileArea) load() (map[string]string, error) {
	values := make(map[string]string)

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FileArea.load ReadFile: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("FileArea.load Unmarshal %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileArea) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("FileArea.save MkdirAll: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("FileArea.save Marshal: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("FileArea.save WriteFile: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("FileArea.save Rename: %w", err)
	}
	return nil
}
