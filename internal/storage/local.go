package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalStorage writes artifacts to the configured output directory.
type LocalStorage struct {
	outputDir string
}

func NewLocalStorage(outputDir string) *LocalStorage {
	return &LocalStorage{outputDir: outputDir}
}

func (s *LocalStorage) SaveScript(ctx context.Context, filename string, content []byte) (string, error) {
	return s.save(filename, content, 0644)
}

func (s *LocalStorage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	return s.save(filename, data, 0644)
}

// List returns the artifact filenames in the output directory, sorted.
func (s *LocalStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *LocalStorage) save(filename string, data []byte, perm os.FileMode) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, filename)
	if err := os.WriteFile(path, data, perm); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
