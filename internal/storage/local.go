package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStore keeps artifacts in a directory on local disk
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs}, nil
}

// resolve maps name to a path inside the store directory
func (s *LocalStore) resolve(name string) (string, error) {
	if !validName(name) {
		return "", ErrArtifactNotFound
	}
	p := filepath.Join(s.dir, name)
	rel, err := filepath.Rel(s.dir, p)
	if err != nil || rel != name || strings.HasPrefix(rel, "..") {
		return "", ErrArtifactNotFound
	}
	return p, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) error {
	p, err := s.resolve(name)
	if err != nil {
		return fmt.Errorf("invalid artifact name %q", name)
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return f.Close()
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrArtifactNotFound
		}
		return nil, err
	}
	return f, nil
}

// RemoveOlderThan deletes generated artifacts modified before cutoff; other files are left alone
func (s *LocalStore) RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isArtifact(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return removed, err
			}
			removed++
		}
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
	}
	return removed, nil
}
