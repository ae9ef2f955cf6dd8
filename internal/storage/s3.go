package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"form-service/internal/client"
)

// S3Store keeps artifacts under a key prefix in a bucket
type S3Store struct {
	client client.S3ClientInterface
	prefix string
}

func NewS3Store(c client.S3ClientInterface, prefix string) *S3Store {
	return &S3Store{client: c, prefix: prefix}
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) error {
	if !validName(name) {
		return ErrArtifactNotFound
	}
	return s.client.UploadFile(ctx, s.client.ArtifactKey(s.prefix, name), r, "application/json")
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, ErrArtifactNotFound
	}
	rc, err := s.client.GetFile(ctx, s.client.ArtifactKey(s.prefix, name))
	if errors.Is(err, client.ErrObjectNotFound) {
		return nil, ErrArtifactNotFound
	}
	return rc, err
}

func (s *S3Store) RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	keys, err := s.client.ListKeysOlderThan(ctx, s.prefix, cutoff)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, key := range keys {
		if err := s.client.DeleteFile(ctx, key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

var (
	_ ArtifactStore = (*LocalStore)(nil)
	_ ArtifactStore = (*S3Store)(nil)
)
