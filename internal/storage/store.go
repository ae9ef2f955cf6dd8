// Package storage keeps the export artifacts handed out by the transfer endpoints.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArtifactExt is appended to every artifact name
const ArtifactExt = ".json"

// ErrArtifactNotFound is returned for unknown names and for names that would escape the store
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore is a temporary store keyed by opaque generated names
type ArtifactStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	RemoveOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// NewArtifactName returns a fresh opaque artifact file name
func NewArtifactName() string {
	return uuid.NewString() + ArtifactExt
}

// HandleOf strips the extension, giving the handle returned to clients
func HandleOf(name string) string {
	return strings.TrimSuffix(name, ArtifactExt)
}

// NameOf turns a client handle back into a file name
func NameOf(handle string) string {
	return handle + ArtifactExt
}

// validName accepts a single path element only
func validName(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`+"\x00")
}

// isArtifact reports whether name looks like a file this package generated
func isArtifact(name string) bool {
	if !strings.HasSuffix(name, ArtifactExt) {
		return false
	}
	_, err := uuid.Parse(HandleOf(name))
	return err == nil
}
