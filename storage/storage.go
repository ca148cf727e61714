// Package storage is the object storage gateway for uploaded documents.
// Binaries live on disk under opaque UUID keys; access from outside a session
// goes through HMAC-signed, expiring URLs.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrObjectTooLarge = errors.New("object exceeds maximum allowed size")
	ErrInvalidKey     = errors.New("invalid object key")
)

// MaxObjectSize caps a single upload at 25 MB.
const MaxObjectSize = 25 * 1024 * 1024

// AllowedMimeTypes lists the document content types the portal accepts.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/dicom":     true,
	"text/plain":      true,
}

// keys are UUIDs minted by the service layer; reject anything else so a key
// can never traverse out of the base directory.
var keyPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ObjectStore stores and retrieves document binaries by key.
type ObjectStore interface {
	Put(key string, r io.Reader) (int64, error)
	Get(key string) (io.ReadCloser, int64, error)
	Delete(key string) error
}

// DiskStore keeps objects as flat files under a base directory.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the base directory if needed.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create storage directory")
	}
	return &DiskStore{baseDir: baseDir}, nil
}

func (s *DiskStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.baseDir, key), nil
}

// Put writes the object, enforcing the size cap, and returns the byte count.
func (s *DiskStore) Put(key string, r io.Reader) (int64, error) {
	path, err := s.path(key)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create object file")
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, MaxObjectSize+1))
	if err != nil {
		return 0, errors.Wrap(err, "failed to write object")
	}
	if n > MaxObjectSize {
		if removeErr := os.Remove(path); removeErr != nil {
			return 0, errors.Wrap(removeErr, "failed to remove oversized object")
		}
		return 0, ErrObjectTooLarge
	}
	return n, nil
}

// Get opens the object for reading and reports its size.
func (s *DiskStore) Get(key string) (io.ReadCloser, int64, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, ErrObjectNotFound
		}
		return nil, 0, errors.Wrap(err, "failed to stat object")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to open object")
	}
	return f, info.Size(), nil
}

// Delete removes the object; deleting a missing object is not an error.
func (s *DiskStore) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete object")
	}
	return nil
}
