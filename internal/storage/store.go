// Package storage provides the user-partitioned local document store backing
// the progress ledger and the onboarding location configuration.
//
// Documents are JSON files on the local filesystem, written atomically via
// write-then-rename so a crash never leaves a partially written document.
// Each authenticated user gets an isolated partition derived from their
// email address; switching user means constructing a store with a different
// partition, not mutating shared state.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	esgerrors "github.com/verdantiq/esgtrack/internal/errors"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions
)

// Well-known document keys.
const (
	// LedgerKey is the progress ledger document.
	LedgerKey = "progress_log"

	// LocationsKey is the raw location/meter configuration document,
	// written by the onboarding flow and read-only to the core.
	LocationsKey = "onboarding_locations"
)

// partitionSanitizer collapses any non-alphanumeric run in a user identity
// into underscores, matching the partition keys the web client produced.
var partitionSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// PartitionKey derives the storage partition for a user identity (email).
// Returns an error for an empty identity: unpartitioned writes would let
// one user's progress leak into another's.
func PartitionKey(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", esgerrors.ErrInvalidPartition
	}
	return partitionSanitizer.ReplaceAllString(trimmed, "_"), nil
}

// Store is a file-backed document store for one user partition.
type Store struct {
	baseDir   string
	partition string
}

// NewStore creates a Store rooted at baseDir for the given partition.
// The partition directory is created lazily on first write.
func NewStore(baseDir, partition string) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("failed to create store: base directory %w", esgerrors.ErrEmptyValue)
	}
	if partition == "" {
		return nil, fmt.Errorf("failed to create store: %w", esgerrors.ErrInvalidPartition)
	}
	return &Store{baseDir: baseDir, partition: partition}, nil
}

// Partition returns the partition this store is bound to.
func (s *Store) Partition() string {
	return s.partition
}

// Get reads and decodes the document stored under key into out.
// The boolean result reports whether a document existed at all.
func (s *Store) Get(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.docPath(key)) //#nosec G304 -- path is constructed from a sanitized partition
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read document '%s': %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return true, fmt.Errorf("failed to parse document '%s': %w", key, esgerrors.ErrLedgerCorrupted)
	}
	return true, nil
}

// Put encodes doc as JSON and writes it atomically under key.
// The full document is rewritten on every call.
func (s *Store) Put(key string, doc any) error {
	if err := os.MkdirAll(s.partitionDir(), dirPerm); err != nil {
		return fmt.Errorf("failed to create partition directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document '%s': %w", key, err)
	}
	if err := atomicWrite(s.docPath(key), data); err != nil {
		return fmt.Errorf("failed to write document '%s': %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key. Missing documents are not
// an error; deletion is idempotent.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.docPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document '%s': %w", key, err)
	}
	return nil
}

// Clear removes the entire partition directory and every document in it.
// Used on user logout.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.partitionDir()); err != nil {
		return fmt.Errorf("failed to clear partition '%s': %w", s.partition, err)
	}
	return nil
}

// partitionDir returns the directory holding this partition's documents.
func (s *Store) partitionDir() string {
	return filepath.Join(s.baseDir, s.partition)
}

// docPath returns the file path for a document key.
func (s *Store) docPath(key string) string {
	return filepath.Join(s.partitionDir(), key+".json")
}

// atomicWrite writes data to a file atomically using write-then-rename.
// Uses filePerm (0o600) for secure file permissions.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Sync to disk (ensure data is persisted before rename)
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
