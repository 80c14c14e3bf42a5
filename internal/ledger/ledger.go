// Package ledger maintains the per-user durable progress-tracking document.
//
// The ledger records, for every task, required-vs-completed counts for files
// and data fields plus a derived completion status. It is the only writer of
// that document: callers mutate progress exclusively through the service's
// operations, and every mutation rewrites the full versioned document with a
// refreshed top-level timestamp.
package ledger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/verdantiq/esgtrack/internal/clock"
	"github.com/verdantiq/esgtrack/internal/domain"
	esgerrors "github.com/verdantiq/esgtrack/internal/errors"
	"github.com/verdantiq/esgtrack/internal/storage"
)

// Service owns the progress ledger for a single user partition.
// Switching user means constructing a new Service over a different store.
type Service struct {
	store  *storage.Store
	clk    clock.Clock
	logger zerolog.Logger
}

// NewService creates a ledger service bound to the given partitioned store.
func NewService(store *storage.Store, clk clock.Clock, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		clk:    clk,
		logger: logger.With().Str("component", "ledger").Logger(),
	}
}

// TaskInit carries the fields needed to create a ledger entry.
type TaskInit struct {
	Title         string
	Category      domain.Category
	RequiredFiles int
}

// Log returns the current ledger document. A missing or corrupted document
// yields a fresh empty one; corruption is logged as a warning, never raised
// as a fatal error.
func (s *Service) Log() *domain.Ledger {
	var doc domain.Ledger
	found, err := s.store.Get(storage.LedgerKey, &doc)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ledger unreadable, starting fresh")
		found = false
	}
	if !found || doc.Tasks == nil {
		now := s.clk.Now()
		return &domain.Ledger{
			SchemaVersion: domain.LedgerSchemaVersion,
			CreatedAt:     now,
			LastUpdated:   now,
			Tasks:         make(map[string]*domain.TaskEntry),
		}
	}
	return &doc
}

// save persists the full document with a refreshed timestamp.
func (s *Service) save(doc *domain.Ledger) error {
	doc.SchemaVersion = domain.LedgerSchemaVersion
	doc.LastUpdated = s.clk.Now()
	return s.store.Put(storage.LedgerKey, doc)
}

// Entry returns the ledger entry for a task id.
func (s *Service) Entry(taskID string) (*domain.TaskEntry, error) {
	entry, ok := s.Log().Tasks[taskID]
	if !ok {
		return nil, esgerrors.Wrapf(esgerrors.ErrTaskNotFound, "task '%s'", taskID)
	}
	return entry, nil
}

// InitializeTask creates the entry for a task if absent. Re-initializing an
// existing entry is a no-op: accumulated uploads and data entries are never
// clobbered.
func (s *Service) InitializeTask(taskID string, init TaskInit) error {
	if taskID == "" {
		return esgerrors.Wrap(esgerrors.ErrEmptyValue, "failed to initialize task: task ID")
	}

	doc := s.Log()
	if _, exists := doc.Tasks[taskID]; exists {
		return nil
	}

	now := s.clk.Now()
	doc.Tasks[taskID] = &domain.TaskEntry{
		ID:       taskID,
		Title:    init.Title,
		Category: init.Category,
		CreatedAt: now,
		Files: domain.FileRecord{
			Required: init.RequiredFiles,
			Items:    []domain.FileSummary{},
		},
		DataEntries: domain.DataRecord{
			RequiredFields:  []domain.FieldDescriptor{},
			CompletedFields: []string{},
			Entries:         make(map[string]domain.DataEntry),
		},
		Status:      domain.EntryStatusPending,
		LastUpdated: now,
	}
	recomputeProgress(doc.Tasks[taskID])

	s.logger.Debug().Str("task_id", taskID).Msg("ledger entry initialized")
	return s.save(doc)
}

// LogFileUpload appends a file summary and recomputes progress.
func (s *Service) LogFileUpload(taskID string, file domain.FileSummary) error {
	return s.mutate(taskID, func(entry *domain.TaskEntry) {
		if file.UploadedAt.IsZero() {
			file.UploadedAt = s.clk.Now()
		}
		if file.Type == "" {
			file.Type = domain.AttachmentTypeEvidence
		}
		entry.Files.Items = append(entry.Files.Items, file)
		entry.Files.Uploaded = len(entry.Files.Items)

		s.logger.Info().
			Str("task_id", taskID).
			Str("filename", file.Filename).
			Int("uploaded", entry.Files.Uploaded).
			Int("required", entry.Files.Required).
			Msg("file upload logged")
	})
}

// LogFileRemoval removes a file summary by id and recomputes progress.
// Progress may regress; it is always recomputed from current counts.
func (s *Service) LogFileRemoval(taskID, fileID string) error {
	return s.mutate(taskID, func(entry *domain.TaskEntry) {
		items := entry.Files.Items[:0]
		for _, item := range entry.Files.Items {
			if item.ID != fileID {
				items = append(items, item)
			}
		}
		entry.Files.Items = items
		entry.Files.Uploaded = len(items)

		s.logger.Info().
			Str("task_id", taskID).
			Str("file_id", fileID).
			Int("uploaded", entry.Files.Uploaded).
			Msg("file removal logged")
	})
}

// UpdateDataFields replaces the entry's required-field descriptor list.
// Called whenever the requirement extractor's output changes, e.g. after
// meters are added. Completed fields are recomputed against the new list.
func (s *Service) UpdateDataFields(taskID string, fields []domain.FieldDescriptor) error {
	return s.mutate(taskID, func(entry *domain.TaskEntry) {
		entry.DataEntries.RequiredFields = fields
		recomputeCompleted(entry)
	})
}

// LogDataEntry records a field value with a timestamp, then recomputes the
// completed-field list and overall progress.
func (s *Service) LogDataEntry(taskID, fieldKey, value string) error {
	return s.mutate(taskID, func(entry *domain.TaskEntry) {
		if entry.DataEntries.Entries == nil {
			entry.DataEntries.Entries = make(map[string]domain.DataEntry)
		}
		entry.DataEntries.Entries[fieldKey] = domain.DataEntry{
			Value:     value,
			UpdatedAt: s.clk.Now(),
		}
		recomputeCompleted(entry)

		s.logger.Info().
			Str("task_id", taskID).
			Str("field", fieldKey).
			Int("completed_fields", len(entry.DataEntries.CompletedFields)).
			Msg("data entry logged")
	})
}

// ReplaceFiles swaps the entry's file list wholesale for the server's view.
// Used during reconciliation when local and remote attachment counts
// disagree; the server is authoritative for file existence.
func (s *Service) ReplaceFiles(taskID string, items []domain.FileSummary) error {
	return s.mutate(taskID, func(entry *domain.TaskEntry) {
		if items == nil {
			items = []domain.FileSummary{}
		}
		entry.Files.Items = items
		entry.Files.Uploaded = len(items)

		s.logger.Info().
			Str("task_id", taskID).
			Int("uploaded", entry.Files.Uploaded).
			Msg("file list replaced from server")
	})
}

// MergeDataEntries overwrites recorded values with the server's non-empty
// ones. Empty server values never erase a locally recorded value.
func (s *Service) MergeDataEntries(taskID string, values map[string]string) error {
	return s.mutate(taskID, func(entry *domain.TaskEntry) {
		if entry.DataEntries.Entries == nil {
			entry.DataEntries.Entries = make(map[string]domain.DataEntry)
		}
		for key, value := range values {
			if strings.TrimSpace(value) == "" {
				continue
			}
			entry.DataEntries.Entries[key] = domain.DataEntry{
				Value:     value,
				UpdatedAt: s.clk.Now(),
			}
		}
		recomputeCompleted(entry)
	})
}

// UpdateRequiredFiles overrides the required-file count, keeping the ledger
// aligned with the extractor's authoritative count. Progress is recomputed
// and persisted only when the count actually changed.
func (s *Service) UpdateRequiredFiles(taskID string, count int) error {
	doc := s.Log()
	entry, ok := doc.Tasks[taskID]
	if !ok {
		return esgerrors.Wrapf(esgerrors.ErrTaskNotFound, "task '%s'", taskID)
	}
	if entry.Files.Required == count {
		return nil
	}
	entry.Files.Required = count
	entry.LastUpdated = s.clk.Now()
	recomputeProgress(entry)
	return s.save(doc)
}

// Clear removes the whole ledger document for this user partition.
func (s *Service) Clear() error {
	s.logger.Info().Str("partition", s.store.Partition()).Msg("clearing progress ledger")
	return s.store.Delete(storage.LedgerKey)
}

// mutate loads the document, applies fn to the task's entry, recomputes
// progress and persists. Missing entries yield ErrTaskNotFound.
func (s *Service) mutate(taskID string, fn func(*domain.TaskEntry)) error {
	doc := s.Log()
	entry, ok := doc.Tasks[taskID]
	if !ok {
		return esgerrors.Wrapf(esgerrors.ErrTaskNotFound, "task '%s'", taskID)
	}
	fn(entry)
	entry.LastUpdated = s.clk.Now()
	recomputeProgress(entry)
	return s.save(doc)
}

// recomputeCompleted rebuilds the completed-field list as the subset of
// required fields whose recorded value is a non-empty trimmed string.
func recomputeCompleted(entry *domain.TaskEntry) {
	completed := []string{}
	for _, field := range entry.DataEntries.RequiredFields {
		if !field.Required {
			continue
		}
		rec, ok := entry.DataEntries.Entries[field.Key]
		if ok && strings.TrimSpace(rec.Value) != "" {
			completed = append(completed, field.Key)
		}
	}
	entry.DataEntries.CompletedFields = completed
}
