package domain

import "time"

// LedgerSchemaVersion is the current schema version of the persisted
// progress ledger document. Bump when the document shape changes.
const LedgerSchemaVersion = 1

// EntryStatus is the derived lifecycle state of a ledger entry.
// Status is always recomputed from current counts, never incremented
// or decremented ad hoc, so entries may regress when evidence is removed.
type EntryStatus string

// Entry status constants.
const (
	EntryStatusPending    EntryStatus = "pending"
	EntryStatusInProgress EntryStatus = "in_progress"
	EntryStatusCompleted  EntryStatus = "completed"
)

// String returns the string representation of the EntryStatus.
func (s EntryStatus) String() string {
	return string(s)
}

// Ledger is the per-user persisted progress-tracking document.
// Every mutation rewrites the whole document with an updated timestamp.
//
// Example JSON representation:
//
//	{
//	    "schema_version": 1,
//	    "created_at": "2026-08-01T09:00:00Z",
//	    "last_updated": "2026-08-30T14:05:00Z",
//	    "tasks": {"task-42": {...}}
//	}
type Ledger struct {
	// SchemaVersion enables forward-compatible document migrations.
	SchemaVersion int `json:"schema_version"`

	// CreatedAt is when the document was first written.
	CreatedAt time.Time `json:"created_at"`

	// LastUpdated is refreshed on every persisted mutation.
	LastUpdated time.Time `json:"last_updated"`

	// Tasks maps task id to its progress entry.
	Tasks map[string]*TaskEntry `json:"tasks"`
}

// TaskEntry records required-vs-completed counts for a single task.
// Entries are owned exclusively by the ledger service; callers mutate
// them only through its operations.
type TaskEntry struct {
	// ID is the task identifier (matches the remote API).
	ID string `json:"id"`

	// Title is the task title at initialization time.
	Title string `json:"title"`

	// Category is the ESG classification.
	Category Category `json:"category"`

	// CreatedAt is when the entry was first observed.
	CreatedAt time.Time `json:"created_at"`

	// Files tracks document upload progress.
	Files FileRecord `json:"files"`

	// DataEntries tracks data-field completion.
	DataEntries DataRecord `json:"data_entries"`

	// OverallProgress is the derived completion percentage (0-100).
	OverallProgress int `json:"overall_progress"`

	// Status derives from OverallProgress: 0 is pending, 100 is completed,
	// anything in between is in_progress.
	Status EntryStatus `json:"status"`

	// LastUpdated is refreshed on every mutation of this entry.
	LastUpdated time.Time `json:"last_updated"`
}

// FileRecord tracks required-vs-uploaded files for a task.
type FileRecord struct {
	// Required is the expected number of documents.
	Required int `json:"required"`

	// Uploaded is always recomputed as len(Items).
	Uploaded int `json:"uploaded"`

	// Items is the ordered list of uploaded file summaries.
	Items []FileSummary `json:"items"`
}

// FileSummary is the ledger-local display record for one uploaded file.
// The server is authoritative for file existence; summaries carry
// metadata the server does not model.
type FileSummary struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Size       int64          `json:"size"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Type       AttachmentType `json:"type"`
}

// DataRecord tracks data-field completion for a task.
type DataRecord struct {
	// RequiredFields is the descriptor list for the fields the task needs.
	RequiredFields []FieldDescriptor `json:"required_fields"`

	// CompletedFields is the recomputed subset of required field keys
	// whose recorded value is a non-empty trimmed string.
	CompletedFields []string `json:"completed_fields"`

	// Entries maps field key to the recorded value.
	Entries map[string]DataEntry `json:"entries"`
}

// FieldDescriptor is the persisted slice of a DataField the ledger needs.
type FieldDescriptor struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// DataEntry is one recorded field value with its timestamp.
type DataEntry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
