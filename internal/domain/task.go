// Package domain provides shared domain types for the esgtrack compliance tracker.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: standard library only
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case to match the remote compliance API.
package domain

import "time"

// Category classifies a compliance task along the ESG axes.
type Category string

// Category constants match the values the remote API returns.
const (
	CategoryEnvironmental Category = "environmental"
	CategorySocial        Category = "social"
	CategoryGovernance    Category = "governance"
	CategoryGeneral       Category = "general"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// TaskStatus represents the server-side state of a compliance task.
type TaskStatus string

// Task status constants define the valid states the API reports.
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// AttachmentType distinguishes plain evidence uploads from data-backed evidence.
type AttachmentType string

// Attachment type constants.
const (
	AttachmentTypeEvidence     AttachmentType = "evidence"
	AttachmentTypeDataEvidence AttachmentType = "data_evidence"
)

// String returns the string representation of the AttachmentType.
func (a AttachmentType) String() string {
	return string(a)
}

// Task represents a single compliance obligation owned by the remote API.
// The core treats tasks as read-only input: requirement extraction and
// progress tracking derive everything else from these fields.
//
// Example JSON representation:
//
//	{
//	    "id": "task-42",
//	    "title": "Upload monthly electricity bills",
//	    "description": "Collect utility bills for the main office",
//	    "action_required": "Upload 1 month of electricity bills",
//	    "category": "environmental",
//	    "priority": "high",
//	    "status": "in_progress",
//	    "progress_percentage": 50,
//	    "attachments": [...],
//	    "data_entries": {"ELC0001_current": "1250"}
//	}
type Task struct {
	// ID is the unique identifier assigned by the remote API.
	ID string `json:"id"`

	// Title is the human-readable task name.
	Title string `json:"title"`

	// Description is the free-text body of the task.
	Description string `json:"description"`

	// ActionRequired is the free-text instruction describing what the user must do.
	ActionRequired string `json:"action_required"`

	// Category is the ESG classification of the task.
	Category Category `json:"category"`

	// Priority is the server-assigned priority label (e.g. "high").
	Priority string `json:"priority,omitempty"`

	// Status is the server-side lifecycle state.
	Status TaskStatus `json:"status"`

	// ProgressPercentage is the server-recorded completion percentage (0-100).
	ProgressPercentage int `json:"progress_percentage"`

	// Attachments is the ordered list of evidence uploaded for this task.
	Attachments []Evidence `json:"attachments,omitempty"`

	// DataEntries maps field keys to stored values for this task.
	DataEntries map[string]string `json:"data_entries,omitempty"`

	// AssignedMeters is an optional server-persisted meter assignment.
	// When present it overrides local meter resolution entirely.
	AssignedMeters *AssignedMeters `json:"assigned_meters,omitempty"`

	// AssignedTo is the identifier of the user the task is assigned to.
	AssignedTo string `json:"assigned_to,omitempty"`
}

// Text returns the combined free-text fields used by keyword classification.
// Missing fields are treated as empty strings, never as errors.
func (t *Task) Text() string {
	if t == nil {
		return ""
	}
	return t.ActionRequired + " " + t.Description + " " + t.Title
}

// AssignedMeters is the server-persisted meter assignment wrapper.
type AssignedMeters struct {
	Meters []Meter `json:"meters"`
}

// Evidence represents an uploaded file substantiating task completion.
// Evidence records are owned by the remote API and mutate only through
// upload and delete operations.
type Evidence struct {
	// ID is the attachment identifier assigned by the remote API.
	ID string `json:"id"`

	// Title is the display name for the uploaded file.
	Title string `json:"title"`

	// Description is an optional caption.
	Description string `json:"description,omitempty"`

	// OriginalFilename is the client-side filename at upload time.
	OriginalFilename string `json:"original_filename,omitempty"`

	// FileSize is the payload size in bytes.
	FileSize int64 `json:"file_size"`

	// UploadedAt is when the server accepted the upload.
	UploadedAt time.Time `json:"uploaded_at"`

	// AttachmentType distinguishes evidence from data_evidence.
	AttachmentType AttachmentType `json:"attachment_type"`
}

// User is a team member returned by the remote API.
// Only identity fields are relevant to the core (storage partitioning).
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}
