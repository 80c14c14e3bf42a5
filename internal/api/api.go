// Package api talks to the remote compliance platform.
//
// The Service interface abstracts the platform so the reconciler and CLI can
// be tested against fakes; Client is the HTTP implementation. The package
// never touches the local ledger: callers record progress only after a call
// succeeds, so a failed upload cannot leave phantom progress behind.
package api

import (
	"context"
	"io"

	"github.com/verdantiq/esgtrack/internal/domain"
)

// Service is the remote compliance platform surface the core depends on.
type Service interface {
	// FetchTasks returns every task assigned to the authenticated user.
	FetchTasks(ctx context.Context) ([]domain.Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*domain.Task, error)

	// UploadAttachment streams one evidence file to a task. The client-side
	// size cap is enforced before any bytes are dispatched.
	UploadAttachment(ctx context.Context, taskID string, upload Upload) (*domain.Evidence, error)

	// DeleteAttachment removes one evidence record from a task.
	DeleteAttachment(ctx context.Context, taskID, attachmentID string) error

	// FetchTeamMembers returns the organization's team members.
	FetchTeamMembers(ctx context.Context) ([]domain.User, error)
}

// TaskPatch is a partial task update. Nil pointer fields are omitted from
// the request body entirely, so the server only sees what changed.
type TaskPatch struct {
	Status             *domain.TaskStatus `json:"status,omitempty"`
	ProgressPercentage *int               `json:"progress_percentage,omitempty"`
	AssignedTo         *string            `json:"assigned_to,omitempty"`
	DataEntries        map[string]string  `json:"data_entries,omitempty"`
}

// Upload describes one evidence file to send.
type Upload struct {
	// Filename is the client-side name of the file.
	Filename string

	// Size is the payload size in bytes, checked against the upload cap.
	Size int64

	// Content is the file payload. Read exactly once.
	Content io.Reader

	// Type defaults to evidence when empty.
	Type domain.AttachmentType

	// Title and Description annotate the evidence record.
	Title       string
	Description string
}
