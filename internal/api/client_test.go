package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/esgtrack/internal/domain"
	esgerrors "github.com/verdantiq/esgtrack/internal/errors"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseURL: server.URL, Token: "secret"}, zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(ClientOptions{}, zerolog.Nop())
	assert.ErrorIs(t, err, esgerrors.ErrEmptyValue)
}

func TestFetchTasks(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]domain.Task{
			{ID: "task-1", Title: "Upload monthly electricity bills", Category: domain.CategoryEnvironmental},
		})
	}))

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-1", tasks[0].ID)
}

func TestStatusCategorization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "payload too large", status: http.StatusRequestEntityTooLarge, wantErr: esgerrors.ErrPayloadTooLarge},
		{name: "unauthenticated", status: http.StatusUnauthorized, wantErr: esgerrors.ErrUnauthenticated},
		{name: "forbidden", status: http.StatusForbidden, wantErr: esgerrors.ErrForbidden},
		{name: "server failure", status: http.StatusInternalServerError, wantErr: esgerrors.ErrServerFailure},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: esgerrors.ErrServerFailure},
		{name: "uncategorized", status: http.StatusTeapot, wantErr: esgerrors.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.FetchTasks(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchTasksNetworkError(t *testing.T) {
	client, err := NewClient(ClientOptions{BaseURL: "http://127.0.0.1:1"}, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.FetchTasks(context.Background())
	assert.ErrorIs(t, err, esgerrors.ErrNetworkUnreachable)
}

func TestUpdateTask(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/task-1/", r.URL.Path)

		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, map[string]any{"data_entries": map[string]any{"reading": "1250"}}, patch,
			"nil patch fields are omitted entirely")

		_ = json.NewEncoder(w).Encode(domain.Task{ID: "task-1", DataEntries: map[string]string{"reading": "1250"}})
	}))

	task, err := client.UpdateTask(context.Background(), "task-1", TaskPatch{
		DataEntries: map[string]string{"reading": "1250"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1250", task.DataEntries["reading"])
}

func TestUpdateTaskAssignsOwner(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, map[string]any{"assigned_to": "u2"}, patch)

		_ = json.NewEncoder(w).Encode(domain.Task{ID: "task-1", AssignedTo: "u2"})
	}))

	owner := "u2"
	task, err := client.UpdateTask(context.Background(), "task-1", TaskPatch{AssignedTo: &owner})
	require.NoError(t, err)
	assert.Equal(t, "u2", task.AssignedTo)
}

func TestUploadAttachment(t *testing.T) {
	t.Run("oversized upload never reaches the server", func(t *testing.T) {
		dispatched := false
		client := testClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			dispatched = true
		}))

		_, err := client.UploadAttachment(context.Background(), "task-1", Upload{
			Filename: "huge.pdf",
			Size:     DefaultMaxUploadBytes + 1,
			Content:  strings.NewReader("x"),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, esgerrors.ErrFileTooLarge)
		assert.False(t, dispatched)
	})

	t.Run("multipart upload round trip", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/tasks/task-1/attachments/", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))

			assert.Equal(t, "evidence", r.FormValue("attachment_type"))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer func() { _ = file.Close() }()
			assert.Equal(t, "march.pdf", header.Filename)

			_ = json.NewEncoder(w).Encode(domain.Evidence{ID: "ev-1", Title: "march.pdf"})
		}))

		evidence, err := client.UploadAttachment(context.Background(), "task-1", Upload{
			Filename: "march.pdf",
			Size:     12,
			Content:  strings.NewReader("pdf contents"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ev-1", evidence.ID)
	})

	t.Run("data evidence type is forwarded", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, domain.AttachmentTypeDataEvidence.String(), r.FormValue("attachment_type"))

			_ = json.NewEncoder(w).Encode(domain.Evidence{ID: "ev-2"})
		}))

		_, err := client.UploadAttachment(context.Background(), "task-1", Upload{
			Filename: "reading.csv",
			Size:     4,
			Content:  strings.NewReader("data"),
			Type:     domain.AttachmentTypeDataEvidence,
		})
		require.NoError(t, err)
	})
}

func TestDeleteAttachment(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/tasks/task-1/attachments/ev-1/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteAttachment(context.Background(), "task-1", "ev-1"))
}

func TestFetchTeamMembersEnvelopes(t *testing.T) {
	members := []domain.User{{ID: "u1", Email: "user@example.com"}}

	tests := []struct {
		name string
		body any
	}{
		{name: "bare list", body: members},
		{name: "data envelope", body: map[string]any{"data": members}},
		{name: "results envelope", body: map[string]any{"results": members}},
		{name: "members envelope", body: map[string]any{"members": members}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(tt.body)
			}))

			got, err := client.FetchTeamMembers(context.Background())
			require.NoError(t, err)
			assert.Equal(t, members, got)
		})
	}

	t.Run("unrecognized shape", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"people": members})
		}))

		_, err := client.FetchTeamMembers(context.Background())
		assert.ErrorIs(t, err, esgerrors.ErrInvalidResponse)
	})
}
