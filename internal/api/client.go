package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantiq/esgtrack/internal/domain"
	esgerrors "github.com/verdantiq/esgtrack/internal/errors"
)

// DefaultMaxUploadBytes is the client-side upload cap (10 MB).
const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

// ClientOptions configures the HTTP client.
type ClientOptions struct {
	// BaseURL is the platform root, e.g. "https://api.example.com".
	BaseURL string

	// Token is an optional bearer token sent on every request.
	Token string

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration

	// MaxUploadBytes overrides the upload cap. Zero means the default.
	MaxUploadBytes int64

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL        string
	token          string
	maxUploadBytes int64
	httpClient     *http.Client
	logger         zerolog.Logger
}

// Compile-time interface check.
var _ Service = (*Client)(nil)

// NewClient creates a Client for the compliance platform.
func NewClient(opts ClientOptions, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, esgerrors.Wrap(esgerrors.ErrEmptyValue, "failed to create api client: base URL")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		token:          opts.Token,
		maxUploadBytes: maxUpload,
		httpClient:     httpClient,
		logger:         logger.With().Str("component", "api").Logger(),
	}, nil
}

// FetchTasks returns every task assigned to the authenticated user.
func (c *Client) FetchTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.doJSON(ctx, http.MethodGet, "/api/tasks/", nil, &tasks); err != nil {
		return nil, esgerrors.Wrap(err, "failed to fetch tasks")
	}
	c.logger.Debug().Int("count", len(tasks)).Msg("fetched tasks")
	return tasks, nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*domain.Task, error) {
	if taskID == "" {
		return nil, esgerrors.Wrap(esgerrors.ErrEmptyValue, "failed to update task: task ID")
	}
	var task domain.Task
	path := "/api/tasks/" + taskID + "/"
	if err := c.doJSON(ctx, http.MethodPatch, path, patch, &task); err != nil {
		return nil, esgerrors.Wrapf(err, "failed to update task '%s'", taskID)
	}
	return &task, nil
}

// UploadAttachment streams one evidence file to a task as multipart form
// data. Files over the configured cap are rejected before any bytes leave
// the client.
func (c *Client) UploadAttachment(ctx context.Context, taskID string, upload Upload) (*domain.Evidence, error) {
	if taskID == "" {
		return nil, esgerrors.Wrap(esgerrors.ErrEmptyValue, "failed to upload attachment: task ID")
	}
	if upload.Size > c.maxUploadBytes {
		return nil, esgerrors.Wrapf(esgerrors.ErrFileTooLarge,
			"failed to upload '%s' (%d bytes, limit %d)", upload.Filename, upload.Size, c.maxUploadBytes)
	}

	attachmentType := upload.Type
	if attachmentType == "" {
		attachmentType = domain.AttachmentTypeEvidence
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, esgerrors.Wrap(err, "failed to build upload form")
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, esgerrors.Wrapf(err, "failed to read upload '%s'", upload.Filename)
	}
	_ = writer.WriteField("attachment_type", attachmentType.String())
	if upload.Title != "" {
		_ = writer.WriteField("title", upload.Title)
	}
	if upload.Description != "" {
		_ = writer.WriteField("description", upload.Description)
	}
	if err := writer.Close(); err != nil {
		return nil, esgerrors.Wrap(err, "failed to finalize upload form")
	}

	path := "/api/tasks/" + taskID + "/attachments/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, esgerrors.Wrap(err, "failed to build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, esgerrors.Wrapf(esgerrors.ErrNetworkUnreachable, "failed to upload '%s': %v", upload.Filename, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := categorize(resp.StatusCode); err != nil {
		return nil, esgerrors.Wrapf(err, "failed to upload '%s'", upload.Filename)
	}

	var evidence domain.Evidence
	if err := json.NewDecoder(resp.Body).Decode(&evidence); err != nil {
		return nil, esgerrors.Wrapf(esgerrors.ErrInvalidResponse, "failed to decode upload response: %v", err)
	}

	c.logger.Info().
		Str("task_id", taskID).
		Str("filename", upload.Filename).
		Int64("size", upload.Size).
		Msg("attachment uploaded")
	return &evidence, nil
}

// DeleteAttachment removes one evidence record from a task.
func (c *Client) DeleteAttachment(ctx context.Context, taskID, attachmentID string) error {
	if taskID == "" || attachmentID == "" {
		return esgerrors.Wrap(esgerrors.ErrEmptyValue, "failed to delete attachment: identifier")
	}
	path := "/api/tasks/" + taskID + "/attachments/" + attachmentID + "/"
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return esgerrors.Wrapf(err, "failed to delete attachment '%s'", attachmentID)
	}
	c.logger.Info().Str("task_id", taskID).Str("attachment_id", attachmentID).Msg("attachment deleted")
	return nil
}

// FetchTeamMembers returns the organization's team members. The endpoint's
// response shape has varied across platform versions, so both a bare list
// and a list wrapped under data, results or members are accepted.
func (c *Client) FetchTeamMembers(ctx context.Context) ([]domain.User, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/team/members/", nil, &raw); err != nil {
		return nil, esgerrors.Wrap(err, "failed to fetch team members")
	}

	members, err := decodeMemberEnvelope(raw)
	if err != nil {
		return nil, esgerrors.Wrap(err, "failed to fetch team members")
	}
	c.logger.Debug().Int("count", len(members)).Msg("fetched team members")
	return members, nil
}

// decodeMemberEnvelope unwraps the team-member list from any of its known
// response shapes.
func decodeMemberEnvelope(raw json.RawMessage) ([]domain.User, error) {
	var members []domain.User
	if err := json.Unmarshal(raw, &members); err == nil {
		return members, nil
	}

	var envelope struct {
		Data    []domain.User `json:"data"`
		Results []domain.User `json:"results"`
		Members []domain.User `json:"members"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, esgerrors.Wrapf(esgerrors.ErrInvalidResponse, "unrecognized member list shape: %v", err)
	}
	switch {
	case envelope.Data != nil:
		return envelope.Data, nil
	case envelope.Results != nil:
		return envelope.Results, nil
	case envelope.Members != nil:
		return envelope.Members, nil
	}
	return nil, esgerrors.Wrap(esgerrors.ErrInvalidResponse, "unrecognized member list shape")
}

// doJSON performs a JSON request/response round trip. A nil out skips body
// decoding; a nil in sends no body.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return esgerrors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return esgerrors.Wrap(err, "failed to build request")
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.setAuth(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return esgerrors.Wrapf(esgerrors.ErrNetworkUnreachable, "%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if err := categorize(resp.StatusCode); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return esgerrors.Wrapf(esgerrors.ErrInvalidResponse, "%s %s: %v", method, path, err)
	}
	return nil
}

// setAuth attaches the bearer token when configured.
func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// categorize maps a response status to a sentinel error, or nil for success.
func categorize(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusRequestEntityTooLarge:
		return esgerrors.ErrPayloadTooLarge
	case status == http.StatusUnauthorized:
		return esgerrors.ErrUnauthenticated
	case status == http.StatusForbidden:
		return esgerrors.ErrForbidden
	case status >= 500:
		return fmt.Errorf("%w (status %d)", esgerrors.ErrServerFailure, status)
	default:
		return fmt.Errorf("%w (status %d)", esgerrors.ErrUnexpectedStatus, status)
	}
}
