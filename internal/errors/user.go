package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Remote API
	// ===================
	{
		err: ErrPayloadTooLarge,
		info: ErrorInfo{
			Message: "The server rejected the upload because it is too large.",
			Action:  "Reduce the file size and try again.",
		},
	},
	{
		err: ErrFileTooLarge,
		info: ErrorInfo{
			Message: "The file exceeds the 10 MB upload limit.",
			Action:  "Compress or split the file before uploading.",
		},
	},
	{
		err: ErrUnauthenticated,
		info: ErrorInfo{
			Message: "Your session is not authenticated.",
			Action:  "Sign in again and retry.",
		},
	},
	{
		err: ErrForbidden,
		info: ErrorInfo{
			Message: "You do not have permission to modify this task.",
			Action:  "Ask a team administrator to grant you access.",
		},
	},
	{
		err: ErrServerFailure,
		info: ErrorInfo{
			Message: "The compliance service reported an internal error.",
			Action:  "Wait a moment and retry. Your local progress is unchanged.",
		},
	},
	{
		err: ErrNetworkUnreachable,
		info: ErrorInfo{
			Message: "Could not reach the compliance service.",
			Action:  "Check your network connection and retry.",
		},
	},

	// ===================
	// Local state
	// ===================
	{
		err: ErrLedgerCorrupted,
		info: ErrorInfo{
			Message: "The local progress ledger could not be read and was reset.",
			Action:  "Run 'esgtrack sync' to rebuild progress from the server.",
		},
	},
	{
		err: ErrNoLocations,
		info: ErrorInfo{
			Message: "No meter configuration was found for your account.",
			Action:  "Import your locations with 'esgtrack meters import'.",
		},
	},
	{
		err: ErrTaskNotFound,
		info: ErrorInfo{
			Message: "This task is not tracked locally yet.",
			Action:  "Run 'esgtrack sync' to pull tasks from the server.",
		},
	},
}

// UserMessage returns a user-friendly message for the given error.
// Falls back to the raw error text when no mapping exists.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Message
		}
	}
	return err.Error()
}

// Actionable returns the suggested action for the given error,
// or an empty string when none is known.
func Actionable(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Action
		}
	}
	return ""
}
