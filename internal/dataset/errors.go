package dataset

// errors.go defines the sentinel errors of the dataset layer plus the
// mapping from technical errors to user-facing messages with support
// codes. Handlers wrap sentinels with context (dataset/column name) via
// fmt.Errorf and %w, so callers match with errors.Is.

import (
	"errors"
	"fmt"
	"strings"

	"sheetsight/internal/stats"
)

var (
	// ErrEmptyDataset means truncation left zero data rows to materialize.
	ErrEmptyDataset = errors.New("empty dataset: no rows after truncation")

	// ErrUnknownDataset means the requested dataset is not in the catalog.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrUnknownColumn means the requested column is not in the dataset's
	// schema.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrIngestionFailure wraps a transactional write failure. The
	// transaction is fully rolled back, no partial rows persist.
	ErrIngestionFailure = errors.New("ingestion failed")

	// ErrRowNotFound means a row mutation matched nothing, either because
	// the id does not exist or the row belongs to another owner.
	ErrRowNotFound = errors.New("row not found")

	// ErrUnknownClassifier means the requested classifier kind is not one
	// of admission, school, or region.
	ErrUnknownClassifier = errors.New("unknown classifier")
)

// UserMessage provides user-friendly error information with a code for
// support reference.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

// sentinelMessage pairs a sentinel error with its user message.
type sentinelMessage struct {
	target error
	msg    UserMessage
}

// sentinelMessages is checked with errors.Is in declaration order.
var sentinelMessages = []sentinelMessage{
	{
		target: ErrEmptyDataset,
		msg: UserMessage{
			Message: "The sheet contains no data rows",
			Action:  "Check that data starts right below the header and has no leading blank row",
			Code:    "DS001",
		},
	},
	{
		target: ErrUnknownDataset,
		msg: UserMessage{
			Message: "Dataset not found",
			Action:  "Verify the dataset name, or upload the file again",
			Code:    "DS002",
		},
	},
	{
		target: ErrUnknownColumn,
		msg: UserMessage{
			Message: "Column not found in this dataset",
			Action:  "Check the column list for this dataset",
			Code:    "DS003",
		},
	},
	{
		target: ErrIngestionFailure,
		msg: UserMessage{
			Message: "The upload could not be saved",
			Action:  "No partial data was stored. Please try again",
			Code:    "DS004",
		},
	},
	{
		target: ErrRowNotFound,
		msg: UserMessage{
			Message: "Row not found",
			Action:  "The row may have been deleted or belongs to another user",
			Code:    "DS005",
		},
	},
	{
		target: ErrUnknownClassifier,
		msg: UserMessage{
			Message: "Unknown classification kind",
			Action:  "Use one of: admission, school, region",
			Code:    "DS006",
		},
	},
	{
		target: stats.ErrNoValidValues,
		msg: UserMessage{
			Message: "The column contains no numeric values",
			Action:  "Pick a column with numbers, or check for stray text",
			Code:    "DS007",
		},
	},
	{
		target: ErrTooManyIngests,
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "DS008",
		},
	},
}

// errorPattern maps a substring of a technical error (case-insensitive)
// to a user message. Used for driver errors that carry no sentinel.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB005",
		},
	},
	{
		pattern: "open workbook",
		msg: UserMessage{
			Message: "The file could not be read as a spreadsheet",
			Action:  "Upload an .xlsx file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select an .xlsx file to upload",
			Code:    "FILE002",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the workbook into smaller files",
			Code:    "FILE003",
		},
	},
}

// defaultMessage is the ERR000 fallback. Check application logs for the
// original technical error when users report it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Sentinels are matched first with errors.Is, then text patterns
// case-insensitively; the first match wins.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// wrapUnknownDataset attaches the requested name to ErrUnknownDataset.
func wrapUnknownDataset(name string) error {
	return fmt.Errorf("%w: %s", ErrUnknownDataset, name)
}

// FormatUserError renders "Message (Code: XXX). Action" for display.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
