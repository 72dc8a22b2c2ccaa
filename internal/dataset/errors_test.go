package dataset

import (
	"errors"
	"fmt"
	"testing"

	"sheetsight/internal/stats"
)

func TestMapErrorSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"empty dataset", ErrEmptyDataset, "DS001"},
		{"unknown dataset", ErrUnknownDataset, "DS002"},
		{"unknown column", ErrUnknownColumn, "DS003"},
		{"ingestion failure", ErrIngestionFailure, "DS004"},
		{"row not found", ErrRowNotFound, "DS005"},
		{"unknown classifier", ErrUnknownClassifier, "DS006"},
		{"no valid values", stats.ErrNoValidValues, "DS007"},
		{"too many ingests", ErrTooManyIngests, "DS008"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.code {
				t.Errorf("MapError(%v).Code = %s, want %s", tt.err, got.Code, tt.code)
			}
		})
	}
}

func TestMapErrorWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("%w: demo", ErrUnknownDataset)
	if got := MapError(err); got.Code != "DS002" {
		t.Errorf("wrapped sentinel code = %s, want DS002", got.Code)
	}
}

func TestMapErrorPatterns(t *testing.T) {
	err := errors.New("dial tcp: connection refused")
	if got := MapError(err); got.Code != "DB001" {
		t.Errorf("pattern code = %s, want DB001", got.Code)
	}
}

func TestMapErrorFallback(t *testing.T) {
	if got := MapError(errors.New("something novel")); got.Code != "ERR000" {
		t.Errorf("fallback code = %s, want ERR000", got.Code)
	}
	if got := MapError(nil); got.Code != "" {
		t.Errorf("nil error should map to zero message, got %s", got.Code)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrUnknownDataset)
	want := "Dataset not found (Code: DS002). Verify the dataset name, or upload the file again"
	if got != want {
		t.Errorf("FormatUserError = %q, want %q", got, want)
	}
}
