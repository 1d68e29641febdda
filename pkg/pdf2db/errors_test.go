package pdf2db_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, pdf2db.ExitSuccess},
		{"invalid config", pdf2db.ErrInvalidConfig, pdf2db.ExitConfigError},
		{"connection failed", pdf2db.ErrConnectionFailed, pdf2db.ExitConnectionError},
		{"extraction failed", pdf2db.ErrExtractionFailed, pdf2db.ExitExtractionError},
		{"transformation failed", pdf2db.ErrTransformationFailed, pdf2db.ExitTransformError},
		{"load failed", pdf2db.ErrLoadFailed, pdf2db.ExitLoadError},
		{"unsupported auth", pdf2db.ErrUnsupportedAuthMethod, pdf2db.ExitConfigError},
		{"wrapped load failure", fmt.Errorf("copy into table: %w", pdf2db.ErrLoadFailed), pdf2db.ExitLoadError},
		{"unclassified", errors.New("something odd"), pdf2db.ExitGeneralError},
		{"raw pgx connect error", errors.New("failed to connect to `host=db`"), pdf2db.ExitConnectionError},
		{"unknown flag", errors.New("unknown flag: --foo"), pdf2db.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), pdf2db.ExitUsageError},
		{"required flag", errors.New(`required flag(s) "pdf" not set`), pdf2db.ExitUsageError},
		{"accepts args", errors.New("accepts 0 arg(s), received 1"), pdf2db.ExitUsageError},
		{"invalid flag argument", errors.New(`invalid argument "abc" for "--preview" flag`), pdf2db.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pdf2db.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExtractionError(t *testing.T) {
	primary := errors.New("text layer: malformed xref")
	secondary := errors.New("plain text: encrypted document")
	err := &pdf2db.ExtractionError{
		Path:      "statements/q3.pdf",
		Primary:   primary,
		Secondary: secondary,
	}

	if !errors.Is(err, pdf2db.ErrExtractionFailed) {
		t.Error("ExtractionError should match ErrExtractionFailed")
	}
	if !errors.Is(err, primary) || !errors.Is(err, secondary) {
		t.Error("ExtractionError should unwrap to both engine errors")
	}
	if got := pdf2db.ExitCodeForError(err); got != pdf2db.ExitExtractionError {
		t.Errorf("exit code = %d, want %d", got, pdf2db.ExitExtractionError)
	}

	msg := err.Error()
	for _, want := range []string{"statements/q3.pdf", "malformed xref", "encrypted document"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestExtractionErrorNoUnderlying(t *testing.T) {
	// Both engines ran cleanly but found nothing.
	err := &pdf2db.ExtractionError{Path: "empty.pdf"}
	if !errors.Is(err, pdf2db.ErrExtractionFailed) {
		t.Error("bare ExtractionError should still match ErrExtractionFailed")
	}
}
