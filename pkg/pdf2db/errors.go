package pdf2db

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the pipeline's failure taxonomy. Callers distinguish
// stages with errors.Is():
//
//	_, err := loader.Load(ctx, ds, cfg, table)
//	if errors.Is(err, pdf2db.ErrConnectionFailed) { ... }
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrExtractionFailed indicates both engines failed or found no tables.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrNoTables indicates an engine ran cleanly but detected no tables.
	ErrNoTables = errors.New("no tables detected")

	// ErrTransformationFailed indicates the transformer had nothing usable
	// to work with (no input tables, or every row was dropped).
	ErrTransformationFailed = errors.New("transformation failed")

	// ErrLoadFailed indicates the database rejected the append.
	ErrLoadFailed = errors.New("load failed")

	// ErrUnsupportedAuthMethod indicates an unknown authentication method.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// ExtractionError reports that neither engine produced tables for a PDF.
// It carries both underlying errors for diagnostics; an engine that ran
// cleanly but detected nothing is recorded as ErrNoTables.
type ExtractionError struct {
	Path      string
	Primary   error
	Secondary error
}

func (e *ExtractionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no tables could be extracted from %q", e.Path)
	if e.Primary != nil {
		fmt.Fprintf(&b, "; primary engine: %v", e.Primary)
	}
	if e.Secondary != nil {
		fmt.Fprintf(&b, "; secondary engine: %v", e.Secondary)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrExtractionFailed) match.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// Unwrap exposes the underlying engine errors to errors.Is/As.
func (e *ExtractionError) Unwrap() []error {
	var errs []error
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Secondary != nil {
		errs = append(errs, e.Secondary)
	}
	return errs
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrExtractionFailed):
		return ExitExtractionError
	case errors.Is(err, ErrTransformationFailed):
		return ExitTransformError
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	}

	// cobra/pflag errors arrive as plain strings.
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "required flag") ||
		strings.HasPrefix(errStr, "invalid argument") ||
		strings.Contains(errStr, "accepts") && strings.Contains(errStr, "arg(s)") {
		return ExitUsageError
	}

	// Common connection error shapes that arrive unwrapped from pgx.
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
