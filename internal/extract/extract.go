// Package extract turns a PDF file into an ordered sequence of raw tables.
//
// Two engines are involved: a primary one that works off the positional
// text layer, and a plain-text fallback for documents the primary cannot
// make sense of. The Extractor owns the fallback policy; the engines only
// know how to read one file each.
package extract

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

// namespaceSourceID is the fixed UUID namespace for deterministic source
// fingerprints, derived from the canonical string below so the same PDF
// path always logs the same identity across runs.
var namespaceSourceID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pdf2db/source-identity/v1"))

// SourceID returns a deterministic UUIDv5 fingerprint for the PDF at path,
// used to correlate log lines across repeated runs against the same file.
func SourceID(path string) uuid.UUID {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(namespaceSourceID, []byte(filepath.ToSlash(abs)))
}

// Extractor runs the primary engine and falls back to the secondary when
// the primary errors or detects no tables. The secondary is invoked at
// most once. No partial results are cached between attempts.
//
// Not safe for concurrent Extract calls on the same instance.
type Extractor struct {
	primary   pdf2db.Engine
	secondary pdf2db.Engine
	logger    pdf2db.Logger
}

// NewExtractor creates an Extractor with both engines injected.
// Nil dependencies are programmer errors and panic at construction time
// rather than surfacing as nil dereferences mid-pipeline.
func NewExtractor(primary, secondary pdf2db.Engine, logger pdf2db.Logger) *Extractor {
	if primary == nil {
		panic("primary engine cannot be nil")
	}
	if secondary == nil {
		panic("secondary engine cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Extractor{primary: primary, secondary: secondary, logger: logger}
}

// Extract returns the tables found in the PDF at path, in page order,
// produced by whichever engine succeeded first. When both engines fail or
// find nothing it returns a *pdf2db.ExtractionError carrying the path and
// both underlying causes.
func (e *Extractor) Extract(path string) ([]pdf2db.Table, error) {
	e.logger.Verbose("source %s (fingerprint %s)", path, SourceID(path))

	tables, primaryErr := e.run(e.primary, path)
	if primaryErr == nil {
		return tables, nil
	}

	e.logger.Info("%s engine found no tables, falling back to %s: %v",
		e.primary.Name(), e.secondary.Name(), primaryErr)

	tables, secondaryErr := e.run(e.secondary, path)
	if secondaryErr == nil {
		return tables, nil
	}

	return nil, &pdf2db.ExtractionError{
		Path:      path,
		Primary:   primaryErr,
		Secondary: secondaryErr,
	}
}

// run invokes one engine and normalizes "ran fine, found nothing" into
// pdf2db.ErrNoTables so the caller has a single failure signal.
func (e *Extractor) run(engine pdf2db.Engine, path string) ([]pdf2db.Table, error) {
	tables, err := engine.Extract(path)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, pdf2db.ErrNoTables
	}

	rows := 0
	for _, t := range tables {
		rows += len(t.Rows)
	}
	e.logger.Info("Extracted %d table(s), %d row(s) with the %s engine", len(tables), rows, engine.Name())
	return tables, nil
}
