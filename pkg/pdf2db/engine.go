package pdf2db

// Engine is a PDF table-extraction engine. The pipeline runs a primary
// engine and falls back to a secondary one; both sides of that policy are
// consumed through this interface so the fallback is testable with stubs.
//
// Implementations:
//   - extract.TextLayerEngine: positional text-layer extraction (primary)
//   - extract.PlainTextEngine: whole-document plain-text splitting (fallback)
type Engine interface {
	// Name identifies the engine in logs and diagnostics.
	Name() string

	// Extract reads the PDF at path and returns the tables it detected,
	// in page order, preserving row order within each table. A PDF with
	// no detectable tables yields an empty slice and no error.
	Extract(path string) ([]Table, error)
}
