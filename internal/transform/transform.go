// Package transform normalizes raw extracted tables into a single uniform
// dataset: canonical snake_case column names, typed values for the small
// set of recognized columns, explicit nils for everything missing.
package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

// Recognized columns and their coercion targets. Everything else passes
// through as a raw string.
const (
	colRowNumber         = "row_number"
	colAsOfDate          = "as_of_date"
	colCustomerCode      = "customer_code"
	colDateOfRestructure = "date_of_restructure"
)

var expectedColumns = []string{colRowNumber, colAsOfDate, colCustomerCode, colDateOfRestructure}

// headerReplacer collapses the separators seen in raw PDF headers into
// underscores.
var headerReplacer = strings.NewReplacer(" ", "_", "-", "_", "/", "_")

// NormalizeHeader derives the canonical key for a raw column header:
// surrounding whitespace trimmed, lowercased, space/dash/slash replaced
// with underscore. Idempotent.
func NormalizeHeader(raw string) string {
	return headerReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

// Transformer concatenates raw tables, normalizes their headers and
// coerces recognized columns. Stateless apart from the logger.
type Transformer struct {
	logger pdf2db.Logger
}

// NewTransformer creates a Transformer.
func NewTransformer(logger pdf2db.Logger) *Transformer {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Transformer{logger: logger}
}

// Transform builds the unified dataset from the extracted tables in input
// order. Columns appear in first-seen canonical order across all tables;
// rows missing a column carry an explicit nil.
//
// Cell-level coercion failures are recovered locally: the cell becomes nil
// and the row is kept, unless every recognized column present in the row
// failed, in which case the row is dropped. An empty input, or one where
// every row is dropped, fails with pdf2db.ErrTransformationFailed.
func (t *Transformer) Transform(tables []pdf2db.Table) (*pdf2db.Dataset, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to transform: %w", pdf2db.ErrTransformationFailed)
	}

	var columns []string
	seen := make(map[string]bool)
	var rows []map[string]any
	dropped := 0

	for _, table := range tables {
		header, data := promoteHeader(table)
		if len(data) == 0 {
			continue
		}

		keys := make([]string, len(header))
		for i, raw := range header {
			keys[i] = NormalizeHeader(raw)
			if keys[i] != "" && !seen[keys[i]] {
				seen[keys[i]] = true
				columns = append(columns, keys[i])
			}
		}

		for _, cells := range data {
			row, ok := t.convertRow(keys, cells)
			if !ok {
				dropped++
				continue
			}
			rows = append(rows, row)
		}
	}

	t.warnMissingExpected(seen)
	if dropped > 0 {
		t.logger.Info("Dropped %d row(s) with no convertible recognized columns", dropped)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows survived transformation: %w", pdf2db.ErrTransformationFailed)
	}

	dataset := &pdf2db.Dataset{Columns: columns}
	for _, row := range rows {
		out := make([]any, len(columns))
		for i, col := range columns {
			out[i] = row[col] // missing keys stay nil
		}
		dataset.Rows = append(dataset.Rows, out)
	}

	t.logger.Info("Transformed dataset: %d row(s), %d column(s)", len(dataset.Rows), len(columns))
	return dataset, nil
}

// promoteHeader returns the table's header and data rows. Tables whose
// engine could not identify a header (or whose header labels are blank)
// promote the first data row, mirroring how PDF extractors often report
// generic column labels with the real header in row zero.
func promoteHeader(table pdf2db.Table) ([]string, [][]string) {
	if len(table.Header) > 0 && !allBlank(table.Header) {
		return table.Header, table.Rows
	}
	if len(table.Rows) == 0 {
		return nil, nil
	}
	return table.Rows[0], table.Rows[1:]
}

func allBlank(header []string) bool {
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			return false
		}
	}
	return true
}

// convertRow maps one raw row onto canonical keys and applies coercions.
// Two raw headers that normalize to the same key collide last-write-wins
// in cell order. Returns ok=false when the row should be dropped.
func (t *Transformer) convertRow(keys []string, cells []string) (map[string]any, bool) {
	row := make(map[string]any, len(keys))
	recognized := 0
	failed := 0

	for i, key := range keys {
		if key == "" {
			continue
		}
		var raw string
		if i < len(cells) {
			raw = strings.TrimSpace(cells[i])
		}

		value, isRecognized, convErr := coerce(key, raw)
		if isRecognized {
			recognized++
			if convErr != nil {
				failed++
				row[key] = nil
				continue
			}
		}
		row[key] = value
	}

	// Only rows where every recognized column failed are dropped.
	if recognized > 0 && failed == recognized {
		return nil, false
	}
	return row, true
}

// coerce converts a recognized column's raw cell to its typed value.
// Unrecognized keys pass through as strings. An empty cell is nil without
// counting as a conversion failure.
func coerce(key, raw string) (value any, recognized bool, err error) {
	switch key {
	case colRowNumber, colCustomerCode:
		recognized = true
	case colAsOfDate, colDateOfRestructure:
		recognized = true
	default:
		return raw, false, nil
	}

	if raw == "" {
		return nil, true, nil
	}

	switch key {
	case colRowNumber, colCustomerCode:
		n, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return nil, true, parseErr
		}
		return n, true, nil
	default: // dates
		d, parseErr := time.Parse(pdf2db.DateLayout, raw)
		if parseErr != nil {
			return nil, true, parseErr
		}
		return d, true, nil
	}
}

// warnMissingExpected mirrors the long-standing behavior of logging which
// recognized columns never showed up, since a silently absent as_of_date
// usually means the extraction went sideways.
func (t *Transformer) warnMissingExpected(seen map[string]bool) {
	var missing []string
	for _, col := range expectedColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		t.logger.Info("Missing expected column(s): %s", strings.Join(missing, ", "))
	}
}
