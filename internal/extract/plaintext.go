package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

// cellSeparator splits a text line into cells on tabs or runs of two or
// more spaces. Single spaces are assumed to be part of a cell value.
var cellSeparator = regexp.MustCompile(`\t+| {2,}`)

// PlainTextEngine is the fallback engine. It extracts the document's
// entire plain-text layer in one pass and reconstructs rows by splitting
// lines on wide whitespace runs. Cruder than the text-layer engine but it
// copes with documents whose page trees the primary cannot walk.
type PlainTextEngine struct{}

// NewPlainTextEngine creates the fallback extraction engine.
func NewPlainTextEngine() *PlainTextEngine {
	return &PlainTextEngine{}
}

// Name implements pdf2db.Engine.
func (e *PlainTextEngine) Name() string {
	return "plain-text"
}

// Extract implements pdf2db.Engine. The whole document yields at most one
// table since page boundaries are lost in the plain-text stream.
func (e *PlainTextEngine) Extract(path string) ([]pdf2db.Table, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	body, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("read text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("read text layer: %w", err)
	}

	grid := linesToGrid(buf.String())
	if len(grid) < 2 {
		return nil, nil
	}
	return []pdf2db.Table{{Rows: grid}}, nil
}

// linesToGrid splits text into lines and lines into cells, keeping only
// lines that look tabular (two or more cells), padded to uniform width.
func linesToGrid(text string) [][]string {
	var grid [][]string
	width := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := cellSeparator.Split(line, -1)
		if len(cells) < 2 {
			continue
		}
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		grid = append(grid, cells)
		if len(cells) > width {
			width = len(cells)
		}
	}
	for i := range grid {
		for len(grid[i]) < width {
			grid[i] = append(grid[i], "")
		}
	}
	return grid
}
