package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

const (
	// minCellGap is the smallest horizontal gap, in points, treated as a
	// column boundary. Floors the font-scaled heuristic for tiny fonts.
	minCellGap = 4.0

	// cellGapFactor scales the preceding fragment's font size into the
	// gap width that separates two cells rather than two words.
	cellGapFactor = 1.5
)

// TextLayerEngine detects tables from the positional text layer of a PDF.
// Text fragments on a page are grouped into rows by vertical position and
// into cells by horizontal gaps; consecutive multi-cell rows on a page are
// taken to be that page's table. Suits both ruled and whitespace-aligned
// layouts since only the text positions matter.
type TextLayerEngine struct{}

// NewTextLayerEngine creates the primary extraction engine.
func NewTextLayerEngine() *TextLayerEngine {
	return &TextLayerEngine{}
}

// Name implements pdf2db.Engine.
func (e *TextLayerEngine) Name() string {
	return "text-layer"
}

// Extract implements pdf2db.Engine. Tables are returned in page order with
// at most one table per page; pages whose text does not line up into at
// least two multi-cell rows contribute nothing.
func (e *TextLayerEngine) Extract(path string) ([]pdf2db.Table, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var tables []pdf2db.Table
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}

		grid := assembleGrid(rows)
		if len(grid) >= 2 {
			tables = append(tables, pdf2db.Table{Page: i, Rows: grid})
		}
	}
	return tables, nil
}

// assembleGrid converts positioned rows into a rectangular cell grid.
// Rows with fewer than two cells (titles, footers, page numbers) are
// skipped; ragged rows are padded on the right to the widest row.
func assembleGrid(rows pdf.Rows) [][]string {
	var grid [][]string
	width := 0
	for _, row := range rows {
		cells := splitCells(row.Content)
		if len(cells) < 2 {
			continue
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

// splitCells groups a row's text fragments into cells. Fragments are
// walked left to right; a horizontal gap wider than the font-scaled
// threshold starts a new cell.
func splitCells(fragments pdf.TextHorizontal) []string {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].X < fragments[j].X
	})

	var cells []string
	var cur strings.Builder
	var prev *pdf.Text
	for i := range fragments {
		t := fragments[i]
		if t.S == "" {
			continue
		}
		if prev != nil && t.X-(prev.X+prev.W) > cellGap(prev.FontSize) {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
		cur.WriteString(t.S)
		prev = &fragments[i]
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}

func cellGap(fontSize float64) float64 {
	gap := fontSize * cellGapFactor
	if gap < minCellGap {
		gap = minCellGap
	}
	return gap
}
