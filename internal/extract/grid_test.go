package extract

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

func frag(x, w, size float64, s string) pdf.Text {
	return pdf.Text{X: x, W: w, FontSize: size, S: s}
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name      string
		fragments pdf.TextHorizontal
		want      []string
	}{
		{
			name: "three columns separated by wide gaps",
			fragments: pdf.TextHorizontal{
				frag(10, 20, 10, "Row Number"),
				frag(100, 30, 10, "As Of Date"),
				frag(200, 40, 10, "Customer Code"),
			},
			want: []string{"Row Number", "As Of Date", "Customer Code"},
		},
		{
			name: "adjacent fragments stay in one cell",
			fragments: pdf.TextHorizontal{
				frag(10, 15, 10, "Cust"),
				frag(26, 20, 10, "omer Code"),
				frag(200, 10, 10, "42"),
			},
			want: []string{"Customer Code", "42"},
		},
		{
			name: "unsorted fragments are ordered by X first",
			fragments: pdf.TextHorizontal{
				frag(200, 10, 10, "right"),
				frag(10, 10, 10, "left"),
			},
			want: []string{"left", "right"},
		},
		{
			name:      "empty row",
			fragments: nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCells(tt.fragments))
		})
	}
}

func TestAssembleGridSkipsNarrowRowsAndPads(t *testing.T) {
	rows := pdf.Rows{
		&pdf.Row{Position: 700, Content: pdf.TextHorizontal{frag(10, 50, 12, "Quarterly Report")}},
		&pdf.Row{Position: 680, Content: pdf.TextHorizontal{
			frag(10, 20, 10, "Row Number"),
			frag(100, 30, 10, "As Of Date"),
			frag(200, 40, 10, "Customer Code"),
		}},
		&pdf.Row{Position: 660, Content: pdf.TextHorizontal{
			frag(10, 5, 10, "1"),
			frag(100, 40, 10, "20230115"),
		}},
	}

	grid := assembleGrid(rows)
	assert.Equal(t, [][]string{
		{"Row Number", "As Of Date", "Customer Code"},
		{"1", "20230115", ""}, // padded to header width
	}, grid)
}

func TestLinesToGrid(t *testing.T) {
	text := "Quarterly Report\n" +
		"Row Number  As Of Date  Customer Code\n" +
		"1  20230115  123456\n" +
		"page 3 of 9\n"

	grid := linesToGrid(text)
	assert.Equal(t, [][]string{
		{"Row Number", "As Of Date", "Customer Code"},
		{"1", "20230115", "123456"},
	}, grid)
}

func TestLinesToGridTooFewRows(t *testing.T) {
	// A single tabular line is not a table.
	assert.Len(t, linesToGrid("a  b  c\n"), 1)
}
