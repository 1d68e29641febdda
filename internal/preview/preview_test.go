package preview

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdf2db/pdf2db/pkg/pdf2db"
)

func sample() *pdf2db.Dataset {
	return &pdf2db.Dataset{
		Columns: []string{"row_number", "as_of_date", "customer_code"},
		Rows: [][]any{
			{int64(1), time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), int64(123456)},
			{int64(2), nil, int64(777)},
			{int64(3), nil, nil},
		},
	}
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sample(), 10, false)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5) // header, rule, three rows

	assert.Contains(t, lines[0], "row_number")
	assert.Contains(t, lines[0], "customer_code")
	assert.Contains(t, lines[2], "2023-01-15")
	assert.Contains(t, lines[3], "NULL")
	assert.NotContains(t, out, "\x1b[", "plain output must carry no ANSI codes")
}

func TestRenderTruncates(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sample(), 2, false)

	out := buf.String()
	assert.Contains(t, out, "(showing 2 of 3 rows)")
	assert.Contains(t, out, "777")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5) // header, rule, two rows, truncation note
}

func TestRenderEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, &pdf2db.Dataset{}, 10, false)
	Render(&buf, nil, 10, false)
	assert.Zero(t, buf.Len())
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in       any
		want     string
		wantNull bool
	}{
		{nil, "NULL", true},
		{int64(42), "42", false},
		{"east", "east", false},
		{"", "", false},
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "2024-02-29", false},
	}

	for _, tt := range tests {
		got, isNull := formatCell(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.wantNull, isNull)
	}
}
