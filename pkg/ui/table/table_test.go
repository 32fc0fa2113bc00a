package table_test

import (
	"testing"

	// Packages
	table "github.com/mutablelogic/go-stylist/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

type rows [][]any

func (r rows) Header() []string { return []string{"NAME", "VALUE"} }
func (r rows) Len() int         { return len(r) }
func (r rows) Row(i int) []any  { return r[i] }

func Test_Render_001(t *testing.T) {
	assert := assert.New(t)
	out := table.Render(rows{{"서울", 15}, {table.Bold{Value: "busan"}, nil}, nil})
	assert.Contains(out, "NAME")
	assert.Contains(out, "서울")
	assert.Contains(out, "busan")
}

func Test_FormatCell_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(""))
	assert.Equal("-", table.FormatCell(0))
	assert.Equal("12", table.FormatCell(12))
	assert.Equal("x", table.FormatCell("x"))
}

func Test_Truncate_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("abc", table.Truncate("abc", 3))
	assert.Equal("a…", table.Truncate("abc", 2))
	assert.Equal("a b", table.Truncate("a\nb", 5))
}

func Test_Summary_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("No results", table.Summary(0, 0, 0))
	assert.Equal("All 3 rows displayed", table.Summary(3, 0, 3))
	assert.Equal("Displaying rows 2-3 of 5", table.Summary(2, 1, 5))
}
