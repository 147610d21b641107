package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterKeepsOrderAndNulls(t *testing.T) {
	f := makeFrame(6)
	f.cols[2].SetNull(4)

	out := f.Filter(func(r int) bool { return r != 1 && r != 3 })
	require.Equal(t, 4, out.Rows())
	assert.Equal(t, f.Schema().Names(), out.Schema().Names())
	assert.Equal(t, int64(0), out.Cell(0, "b"))
	assert.Equal(t, int64(2), out.Cell(1, "b"))
	assert.Nil(t, out.Cell(2, "s"), "null mask must travel with the row")
	assert.Equal(t, 6, f.Rows(), "receiver untouched")
}

func TestReplaceColumn(t *testing.T) {
	f := makeFrame(2)
	c := NewStringColumn("b", 2)
	c.Set(0, "zero")
	c.SetNull(1)
	require.NoError(t, f.ReplaceColumn(c))

	assert.Equal(t, KindString, f.Schema().Columns[1].Type)
	assert.Equal(t, []string{"a", "b", "s"}, f.Schema().Names())
	assert.Equal(t, "zero", f.Cell(0, "b"))
	assert.Nil(t, f.Cell(1, "b"))

	assert.Error(t, f.ReplaceColumn(NewStringColumn("nope", 2)))
	assert.Error(t, f.ReplaceColumn(NewStringColumn("b", 5)))
}

func TestNewFrameDoesNotAliasSchema(t *testing.T) {
	s := Schema{Columns: []ColumnSchema{{Name: "x", Type: KindInt, Nullable: true}}}
	f := NewFrame(s)
	f.AppendNullRow()
	require.NoError(t, f.ReplaceColumn(NewFloatColumn("x", 1)))
	assert.Equal(t, KindInt, s.Columns[0].Type)
}

func TestSetCellTypeMismatch(t *testing.T) {
	f := makeFrame(1)
	assert.Error(t, f.SetCell(0, "s", 3))
	assert.Error(t, f.SetCell(0, "missing", "x"))
	require.NoError(t, f.SetCell(0, "a", nil))
	assert.Nil(t, f.Cell(0, "a"))
}
