package standardize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/billclean/pkg/table"
)

func TestReplace(t *testing.T) {
	s := table.Schema{Columns: []table.ColumnSchema{
		{Name: "Age", Type: table.KindString, Nullable: true},
		{Name: "Rank", Type: table.KindInt, Nullable: true},
	}}
	f := table.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("Age")
	c := col.(*table.StringColumn)
	c.Set(0, "56/58")
	c.Set(1, "61")
	c.Set(2, "56/58")
	// row 3 null

	tf := &Replace{Rules: []Rule{
		{Column: "Age", From: "56/58", To: "57"},
		{Column: "Rank", From: "1", To: "2"},
		{Column: "Missing", From: "a", To: "b"},
	}}
	_, err := tf.Apply(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 2, tf.Replaced)
	assert.Equal(t, "57", f.Cell(0, "Age"))
	assert.Equal(t, "61", f.Cell(1, "Age"))
	assert.Equal(t, "57", f.Cell(2, "Age"))
	assert.Nil(t, f.Cell(3, "Age"))

	// a second run finds nothing left to repair
	_, err = tf.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 0, tf.Replaced)
}

func TestReplaceLaterRuleWins(t *testing.T) {
	f := table.NewFrame(table.Schema{Columns: []table.ColumnSchema{{Name: "s", Type: table.KindString, Nullable: true}}})
	f.AppendNullRow()
	_ = f.SetCell(0, "s", "x")
	tf := &Replace{Rules: []Rule{{Column: "s", From: "x", To: "y"}, {Column: "s", From: "x", To: "z"}}}
	_, err := tf.Apply(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "z", f.Cell(0, "s"))
}
