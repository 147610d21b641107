package impute

import (
	"context"
	"fmt"

	"github.com/wdm0006/billclean/pkg/table"
)

// Default is the value written into absent cells of Column. Value must suit
// the column kind: a string for text columns, a number for numeric ones.
type Default struct {
	Column string
	Value  any
}

// Fill replaces absent cells with a per-column constant. Columns are
// independent, so rule order does not matter. Missing columns are skipped.
// Filled counts the cells written by the last Apply.
type Fill struct {
	Defaults []Default
	Filled   int
}

func (t *Fill) Name() string { return "impute_constant" }

func (t *Fill) Apply(ctx context.Context, f *table.Frame) (*table.Frame, error) {
	t.Filled = 0
	for _, d := range t.Defaults {
		col, ok := f.ColumnByName(d.Column)
		if !ok {
			continue
		}
		n, err := fillColumn(col, d.Value)
		if err != nil {
			return f, err
		}
		t.Filled += n
	}
	return f, nil
}

func fillColumn(col table.Column, value any) (int, error) {
	var set func(i int)
	switch c := col.(type) {
	case *table.FloatColumn:
		var vv float64
		switch v := value.(type) {
		case int:
			vv = float64(v)
		case int64:
			vv = float64(v)
		case float64:
			vv = v
		default:
			return 0, fmt.Errorf("column %s expects a number, got %T", c.Name(), value)
		}
		set = func(i int) { c.Set(i, vv) }
	case *table.IntColumn:
		var vv int64
		switch v := value.(type) {
		case int:
			vv = int64(v)
		case int64:
			vv = v
		case float64:
			vv = int64(v)
		default:
			return 0, fmt.Errorf("column %s expects a number, got %T", c.Name(), value)
		}
		set = func(i int) { c.Set(i, vv) }
	case *table.StringColumn:
		vv, ok := value.(string)
		if !ok {
			return 0, fmt.Errorf("column %s expects a string, got %T", c.Name(), value)
		}
		set = func(i int) { c.Set(i, vv) }
	default:
		return 0, nil
	}
	n := 0
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			set(i)
			n++
		}
	}
	return n, nil
}
