// Package validate admits or rejects rows by completeness.
package validate

import (
	"context"
	"fmt"

	"github.com/wdm0006/billclean/pkg/table"
)

// Required drops every row where any of Columns is absent. It never mutates
// or repairs values; surviving rows keep their relative order. A column
// missing from the schema is an error. Dropped holds the rows removed by the
// last Apply.
type Required struct {
	Columns []string
	Dropped int
}

func NewRequired(cols ...string) *Required {
	return &Required{Columns: cols}
}

func (t *Required) Name() string { return "require_present" }

func (t *Required) Apply(ctx context.Context, f *table.Frame) (*table.Frame, error) {
	t.Dropped = 0
	cols := make([]table.Column, 0, len(t.Columns))
	for _, name := range t.Columns {
		col, ok := f.ColumnByName(name)
		if !ok {
			return f, fmt.Errorf("missing required column %q", name)
		}
		cols = append(cols, col)
	}
	out := f.Filter(func(r int) bool {
		for _, c := range cols {
			if c.IsNull(r) {
				return false
			}
		}
		return true
	})
	t.Dropped = f.Rows() - out.Rows()
	return out, nil
}
