// Package standardize repairs known malformed literal values.
package standardize

import (
	"context"

	"github.com/wdm0006/billclean/pkg/table"
)

// Rule maps one known-bad literal in Column to its corrected literal.
type Rule struct {
	Column string
	From   string
	To     string
}

// Replace applies a table of literal corrections to text columns. Rules for
// columns that are missing or not textual are skipped. Replaced holds the
// number of cells changed by the last Apply.
type Replace struct {
	Rules    []Rule
	Replaced int
}

func (t *Replace) Name() string { return "replace_values" }

func (t *Replace) Apply(ctx context.Context, f *table.Frame) (*table.Frame, error) {
	t.Replaced = 0
	byCol := map[string]map[string]string{}
	var order []string
	for _, r := range t.Rules {
		m, ok := byCol[r.Column]
		if !ok {
			m = map[string]string{}
			byCol[r.Column] = m
			order = append(order, r.Column)
		}
		m[r.From] = r.To
	}
	for _, name := range order {
		col, ok := f.ColumnByName(name)
		if !ok {
			continue
		}
		c, ok := col.(*table.StringColumn)
		if !ok {
			continue
		}
		m := byCol[name]
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				continue
			}
			if nv, hit := m[v]; hit {
				c.Set(i, nv)
				t.Replaced++
			}
		}
	}
	return f, nil
}
