// Package impute fills absent cells with constants or group statistics.
package impute

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wdm0006/billclean/pkg/table"
)

// GroupMean replaces absent values of Column with the mean of the known
// values in the same By group. The statistic is computed once, over the
// values present before any substitution, and then applied. A group with no
// known values has no mean: its absent cells stay absent and are counted in
// Undefined. Absent By values form a group of their own.
//
// Column becomes a float column, since a mean is generally fractional.
type GroupMean struct {
	Column string
	By     string

	Imputed   int
	Undefined int
}

func (t *GroupMean) Name() string { return "impute_group_mean" }

type groupKey struct {
	v    string
	null bool
}

type groupStat struct {
	sum float64
	n   int
}

func (t *GroupMean) Apply(ctx context.Context, f *table.Frame) (*table.Frame, error) {
	t.Imputed, t.Undefined = 0, 0
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	by, ok := f.ColumnByName(t.By)
	if !ok {
		return f, fmt.Errorf("unknown group column %s", t.By)
	}

	var get func(i int) (float64, bool)
	switch c := col.(type) {
	case *table.FloatColumn:
		get = c.Get
	case *table.IntColumn:
		get = func(i int) (float64, bool) {
			v, ok := c.Get(i)
			return float64(v), ok
		}
	default:
		return f, fmt.Errorf("column %s is %v, want a numeric column", t.Column, col.Kind())
	}

	// aggregate: a frozen snapshot of the known values per group
	stats := map[groupKey]*groupStat{}
	for i := 0; i < col.Len(); i++ {
		v, ok := get(i)
		if !ok {
			continue
		}
		k := keyOf(by, i)
		s := stats[k]
		if s == nil {
			s = &groupStat{}
			stats[k] = s
		}
		s.sum += v
		s.n++
	}

	// apply
	out := table.NewFloatColumn(t.Column, col.Len())
	for i := 0; i < col.Len(); i++ {
		if v, ok := get(i); ok {
			out.Set(i, v)
			continue
		}
		s := stats[keyOf(by, i)]
		if s == nil || s.n == 0 {
			out.SetNull(i)
			t.Undefined++
			continue
		}
		out.Set(i, s.sum/float64(s.n))
		t.Imputed++
	}
	if err := f.ReplaceColumn(out); err != nil {
		return f, err
	}
	return f, nil
}

func keyOf(c table.Column, i int) groupKey {
	if c.IsNull(i) {
		return groupKey{null: true}
	}
	switch col := c.(type) {
	case *table.StringColumn:
		v, _ := col.Get(i)
		return groupKey{v: v}
	case *table.IntColumn:
		v, _ := col.Get(i)
		return groupKey{v: strconv.FormatInt(v, 10)}
	case *table.FloatColumn:
		v, _ := col.Get(i)
		return groupKey{v: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return groupKey{null: true}
}
