// Package coerce converts columns to their declared semantic type.
package coerce

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/wdm0006/billclean/pkg/table"
)

// Rule declares the kind a column must hold.
type Rule struct {
	Column string
	Kind   table.Kind
}

// Coerce rewrites each ruled column as a column of the target kind. A value
// that cannot be represented becomes absent instead of failing the run;
// Failures counts such values (cells that were already absent are not
// counted). Integer targets accept any numeric text with an integral value,
// so "57.0" and "5.7e1" both become 57 while "57.5" becomes absent.
type Coerce struct {
	Rules    []Rule
	Failures int
}

func (t *Coerce) Name() string { return "coerce_types" }

func (t *Coerce) Apply(ctx context.Context, f *table.Frame) (*table.Frame, error) {
	t.Failures = 0
	for _, r := range t.Rules {
		src, ok := f.ColumnByName(r.Column)
		if !ok || src.Kind() == r.Kind {
			continue
		}
		dst, failed, err := convert(src, r.Kind)
		if err != nil {
			return f, err
		}
		t.Failures += failed
		if err := f.ReplaceColumn(dst); err != nil {
			return f, err
		}
	}
	return f, nil
}

func convert(src table.Column, k table.Kind) (table.Column, int, error) {
	n := src.Len()
	failed := 0
	switch k {
	case table.KindInt:
		dst := table.NewIntColumn(src.Name(), n)
		for i := 0; i < n; i++ {
			v, present := ToInt(cellValue(src, i))
			switch {
			case present:
				dst.Set(i, v)
			case !src.IsNull(i):
				failed++
				dst.SetNull(i)
			default:
				dst.SetNull(i)
			}
		}
		return dst, failed, nil
	case table.KindFloat:
		dst := table.NewFloatColumn(src.Name(), n)
		for i := 0; i < n; i++ {
			v, present := ToFloat(cellValue(src, i))
			switch {
			case present:
				dst.Set(i, v)
			case !src.IsNull(i):
				failed++
				dst.SetNull(i)
			default:
				dst.SetNull(i)
			}
		}
		return dst, failed, nil
	case table.KindString:
		dst := table.NewStringColumn(src.Name(), n)
		for i := 0; i < n; i++ {
			v := cellValue(src, i)
			if v == nil {
				dst.SetNull(i)
				continue
			}
			dst.Set(i, cast.ToString(v))
		}
		return dst, 0, nil
	default:
		return nil, 0, fmt.Errorf("column %s: unsupported target kind %v", src.Name(), k)
	}
}

func cellValue(c table.Column, i int) any {
	switch col := c.(type) {
	case *table.StringColumn:
		if v, ok := col.Get(i); ok {
			return v
		}
	case *table.IntColumn:
		if v, ok := col.Get(i); ok {
			return v
		}
	case *table.FloatColumn:
		if v, ok := col.Get(i); ok {
			return v
		}
	}
	return nil
}

// ToFloat parses v as a finite number; text is trimmed first. Absent or
// unparsable input reports false.
func ToFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s == "" {
			return 0, false
		}
		v = s
	}
	x, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

// ToInt parses v as an integer-valued number.
func ToInt(v any) (int64, bool) {
	// integers and plain decimal text stay exact beyond 2^53
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		if x, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return x, true
		}
	}
	x, ok := ToFloat(v)
	if !ok || x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
		return 0, false
	}
	return int64(x), true
}
