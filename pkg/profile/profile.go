// Package profile summarises the columns of a table.Frame.
package profile

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	tbl "github.com/wdm0006/billclean/pkg/table"
)

type NumStats struct {
	Count int
	Nulls int
	Min   float64
	Max   float64
	Sum   float64
}

// Mean is zero for a column without values.
func (s *NumStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

type StringStats struct {
	Count int
	Nulls int
	Freqs map[string]int
}

type ColumnProfile struct {
	Name string
	Kind tbl.Kind
	Num  *NumStats
	Str  *StringStats
}

// Nulls returns the number of absent cells seen in the column.
func (cp ColumnProfile) Nulls() int {
	if cp.Num != nil {
		return cp.Num.Nulls
	}
	return cp.Str.Nulls
}

type Collector struct {
	cols  []ColumnProfile
	index map[string]int
	topK  int
}

func NewCollector(schema tbl.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int), topK: topK}
	c.cols = make([]ColumnProfile, len(schema.Columns))
	for i, cs := range schema.Columns {
		c.cols[i] = newColumnProfile(cs, topK)
		c.index[cs.Name] = i
	}
	return c
}

func newColumnProfile(cs tbl.ColumnSchema, topK int) ColumnProfile {
	cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
	switch cs.Type {
	case tbl.KindFloat, tbl.KindInt:
		cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
	default:
		cp.Str = &StringStats{Freqs: make(map[string]int)}
	}
	return cp
}

// ConsumeFrame folds every cell of f into the profile. Columns are matched by
// name; a column whose kind changed since the collector was built is
// re-profiled from scratch.
func (c *Collector) ConsumeFrame(f *tbl.Frame) {
	for _, cs := range f.Schema().Columns {
		idx, ok := c.index[cs.Name]
		if !ok {
			continue
		}
		cp := &c.cols[idx]
		if cp.Kind != cs.Type {
			*cp = newColumnProfile(cs, c.topK)
		}
		col, _ := f.ColumnByName(cs.Name)
		switch col := col.(type) {
		case *tbl.FloatColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				cp.Num.add(v, ok)
			}
		case *tbl.IntColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				cp.Num.add(float64(v), ok)
			}
		case *tbl.StringColumn:
			for i := 0; i < col.Len(); i++ {
				v, ok := col.Get(i)
				if !ok {
					cp.Str.Nulls++
					continue
				}
				cp.Str.Count++
				if c.topK > 0 {
					cp.Str.Freqs[v]++
				}
			}
		}
	}
}

func (s *NumStats) add(v float64, ok bool) {
	if !ok {
		s.Nulls++
		return
	}
	s.Count++
	s.Min = math.Min(s.Min, v)
	s.Max = math.Max(s.Max, v)
	s.Sum += v
}

// Columns returns the profiles in schema order.
func (c *Collector) Columns() []ColumnProfile { return c.cols }

// Column returns the profile for name.
func (c *Collector) Column(name string) (ColumnProfile, bool) {
	i, ok := c.index[name]
	if !ok {
		return ColumnProfile{}, false
	}
	return c.cols[i], true
}

// TopValues returns up to k most frequent values, ties broken by value.
func (s *StringStats) TopValues(k int) []string {
	type kv struct {
		k string
		v int
	}
	arr := make([]kv, 0, len(s.Freqs))
	for k, v := range s.Freqs {
		arr = append(arr, kv{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].v != arr[j].v {
			return arr[i].v > arr[j].v
		}
		return arr[i].k < arr[j].k
	})
	if k <= 0 || k > len(arr) {
		k = len(arr)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = fmt.Sprintf("%s (%d)", arr[i].k, arr[i].v)
	}
	return out
}

// RenderTable writes the profile as a table, one row per column.
func (c *Collector) RenderTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Kind", "Count", "Nulls", "Summary"})
	for _, cp := range c.cols {
		switch {
		case cp.Num != nil:
			summary := "-"
			if cp.Num.Count > 0 {
				summary = fmt.Sprintf("min=%.6g max=%.6g mean=%.6g", cp.Num.Min, cp.Num.Max, cp.Num.Mean())
			}
			t.AppendRow(table.Row{cp.Name, cp.Kind, cp.Num.Count, cp.Num.Nulls, summary})
		default:
			summary := strings.Join(cp.Str.TopValues(c.topK), ", ")
			if c.topK <= 0 || summary == "" {
				summary = "-"
			}
			t.AppendRow(table.Row{cp.Name, cp.Kind, cp.Str.Count, cp.Str.Nulls, summary})
		}
	}
	t.Render()
}
