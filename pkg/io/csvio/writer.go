package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	iox "github.com/wdm0006/billclean/pkg/io/ioutils"
	"github.com/wdm0006/billclean/pkg/table"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll creates or truncates path and writes f with a header row. A .gz
// suffix compresses the output.
func WriteAll(path string, f *table.Frame, opt WriterOptions) (err error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, f, opt)
}

// Write encodes f as delimited text with a header row. Absent cells are empty.
func Write(out io.Writer, f *table.Frame, opt WriterOptions) error {
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := f.Schema().Names()
	if err := w.Write(hdr); err != nil {
		return err
	}

	cols := make([]table.Column, len(hdr))
	for i, name := range hdr {
		cols[i], _ = f.ColumnByName(name)
	}
	row := make([]string, len(hdr))
	for r := 0; r < f.Rows(); r++ {
		for c, col := range cols {
			row[c] = FormatCell(col, r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// FormatCell renders one cell as text; absent cells render empty. Floats use
// the shortest representation that round-trips, without an exponent.
func FormatCell(col table.Column, r int) string {
	switch c := col.(type) {
	case *table.FloatColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	case *table.IntColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatInt(v, 10)
		}
	case *table.StringColumn:
		if v, ok := c.Get(r); ok {
			return v
		}
	}
	return ""
}
