// Package jsonlio writes a table.Frame as newline-delimited JSON.
package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"

	iox "github.com/wdm0006/billclean/pkg/io/ioutils"
	"github.com/wdm0006/billclean/pkg/table"
)

// WriteAll creates or truncates path and writes one JSON object per row.
func WriteAll(path string, f *table.Frame) (err error) {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(out, f)
}

// Write encodes f row by row. Keys follow column order; absent cells are
// omitted.
func Write(out io.Writer, f *table.Frame) error {
	w := bufio.NewWriter(out)
	names := f.Schema().Names()
	keys := make([][]byte, len(names))
	for i, n := range names {
		b, err := json.Marshal(n)
		if err != nil {
			return err
		}
		keys[i] = b
	}
	for r := 0; r < f.Rows(); r++ {
		_ = w.WriteByte('{')
		first := true
		for i, n := range names {
			v := f.Cell(r, n)
			if v == nil {
				continue
			}
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			if !first {
				_ = w.WriteByte(',')
			}
			first = false
			_, _ = w.Write(keys[i])
			_ = w.WriteByte(':')
			_, _ = w.Write(b)
		}
		if _, err := w.WriteString("}\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
