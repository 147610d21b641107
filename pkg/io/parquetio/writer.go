// Package parquetio writes a table.Frame to a Parquet file.
package parquetio

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/wdm0006/billclean/pkg/table"
)

// fieldName maps a column header to a Parquet-safe field name. Header text
// such as "Net Worth ($bil)" would otherwise break the tag syntax.
func fieldName(col string) string {
	var b strings.Builder
	for _, r := range col {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "c_" + name
	}
	return name
}

// FieldNames returns the Parquet field name for every column, in order.
// Collisions after sanitising get a positional suffix.
func FieldNames(s table.Schema) []string {
	out := make([]string, len(s.Columns))
	seen := map[string]bool{}
	for i, cs := range s.Columns {
		n := fieldName(cs.Name)
		if seen[strings.ToLower(n)] {
			n = fmt.Sprintf("%s_%d", n, i)
		}
		seen[strings.ToLower(n)] = true
		out[i] = n
	}
	return out
}

func parquetSchemaJSON(s table.Schema, names []string) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for i, cs := range s.Columns {
		tag := "name=" + names[i] + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case table.KindFloat:
			tag += "DOUBLE"
		case table.KindInt:
			tag += "INT64"
		default:
			tag += "UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file using the parquet-go JSON writer.
// Every column is OPTIONAL; absent cells are written as nulls. On failure the
// partial file is removed.
func WriteAll(path string, f *table.Frame) (err error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = fw.Close()
			_ = os.Remove(path)
		}
	}()
	names := FieldNames(f.Schema())
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema(), names), fw, 1)
	if err != nil {
		return fmt.Errorf("parquet writer init: %w", err)
	}
	cols := f.Schema().Names()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(cols))
		for i, c := range cols {
			if v := f.Cell(r, c); v != nil {
				rec[names[i]] = v
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row %d: %w", r, err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	if err := writer.WriteStop(); err != nil {
		return fmt.Errorf("parquet finalize: %w", err)
	}
	return fw.Close()
}
