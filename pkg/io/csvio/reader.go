// Package csvio loads delimited text into a table.Frame and writes it back.
package csvio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	iox "github.com/wdm0006/billclean/pkg/io/ioutils"
	"github.com/wdm0006/billclean/pkg/table"
)

// DefaultNullValues are the cell literals read as absent. The set matches
// what dataframe CSV readers treat as missing by default.
var DefaultNullValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// ErrNoHeader is returned when the input holds no records at all.
var ErrNoHeader = errors.New("csvio: empty input, no header row")

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune     // 0 = sniff, default ','
	Strict     bool     // if true, error on short/long records
	NullValues []string // nil = DefaultNullValues
}

type Reader struct {
	rc    io.Closer
	r     *csv.Reader
	opt   ReaderOptions
	nulls map[string]struct{}
	buf   [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a (possibly gzip compressed) delimited file, or stdin for "-".
// The caller must Close the Reader.
func Open(path string, opt ReaderOptions) (*Reader, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(rc)
	if opt.Delimiter == 0 {
		sample, _ := br.Peek(4096)
		d, lazy := sniffDelimiterAndQuotes(sample)
		opt.Delimiter = d
		r := newReader(br, opt)
		r.r.LazyQuotes = lazy
		r.rc = rc
		return r, nil
	}
	r := newReader(br, opt)
	r.rc = rc
	return r, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	if opt.Delimiter == 0 {
		opt.Delimiter = ','
	}
	return newReader(r, opt)
}

func newReader(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	rr.Comma = opt.Delimiter
	rr.FieldsPerRecord = -1
	nv := opt.NullValues
	if nv == nil {
		nv = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(nv))
	for _, v := range nv {
		nulls[v] = struct{}{}
	}
	return &Reader{r: rr, opt: opt, nulls: nulls}
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}

// ReadSchema reads the header row, or names columns col_0.. when the input has
// none. Every column is KindString so later stages see the literals as read.
func (r *Reader) ReadSchema() (table.Schema, error) {
	rec, err := r.r.Read()
	if err == io.EOF {
		return table.Schema{}, ErrNoHeader
	}
	if err != nil {
		return table.Schema{}, err
	}
	var names []string
	if r.opt.HasHeader {
		names = headerNames(rec)
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		r.buf = append(r.buf, append([]string(nil), rec...))
	}

	schema := table.Schema{Columns: make([]table.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = table.ColumnSchema{Name: names[i], Type: table.KindString, Nullable: true}
	}
	return schema, nil
}

// headerNames cleans header cells and disambiguates repeats as "name.1",
// "name.2" so every column stays addressable by name.
func headerNames(rec []string) []string {
	names := make([]string, len(rec))
	seen := make(map[string]int, len(rec))
	for i := range rec {
		n := strings.TrimSpace(strings.ToValidUTF8(rec[i], "?"))
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		if c, dup := seen[n]; dup {
			seen[n] = c + 1
			n = n + "." + strconv.Itoa(c+1)
		} else {
			seen[n] = 0
		}
		names[i] = n
	}
	return names
}

// ReadAll loads the rest of the input into a Frame.
func (r *Reader) ReadAll(schema table.Schema) (*table.Frame, error) {
	f := table.NewFrame(schema)
	// drain the first record when the input has no header
	for _, rec := range r.buf {
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *table.Frame, schema table.Schema, rec []string) error {
	switch {
	case len(rec) > len(schema.Columns):
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows()+1, len(schema.Columns), len(rec))
		}
	case len(rec) < len(schema.Columns):
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv short record at row %d: need %d fields, got %d", f.Rows()+1, len(schema.Columns), len(rec))
		}
	}
	// append a null row then set non-null values
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			break
		}
		// surrounding blanks only matter for the NA decision; text is kept as read
		raw := strings.ToValidUTF8(rec[i], "?")
		val := strings.TrimSpace(raw)
		if r.isNull(val) {
			continue
		}
		switch cs.Type {
		case table.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case table.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, raw)
		}
	}
	return nil
}

func (r *Reader) isNull(v string) bool {
	_, ok := r.nulls[v]
	return ok || v == ""
}

// sniffDelimiterAndQuotes picks the most frequent candidate delimiter on the
// first line, and enables lazy quotes when that line has unbalanced quotes.
func sniffDelimiterAndQuotes(sample []byte) (rune, bool) {
	if len(sample) == 0 {
		return ',', false
	}
	line := sample
	if i := strings.IndexByte(string(sample), '\n'); i >= 0 {
		line = sample[:i]
	}
	best, bestCount := byte(','), 0
	for _, c := range []byte{',', '\t', ';', '|'} {
		cnt := 0
		for _, b := range line {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quotes := strings.Count(string(line), `"`)
	return rune(best), quotes%2 != 0
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
