package billionaire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/wdm0006/billclean/pkg/io/csvio"
	iox "github.com/wdm0006/billclean/pkg/io/ioutils"
	"github.com/wdm0006/billclean/pkg/io/jsonlio"
	"github.com/wdm0006/billclean/pkg/io/parquetio"
	"github.com/wdm0006/billclean/pkg/table"
	"github.com/wdm0006/billclean/pkg/transform/coerce"
	"github.com/wdm0006/billclean/pkg/transform/impute"
	"github.com/wdm0006/billclean/pkg/transform/standardize"
	"github.com/wdm0006/billclean/pkg/transform/validate"
)

// ErrSourceNotFound is returned when the input path does not name a readable
// file. It wraps os.ErrNotExist.
var ErrSourceNotFound = fmt.Errorf("source not found: %w", os.ErrNotExist)

// ErrMissingColumn is returned when the source lacks one of Cleaner.Columns.
var ErrMissingColumn = errors.New("missing column")

// Cleaner holds the rule tables of a cleaning run. The zero value has no
// rules; use NewCleaner for the roster defaults.
type Cleaner struct {
	// Columns must all be present in the source.
	Columns      []string
	Replacements []standardize.Rule
	Types        []coerce.Rule
	Fills        []impute.Default
	ImputeColumn string
	GroupBy      string
	Required     []string

	// Strict rejects records with too few or too many fields instead of
	// padding or truncating them.
	Strict bool
	Logger *slog.Logger
}

func NewCleaner() *Cleaner {
	return &Cleaner{
		Columns:      DefaultColumns(),
		Replacements: DefaultReplacements(),
		Types:        DefaultTypes(),
		Fills:        DefaultFills(),
		ImputeColumn: ColAge,
		GroupBy:      ColCitizenship,
		Required:     DefaultRequired(),
		Logger:       slog.Default(),
	}
}

func (c *Cleaner) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Clean loads in, runs the cleaning stages and writes the result to out. A
// missing source fails with ErrSourceNotFound before out is touched.
func (c *Cleaner) Clean(ctx context.Context, in, out string) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Input: in, Output: out}
	log := c.logger().With("run_id", rep.RunID)

	f, warnings, err := Load(in, c.Strict)
	if err != nil {
		return rep, err
	}
	rep.RowsRead = f.Rows()
	rep.Warnings = warnings
	log.Info("loaded", "path", in, "rows", f.Rows(), "cols", f.Cols())
	if warnings != "" {
		log.Warn("input records repaired", "warnings", warnings)
	}

	cleaned, err := c.Transform(ctx, f, rep)
	if err != nil {
		return rep, err
	}

	if err := Persist(out, cleaned); err != nil {
		return rep, fmt.Errorf("write %s: %w", out, err)
	}
	rep.RowsWritten = cleaned.Rows()
	rep.Frame = cleaned
	log.Info("saved", "path", out, "report", rep)
	return rep, nil
}

// Transform runs the in-memory stages on f and records their counters in rep.
func (c *Cleaner) Transform(ctx context.Context, f *table.Frame, rep *Report) (*table.Frame, error) {
	if rep == nil {
		rep = &Report{}
	}
	if err := checkColumns(f.Schema(), c.Columns); err != nil {
		return nil, err
	}
	replace := &standardize.Replace{Rules: c.Replacements}
	types := &coerce.Coerce{Rules: c.Types}
	fill := &impute.Fill{Defaults: c.Fills}
	ages := &impute.GroupMean{Column: c.ImputeColumn, By: c.GroupBy}
	required := validate.NewRequired(c.Required...)

	p := table.NewPipeline().WithLogger(c.logger()).
		Add(replace).
		Add(types).
		Add(fill)
	if c.ImputeColumn != "" {
		p.Add(ages)
	}
	p.Add(required)
	c.logger().Debug("pipeline", "steps", p.Steps())

	out, err := p.Run(ctx, f)
	if err != nil {
		return nil, err
	}
	rep.Replaced = replace.Replaced
	rep.CoercionFailures = types.Failures
	rep.Filled = fill.Filled
	rep.AgesImputed = ages.Imputed
	rep.AgesUndefined = ages.Undefined
	rep.RowsDropped = required.Dropped

	log := c.logger()
	if types.Failures > 0 {
		log.Warn("values could not be coerced", "count", types.Failures)
	}
	if ages.Undefined > 0 {
		log.Warn("no group mean available, values left absent", "column", c.ImputeColumn, "by", c.GroupBy, "count", ages.Undefined)
	}
	if required.Dropped > 0 {
		log.Info("incomplete rows dropped", "count", required.Dropped, "columns", c.Required)
	}
	return out, nil
}

func checkColumns(s table.Schema, want []string) error {
	have := make(map[string]bool, len(s.Columns))
	for _, n := range s.Names() {
		have[n] = true
	}
	var missing []string
	for _, n := range want {
		if !have[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Clean runs the default roster cleaning with the given logger.
func Clean(ctx context.Context, in, out string, logger *slog.Logger) (*Report, error) {
	c := NewCleaner()
	if logger != nil {
		c.Logger = logger
	}
	return c.Clean(ctx, in, out)
}

// Load reads path as delimited text with every column kept as text, so later
// stages see the raw literals. It also returns the reader's repair summary.
// With strict set, a record whose field count differs from the header fails
// the load.
func Load(path string, strict bool) (*table.Frame, string, error) {
	if path != "-" {
		st, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
			}
			return nil, "", err
		}
		if st.IsDir() {
			return nil, "", fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
		}
	}
	r, err := csvio.Open(path, csvio.ReaderOptions{HasHeader: true, Strict: strict})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, "", err
	}
	defer func() { _ = r.Close() }()
	schema, err := r.ReadSchema()
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	f, err := r.ReadAll(schema)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return f, r.Warnings(), nil
}

// Persist writes f to path, choosing the encoding from the extension: .jsonl
// for JSON lines, .parquet for Parquet, anything else CSV. A trailing .gz
// compresses CSV and JSON lines output.
func Persist(path string, f *table.Frame) error {
	switch iox.BaseExt(path) {
	case ".jsonl", ".ndjson":
		return jsonlio.WriteAll(path, f)
	case ".parquet":
		if iox.IsGzipPath(path) {
			return fmt.Errorf("parquet output cannot be gzip wrapped: %s", path)
		}
		return parquetio.WriteAll(path, f)
	default:
		return csvio.WriteAll(path, f, csvio.WriterOptions{})
	}
}
