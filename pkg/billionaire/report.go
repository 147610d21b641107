package billionaire

import (
	"log/slog"

	"github.com/wdm0006/billclean/pkg/table"
)

// Report summarises one cleaning run.
type Report struct {
	RunID  string `json:"run_id"`
	Input  string `json:"input"`
	Output string `json:"output"`

	RowsRead    int `json:"rows_read"`
	RowsWritten int `json:"rows_written"`
	RowsDropped int `json:"rows_dropped"`

	Replaced         int `json:"replaced"`
	CoercionFailures int `json:"coercion_failures"`
	Filled           int `json:"filled"`
	AgesImputed      int `json:"ages_imputed"`
	AgesUndefined    int `json:"ages_undefined"`

	// Warnings carries the reader's record repair summary, if any.
	Warnings string `json:"warnings,omitempty"`

	// Frame is the cleaned table as persisted.
	Frame *table.Frame `json:"-"`
}

// LogValue implements slog.LogValuer.
func (r *Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("run_id", r.RunID),
		slog.Int("rows_read", r.RowsRead),
		slog.Int("rows_written", r.RowsWritten),
		slog.Int("rows_dropped", r.RowsDropped),
		slog.Int("replaced", r.Replaced),
		slog.Int("coercion_failures", r.CoercionFailures),
		slog.Int("filled", r.Filled),
		slog.Int("ages_imputed", r.AgesImputed),
		slog.Int("ages_undefined", r.AgesUndefined),
	}
	if r.Warnings != "" {
		attrs = append(attrs, slog.String("warnings", r.Warnings))
	}
	return slog.GroupValue(attrs...)
}
