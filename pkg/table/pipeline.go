package table

import (
	"context"
	"fmt"
	"log/slog"
)

// Transform is a mutation, filter or validation applied to a Frame.
// Mutating transforms return the same Frame; filters may return a new one.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// Pipeline composes a sequence of Transforms run strictly in order.
type Pipeline struct {
	steps  []Transform
	logger *slog.Logger
}

func NewPipeline() *Pipeline { return &Pipeline{logger: slog.Default()} }

// WithLogger sets the logger used for per-step progress lines.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	if l != nil {
		p.logger = l
	}
	return p
}

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Steps returns the step names in run order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Name()
	}
	return out
}

// Run applies every step in order. The context is checked between steps; a
// step error aborts the run with no retry.
func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	var err error
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		before := cur.Rows()
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
		p.logger.Debug("step done", "step", t.Name(), "rows_in", before, "rows_out", cur.Rows())
	}
	return cur, nil
}
