package convert

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/ir"
)

// ProgramConcurrent converts functions on up to workers goroutines (GOMAXPROCS when
// workers <= 0). The result equals Program: on failure it is the error of the
// lowest-index failing function, regardless of completion order. Functions are
// independent values, so no coordination beyond collecting results is needed.
func (c *Converter) ProgramConcurrent(ctx context.Context, p ast.Program, workers int) (*ir.Program, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	funcs := make([]ir.Function, len(p.Functions))
	errs := make([]*PositionalError, len(p.Functions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range p.Functions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			funcs[i], errs[i] = c.convertFunction(p.Functions[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &ir.Program{Functions: funcs}, nil
}
