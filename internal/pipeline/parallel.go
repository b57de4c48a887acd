package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"whilec/internal/trace"
)

// CompileAll compiles independent files with at most jobs running at once
// (GOMAXPROCS when jobs <= 0). Results keep the order of reqs. A failing
// file does not stop the others; the returned error joins all failures.
func CompileAll(ctx context.Context, reqs []*CompileRequest, jobs int) ([]CompileResult, error) {
	results := make([]CompileResult, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "compile-all")
	defer span.End(fmt.Sprintf("%d files", len(reqs)))

	for _, req := range reqs {
		if req != nil && req.Progress != nil {
			req.Progress.OnEvent(Event{File: req.Path, Stage: StageParse, Status: StatusQueued})
		}
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	errs := make([]error, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(reqs)))
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Compile(gctx, req)
			results[i] = res
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", res.Path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}
