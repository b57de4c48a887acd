package main

import (
	"fmt"
	"io"

	"whilec/internal/observ"
	"whilec/internal/pipeline"
)

func printStageTimings(out io.Writer, results []pipeline.CompileResult) {
	if out == nil {
		return
	}
	reports := make([]observ.Report, 0, len(results))
	for i := range results {
		if results[i].Cached {
			continue
		}
		reports = append(reports, results[i].Timings)
	}
	if len(reports) == 0 {
		fmt.Fprintln(out, "timings: all outputs served from cache")
		return
	}
	fmt.Fprint(out, observ.Merge(reports...).Summary())
}
