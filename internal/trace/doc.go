// Package trace records what the compiler driver is doing while it runs.
//
// Events are grouped by scope: the driver (one per CLI command), stages of a
// single compilation (parse, check, lower, flatten, remap, emit), and
// individual basic blocks during code generation. The level decides which
// scopes reach the output:
//
//	off     nothing
//	error   nothing; reserved for failure reports
//	phase   driver and stage spans
//	detail  also per-file points
//	debug   everything, including blocks
//
// A tracer travels through the pipeline inside a context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span, ctx := trace.Start(ctx, trace.ScopeStage, "lower")
//	defer span.End("")
package trace
