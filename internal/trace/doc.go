// Package trace records what the transformer is doing, for diagnosing slow
// or stuck runs.
//
// Enable it from the command line:
//
//	hush transform --trace=- --trace-level=phase src/
//
// Tracer implementations:
//
//   - Nop: the default, does nothing
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// Levels select how deep events go: phase shows the pipeline stages of
// each Transform call, detail adds per-file events of batch runs, debug
// adds one event per rewritten node.
//
// Tracers and the current span travel through the pipeline in the context;
// Start opens a child of whatever span ctx already carries:
//
//	span, ctx := trace.Start(ctx, fallback, trace.ScopeDriver, "batch")
//	defer span.End("")
package trace
