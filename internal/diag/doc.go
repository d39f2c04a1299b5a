// Package diag defines the diagnostic model shared by the lexer, parser,
// emitter and pipeline.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string id (LEX1001, SYN2001, ...), a short Message, an optional Primary span
// and optional Notes pointing at related locations. A zero Primary span means
// the failure has no source location (emit and serialization errors).
//
// Producers talk to a Reporter, usually a BagReporter filling a Bag. The Bag
// caps, sorts and deduplicates. Rendering lives in internal/diagfmt.
package diag
