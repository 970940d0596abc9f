// Package diag defines the diagnostic model shared by all resolution phases.
//
// The semantic core only constructs Diagnostic records and hands them to a
// Reporter; it never formats, prints, or aborts. Rendering lives with the
// driver.
//
// Diagnostic is the central record: severity, a stable numeric Code, a
// human-oriented message, a primary source.Span, and optional Notes that add
// secondary spans ("previous declaration was here"). A single input defect is
// expected to yield a single diagnostic citing every involved span, not one
// diagnostic per span.
//
// Reporter is the producer-side contract. BagReporter stores diagnostics into
// a Bag for later sorting and inspection; DedupReporter suppresses repeats
// when independent queries rediscover the same defect.
package diag
