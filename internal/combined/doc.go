// Package combined provides interaction benchmarks for the composition the
// precision delay's spin tail runs millions of times per second: one
// cancellation check plus one deadline check per iteration, with and
// without the CPU pause hint.
//
// These benchmarks are more representative of the tail's real per-poll
// cost than isolated micro-benchmarks, as they capture the cumulative cost
// and any interactions between the two checks.
package combined
