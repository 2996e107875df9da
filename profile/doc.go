// Package profile provides optional runtime self-profiling of the lineprof
// tool itself, built on [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag; without
// it every operation is a no-op with zero overhead. Use [Modes] for the list
// of supported modes and analyze the output with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
