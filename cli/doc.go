// Package cli implements the lineprof command-line interface: flag parsing,
// logger configuration, optional self-profiling, and dispatch to the replay
// and view commands.
package cli
