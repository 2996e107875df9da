// Package render formats profiling reports for terminal output: annotated
// source listings with a per-line timing gutter, tabular summaries of the
// hottest lines, and a machine-readable YAML form.
package render
