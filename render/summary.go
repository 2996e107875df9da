package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/ardnew/lineprof/lineprof"
)

// Summary writes a table of the n hottest lines across the report, most
// expensive first. A non-positive n includes every line with recorded time.
func Summary(w io.Writer, report lineprof.Report, n int) error {
	if n <= 0 {
		n = -1
	}

	table := tablewriter.NewWriter(w)
	table.Header("File", "Line", "Time")

	for _, lt := range report.Top(n) {
		table.Append(
			lt.File,
			fmt.Sprintf("%d", lt.Line),
			formatMicros(lt.Micros),
		)
	}

	return table.Render()
}

// Totals writes a per-file table of accumulated time and the highest line
// observed, in lexical filename order.
func Totals(w io.Writer, report lineprof.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("File", "Total", "Max Line")

	for _, file := range report.Files() {
		table.Append(
			file,
			formatMicros(report.Total(file)),
			fmt.Sprintf("%d", report.MaxLine(file)),
		)
	}

	return table.Render()
}
