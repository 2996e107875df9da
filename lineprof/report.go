package lineprof

import (
	"slices"
	"strings"
)

// Report maps each tracked filename to its per-line accumulated wall-clock
// time in microseconds, indexed by line number. Entries cover every line
// index up to the table's capacity, including the trailing allocation slack,
// so untouched lines read as 0.
type Report map[string][]uint64

// Files returns the report's filenames in lexical order.
func (r Report) Files() []string {
	files := make([]string, 0, len(r))
	for name := range r {
		files = append(files, name)
	}

	slices.Sort(files)

	return files
}

// Total returns the sum of all per-line times recorded for file.
func (r Report) Total(file string) uint64 {
	var total uint64
	for _, t := range r[file] {
		total += t
	}

	return total
}

// MaxLine returns the highest line number with a nonzero time for file,
// or 0 if the file recorded no time at all. It is the useful upper bound
// for display, trimming the trailing allocation slack.
func (r Report) MaxLine(file string) int {
	lines := r[file]
	for i := len(lines) - 1; i > 0; i-- {
		if lines[i] != 0 {
			return i
		}
	}

	return 0
}

// LineTime identifies one line of one file and its accumulated time.
type LineTime struct {
	File   string
	Line   int
	Micros uint64
}

// Top returns the n hottest lines across all files, most expensive first.
// Ties are broken by filename then line number for deterministic output.
// Lines with zero accumulated time are omitted.
func (r Report) Top(n int) []LineTime {
	var hot []LineTime

	for name, lines := range r {
		for i, t := range lines {
			if t != 0 {
				hot = append(hot, LineTime{File: name, Line: i, Micros: t})
			}
		}
	}

	slices.SortFunc(hot, func(a, b LineTime) int {
		if a.Micros != b.Micros {
			if a.Micros > b.Micros {
				return -1
			}

			return 1
		}

		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}

		return a.Line - b.Line
	})

	if n >= 0 && n < len(hot) {
		hot = hot[:n]
	}

	return hot
}
