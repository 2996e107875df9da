package lineprof

// DefaultSlack is the extra capacity added beyond the highest observed line
// number when a line-time table is allocated or grown. Growing past the
// immediate need bounds reallocation frequency as execution walks down a
// file.
const DefaultSlack = 100

// sourceFile is the tracking record for one tracked file: its per-line
// accumulated time and the engine state needed to bill the next interval.
//
// lastTime is the timestamp of the most recent event for this file, or 0 if
// none has occurred yet. lastLine is the line that event reported, i.e. the
// line whose execution the next event closes out.
type sourceFile struct {
	name  string
	lines []uint64

	lastTime uint64
	lastLine int
}

// accumulate adds delta microseconds to the counter for line. The table is
// allocated lazily on first use and grown to line+slack when line falls
// outside the current capacity; existing counts are preserved and new slots
// are zero-filled.
func (f *sourceFile) accumulate(line int, delta uint64, slack int) {
	if line >= len(f.lines) {
		grown := make([]uint64, line+slack)
		copy(grown, f.lines)
		f.lines = grown
	}

	f.lines[line] += delta
}
