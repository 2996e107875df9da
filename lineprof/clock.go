package lineprof

import "time"

// Clock supplies the timestamps used to bill elapsed time between line
// events. Timestamps are in microseconds and must be non-decreasing within
// a session.
type Clock interface {
	Now() uint64
}

// ClockFunc adapts an ordinary function to the [Clock] interface.
type ClockFunc func() uint64

// Now implements [Clock].
func (f ClockFunc) Now() uint64 { return f() }

// epoch anchors the default clock. Reading elapsed time from a fixed base
// uses the runtime's monotonic clock, which cannot step backward the way
// wall time can.
//
//nolint:gochecknoglobals
var epoch = time.Now()

// sysClock reads the process monotonic clock.
type sysClock struct{}

// Now implements [Clock] with microseconds elapsed since process start.
func (sysClock) Now() uint64 { return uint64(time.Since(epoch).Microseconds()) }
