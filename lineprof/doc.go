// Package lineprof attributes elapsed wall-clock time to individual source
// lines of selected files while a caller-supplied scope of work executes.
//
// The profiler does not instrument the profiled program itself. Instead, the
// host runtime (an interpreter, a bytecode VM, a trace replayer) notifies a
// [Listener] synchronously at the start of every executed statement, and the
// session bills the time elapsed between consecutive tracked events to the
// line that just finished executing.
//
// # Usage
//
//	session := lineprof.New(host)
//	report, err := session.Profile(lineprof.File("app.rb"), func() error {
//	    return host.RunProgram()
//	})
//
// Files are selected either by exact name ([File]) or by pattern ([Match],
// [MatchFunc], [MatchExpr]). Pattern decisions are memoized per filename, so
// a pattern is evaluated at most once per distinct filename per session no
// matter how many events reference it.
//
// The timing engine runs on the host's own execution thread as a synchronous
// callback. It performs no I/O, never blocks, and its untracked-file path is
// a cheap no-op since it fires on every executed statement. No concurrent
// access to a Session is supported.
package lineprof
