package lineprof

import (
	"log/slog"
)

// Listener receives line-execution notifications from the host runtime.
//
// The host must invoke OnLine synchronously at or before the start of every
// executed statement, on the thread executing the profiled program, with the
// canonical filename and line number of the statement.
type Listener interface {
	OnLine(file string, line int)
}

// Host is the registration boundary to the host runtime's statement
// notification mechanism. Install makes l the sole consumer of line events;
// Uninstall detaches it. A [Session] installs itself for the duration of
// each Profile call.
type Host interface {
	Install(l Listener)
	Uninstall(l Listener)
}

// state tracks the session lifecycle. The only transitions are
// disabled → enabled at the start of Profile and enabled → disabled on
// every exit path of the profiled scope.
type state int

const (
	stateDisabled state = iota
	stateEnabled
)

// Session owns all profiling state: the selection mode, the file registry
// with its tracking records, and the lifecycle flag guarding against
// re-entrant profiling.
//
// A Session is single-threaded by design: the timing engine runs as a
// synchronous callback on the host's execution thread, and Profile must not
// be called concurrently with a running scope.
type Session struct {
	config

	host  Host
	state state

	sel Selector

	// single is the tracking record in single-file mode.
	single *sourceFile

	// files is the registry of memoized decisions in pattern mode,
	// exclusively owned by the session and discarded in full when the next
	// session starts.
	files map[string]registryEntry
}

// New creates a Session bound to the given host.
func New(host Host, opts ...Option) *Session {
	return &Session{
		config: makeConfig(opts...),
		host:   host,
	}
}

// Enabled reports whether a profiled scope is currently executing.
func (s *Session) Enabled() bool { return s.state == stateEnabled }

// Profile runs scope with the timing engine installed as the host's line
// listener and returns the per-line timing report.
//
// It fails with [ErrEnabled] if a session is already active (leaving the
// active session untouched), with [ErrNoScope] or [ErrNoSelector] for
// missing arguments, and with [ErrNoHost] if the session was built without
// a host. All failures surface before any prior-session state is discarded
// or any hook installed.
//
// The engine is uninstalled and the session disabled on every exit path:
// normal completion, an error returned by scope (which Profile returns
// without a report), or a panic unwinding out of scope (which propagates
// after cleanup).
func (s *Session) Profile(sel Selector, scope func() error) (Report, error) {
	if s.state == stateEnabled {
		return nil, ErrEnabled
	}

	if scope == nil {
		return nil, ErrNoScope
	}

	if sel.IsZero() {
		return nil, ErrNoSelector
	}

	if s.host == nil {
		return nil, ErrNoHost
	}

	s.reset(sel)

	s.logger.Debug("session enabled",
		slog.Bool("single", sel.single()),
		slog.Int("slack", s.slack),
	)

	s.state = stateEnabled
	s.host.Install(s)

	defer func() {
		s.host.Uninstall(s)
		s.state = stateDisabled

		s.logger.Debug("session disabled")
	}()

	if err := scope(); err != nil {
		return nil, err
	}

	return s.summarize(), nil
}

// reset discards all state retained from a prior session. The registry and
// its tracking records are released in full; nothing leaks across repeated
// Profile calls.
func (s *Session) reset(sel Selector) {
	s.sel = sel
	s.single = nil
	s.files = make(map[string]registryEntry)
}

// OnLine implements [Listener]. It is the timing engine's hot path, invoked
// for every executed statement of every file, so the untracked return must
// stay cheap.
//
// Elapsed time between consecutive tracked events is billed to the line the
// previous event reported for that file: that line just finished executing
// when the current event fires. The first event for a file bills nothing.
// Events for untracked files neither open nor close a tracked file's billing
// interval.
func (s *Session) OnLine(file string, line int) {
	f := s.lookup(file)
	if f == nil {
		return
	}

	now := s.clock.Now()

	if f.lastTime != 0 {
		f.accumulate(f.lastLine, now-f.lastTime, s.slack)
	}

	f.lastTime = now
	f.lastLine = line
}

// lookup resolves the tracking record for file, or nil if untracked.
//
// Single-file mode compares names directly. Pattern mode consults the
// registry first: a memoized decision, positive or negative, is never
// re-evaluated within a session, so the pattern runs at most once per
// distinct filename regardless of event volume.
func (s *Session) lookup(file string) *sourceFile {
	if s.sel.single() {
		if file != s.sel.name {
			return nil
		}

		if s.single == nil {
			s.single = &sourceFile{name: file}
		}

		return s.single
	}

	if e, ok := s.files[file]; ok {
		return e.file
	}

	if !s.sel.match(file) {
		s.files[file] = registryEntry{}

		s.logger.Trace("file rejected", slog.String("file", file))

		return nil
	}

	f := &sourceFile{name: file}
	s.files[file] = registryEntry{file: f, matched: true}

	s.logger.Trace("file tracked", slog.String("file", file))

	return f
}

// summarize materializes the report from the session's tracking records.
// Line-time slices are copied so the report remains valid after the next
// session resets the registry.
func (s *Session) summarize() Report {
	report := make(Report)

	if s.sel.single() {
		lines := []uint64{}
		if s.single != nil {
			lines = append(lines, s.single.lines...)
		}

		report[s.sel.name] = lines

		return report
	}

	for name, e := range s.files {
		if !e.matched {
			continue
		}

		report[name] = append([]uint64{}, e.file.lines...)
	}

	return report
}
