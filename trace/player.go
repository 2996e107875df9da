package trace

import (
	"log/slog"

	"github.com/ardnew/lineprof/lineprof"
	"github.com/ardnew/lineprof/log"
)

// Player replays a trace through a profiling session. It implements both
// [lineprof.Host], dispatching each recorded event to the installed listener,
// and [lineprof.Clock], reporting the current event's recorded timestamp, so
// the resulting report is identical on every replay of the same trace.
type Player struct {
	trace    *Trace
	listener lineprof.Listener
	cursor   int
	logger   log.Logger
}

// NewPlayer creates a Player over tr.
func NewPlayer(tr *Trace, opts ...PlayerOption) *Player {
	p := &Player{trace: tr}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PlayerOption configures a [Player].
type PlayerOption func(*Player)

// WithLogger sets the logger used for replay progress.
func WithLogger(l log.Logger) PlayerOption {
	return func(p *Player) { p.logger = l }
}

// Install implements [lineprof.Host].
func (p *Player) Install(l lineprof.Listener) { p.listener = l }

// Uninstall implements [lineprof.Host].
func (p *Player) Uninstall(lineprof.Listener) { p.listener = nil }

// Now implements [lineprof.Clock]. It reports the timestamp of the event
// currently being dispatched, shifted up by one microsecond: 0 is the
// engine's "no prior event" sentinel, and the shift keeps a trace whose
// first event is recorded at 0 billing correctly. Reports depend only on
// timestamp differences, so the shift never appears in output.
func (p *Player) Now() uint64 {
	return p.trace.Events[p.cursor].At + 1
}

// Run dispatches every event of the trace, in order, to the installed
// listener. It is shaped to serve directly as the scope of
// [lineprof.Session.Profile].
func (p *Player) Run() error {
	if p.listener == nil {
		return ErrDetached
	}

	p.logger.Debug("replaying trace",
		slog.Int("events", len(p.trace.Events)),
		slog.Uint64("span", p.trace.Span()),
	)

	for i, ev := range p.trace.Events {
		p.cursor = i
		p.listener.OnLine(ev.File, ev.Line)
	}

	return nil
}
