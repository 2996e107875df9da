package lineprof

import (
	"errors"
	"regexp"
	"testing"
)

// scriptHost is a test double for the host runtime: it records listener
// registration and lets tests emit line events directly.
type scriptHost struct {
	listener   Listener
	installs   int
	uninstalls int
}

func (h *scriptHost) Install(l Listener) {
	h.listener = l
	h.installs++
}

func (h *scriptHost) Uninstall(Listener) {
	h.listener = nil
	h.uninstalls++
}

func (h *scriptHost) emit(file string, line int) {
	if h.listener != nil {
		h.listener.OnLine(file, line)
	}
}

// manualClock returns whatever timestamp the test last assigned.
type manualClock struct{ now uint64 }

func (c *manualClock) Now() uint64 { return c.now }

// event is one scripted (file, line, timestamp) notification.
type event struct {
	file string
	line int
	at   uint64
}

// profileEvents runs a session over the scripted events and returns the
// report.
func profileEvents(
	t *testing.T,
	sel Selector,
	events []event,
	opts ...Option,
) Report {
	t.Helper()

	host := &scriptHost{}
	clock := &manualClock{}

	session := New(host, append(opts, WithClock(clock))...)

	report, err := session.Profile(sel, func() error {
		for _, ev := range events {
			clock.now = ev.at
			host.emit(ev.file, ev.line)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	return report
}

func TestSession_Profile_WorkedExample(t *testing.T) {
	// Offset all timestamps so the first event has a nonzero clock reading
	// (0 is the "no event yet" sentinel). Billing uses differences only.
	const base = uint64(1_000_000)

	report := profileEvents(t, File("a"), []event{
		{"a", 1, base + 0},
		{"a", 2, base + 1000},
		{"a", 1, base + 2500},
		{"a", 3, base + 3000},
	})

	lines, ok := report["a"]
	if !ok {
		t.Fatal(`expected "a" in report`)
	}

	want := map[int]uint64{
		1: 1500, // (1000-0) + (3000-2500)
		2: 1500, // 2500-1000
		3: 0,    // no following event closes it
	}

	for line, micros := range want {
		if lines[line] != micros {
			t.Errorf("line %d: expected %d usec, got %d", line, micros, lines[line])
		}
	}
}

func TestSession_Profile_Conservation(t *testing.T) {
	// The sum of all recorded entries must equal the span between the first
	// and last tracked event.
	events := []event{
		{"a", 3, 100},
		{"a", 7, 350},
		{"a", 3, 1200},
		{"a", 12, 4000},
		{"a", 1, 4567},
	}

	report := profileEvents(t, File("a"), events)

	var sum uint64
	for _, micros := range report["a"] {
		sum += micros
	}

	span := events[len(events)-1].at - events[0].at
	if sum != span {
		t.Errorf("expected total %d usec, got %d", span, sum)
	}
}

func TestSession_Profile_CrossFileNoInterference(t *testing.T) {
	// Events on untracked files neither start nor end a tracked file's open
	// billing interval.
	report := profileEvents(t, Match(regexp.MustCompile(`^a$`)), []event{
		{"a", 1, 100},
		{"b", 9, 600},
		{"a", 2, 1000},
	})

	if _, ok := report["b"]; ok {
		t.Error(`untracked "b" must not appear in report`)
	}

	if got := report["a"][1]; got != 900 {
		t.Errorf("line 1: expected 900 usec, got %d", got)
	}
}

func TestSession_Profile_RecursiveLineAccumulates(t *testing.T) {
	// Repeated execution of the same line accumulates additively.
	report := profileEvents(t, File("a"), []event{
		{"a", 5, 100},
		{"a", 5, 300},
		{"a", 5, 700},
	})

	if got := report["a"][5]; got != 600 {
		t.Errorf("line 5: expected 600 usec, got %d", got)
	}
}

func TestSession_Profile_SingleFileNoEvents(t *testing.T) {
	// Single-file mode always reports the configured file, even when the
	// scope produced no events for it.
	report := profileEvents(t, File("quiet.rb"), nil)

	lines, ok := report["quiet.rb"]
	if !ok {
		t.Fatal("expected configured file in report")
	}

	if len(lines) != 0 {
		t.Errorf("expected empty line table, got %d entries", len(lines))
	}
}

func TestSession_Profile_Reentrant(t *testing.T) {
	host := &scriptHost{}
	clock := &manualClock{}
	session := New(host, WithClock(clock))

	var inner error

	report, err := session.Profile(File("a"), func() error {
		clock.now = 100
		host.emit("a", 1)

		// A second Profile while enabled must fail and leave the active
		// session untouched.
		_, inner = session.Profile(File("b"), func() error { return nil })

		clock.now = 400
		host.emit("a", 2)

		return nil
	})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if !errors.Is(inner, ErrEnabled) {
		t.Errorf("expected ErrEnabled from re-entrant Profile, got %v", inner)
	}

	if got := report["a"][1]; got != 300 {
		t.Errorf("active session disturbed: line 1 = %d, want 300", got)
	}

	if host.installs != 1 || host.uninstalls != 1 {
		t.Errorf(
			"expected 1 install/uninstall, got %d/%d",
			host.installs,
			host.uninstalls,
		)
	}
}

func TestSession_Profile_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		session *Session
		sel     Selector
		scope   func() error
		want    error
	}{
		{
			name:    "nil scope",
			session: New(&scriptHost{}),
			sel:     File("a"),
			scope:   nil,
			want:    ErrNoScope,
		},
		{
			name:    "zero selector",
			session: New(&scriptHost{}),
			sel:     Selector{},
			scope:   func() error { return nil },
			want:    ErrNoSelector,
		},
		{
			name:    "nil regexp",
			session: New(&scriptHost{}),
			sel:     Match(nil),
			scope:   func() error { return nil },
			want:    ErrNoSelector,
		},
		{
			name:    "nil host",
			session: New(nil),
			sel:     File("a"),
			scope:   func() error { return nil },
			want:    ErrNoHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.session.Profile(tt.sel, tt.scope)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}

			if tt.session.Enabled() {
				t.Error("failed Profile must leave session disabled")
			}
		})
	}
}

func TestSession_Profile_ScopeErrorCleansUp(t *testing.T) {
	host := &scriptHost{}
	session := New(host)

	scopeErr := errors.New("boom")

	report, err := session.Profile(File("a"), func() error {
		return scopeErr
	})

	if !errors.Is(err, scopeErr) {
		t.Errorf("expected scope error to propagate, got %v", err)
	}

	if report != nil {
		t.Error("expected no report on scope failure")
	}

	if host.listener != nil {
		t.Error("listener still installed after scope failure")
	}

	if session.Enabled() {
		t.Error("session still enabled after scope failure")
	}
}

func TestSession_Profile_PanicCleansUp(t *testing.T) {
	host := &scriptHost{}
	session := New(host)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()

		_, _ = session.Profile(File("a"), func() error {
			panic("unwind")
		})
	}()

	if host.listener != nil {
		t.Error("listener still installed after panic")
	}

	if session.Enabled() {
		t.Error("session still enabled after panic")
	}

	// The session must be usable again after unwinding.
	if _, err := session.Profile(File("a"), func() error { return nil }); err != nil {
		t.Errorf("Profile after panic failed: %v", err)
	}
}

func TestSession_Profile_CleanupAcrossSessions(t *testing.T) {
	host := &scriptHost{}
	clock := &manualClock{}
	session := New(host, WithClock(clock))

	first, err := session.Profile(
		Match(regexp.MustCompile(`first`)),
		func() error {
			clock.now = 100
			host.emit("first.rb", 1)
			clock.now = 200
			host.emit("first.rb", 2)

			return nil
		},
	)
	if err != nil {
		t.Fatalf("first Profile failed: %v", err)
	}

	if _, ok := first["first.rb"]; !ok {
		t.Fatal("expected first.rb in first report")
	}

	second, err := session.Profile(
		Match(regexp.MustCompile(`second`)),
		func() error {
			clock.now = 300
			host.emit("second.rb", 1)
			clock.now = 450
			host.emit("second.rb", 2)

			return nil
		},
	)
	if err != nil {
		t.Fatalf("second Profile failed: %v", err)
	}

	if _, ok := second["first.rb"]; ok {
		t.Error("residue from first session in second report")
	}

	if _, ok := second["second.rb"]; !ok {
		t.Error("expected second.rb in second report")
	}
}

func BenchmarkOnLine(b *testing.B) {
	host := &scriptHost{}
	session := New(host)

	_, _ = session.Profile(File("tracked"), func() error {
		b.Run("tracked", func(b *testing.B) {
			for b.Loop() {
				host.emit("tracked", 10)
			}
		})

		b.Run("untracked", func(b *testing.B) {
			for b.Loop() {
				host.emit("other", 10)
			}
		})

		return nil
	})
}
