package lineprof

import (
	"errors"
	"regexp"
	"testing"
)

func TestSelector_IsZero(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want bool
	}{
		{"zero value", Selector{}, true},
		{"nil regexp", Match(nil), true},
		{"file", File("a.rb"), false},
		{"regexp", Match(regexp.MustCompile(`\.rb$`)), false},
		{"func", MatchFunc(func(string) bool { return true }), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelector_Memoization(t *testing.T) {
	// The predicate must run at most once per distinct filename, no matter
	// how many events each filename produces.
	calls := make(map[string]int)

	host := &scriptHost{}
	clock := &manualClock{}
	session := New(host, WithClock(clock))

	sel := MatchFunc(func(name string) bool {
		calls[name]++

		return name == "keep.rb"
	})

	_, err := session.Profile(sel, func() error {
		for i := range 10 {
			clock.now = uint64(100 * (i + 1))
			host.emit("keep.rb", i+1)
			host.emit("drop.rb", i+1)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	for _, name := range []string{"keep.rb", "drop.rb"} {
		if calls[name] != 1 {
			t.Errorf("%s: predicate ran %d times, want 1", name, calls[name])
		}
	}
}

func TestSelector_NegativeStability(t *testing.T) {
	// A filename rejected once stays rejected for the whole session, even if
	// the predicate would answer differently later.
	admit := false

	host := &scriptHost{}
	clock := &manualClock{}
	session := New(host, WithClock(clock))

	sel := MatchFunc(func(string) bool { return admit })

	report, err := session.Profile(sel, func() error {
		clock.now = 100
		host.emit("flaky.rb", 1)

		admit = true

		clock.now = 900
		host.emit("flaky.rb", 2)

		return nil
	})
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	if _, ok := report["flaky.rb"]; ok {
		t.Error("rejected file was re-evaluated and promoted mid-session")
	}
}

func TestSelector_MemoizationResetBetweenSessions(t *testing.T) {
	calls := 0

	host := &scriptHost{}
	session := New(host)

	sel := MatchFunc(func(string) bool {
		calls++

		return true
	})

	for range 2 {
		_, err := session.Profile(sel, func() error {
			host.emit("a.rb", 1)

			return nil
		})
		if err != nil {
			t.Fatalf("Profile failed: %v", err)
		}
	}

	if calls != 2 {
		t.Errorf("predicate ran %d times across 2 sessions, want 2", calls)
	}
}

func TestMatchExpr(t *testing.T) {
	sel, err := MatchExpr(`hasSuffix(file, ".rb")`)
	if err != nil {
		t.Fatalf("MatchExpr failed: %v", err)
	}

	tests := []struct {
		file string
		want bool
	}{
		{"app.rb", true},
		{"lib/worker.rb", true},
		{"main.go", false},
	}

	for _, tt := range tests {
		if got := sel.match(tt.file); got != tt.want {
			t.Errorf("match(%q) = %v, want %v", tt.file, got, tt.want)
		}
	}
}

func TestMatchExpr_CompileError(t *testing.T) {
	_, err := MatchExpr(`file +`)
	if !errors.Is(err, ErrExpr) {
		t.Errorf("expected ErrExpr, got %v", err)
	}

	_, err = MatchExpr(`len(file)`) // not boolean
	if !errors.Is(err, ErrExpr) {
		t.Errorf("expected ErrExpr for non-boolean expression, got %v", err)
	}
}
