package lineprof

import (
	"log/slog"
	"regexp"

	"github.com/expr-lang/expr"
)

// Selector decides which files are tracked during a session.
//
// The zero value selects nothing and is rejected by [Session.Profile].
// Construct selectors with [File], [Match], [MatchFunc], or [MatchExpr].
type Selector struct {
	// name selects single-file mode: a file is tracked iff its canonical
	// name compares equal. No memoization is needed.
	name string

	// match selects pattern mode: the predicate is evaluated at most once
	// per distinct filename per session, with the decision memoized in the
	// session's file registry.
	match func(string) bool
}

// File returns a selector that tracks exactly one file, compared by the
// canonical filename the host reports in its line events.
func File(name string) Selector {
	return Selector{name: name}
}

// Match returns a selector that tracks every file whose canonical name
// matches re.
func Match(re *regexp.Regexp) Selector {
	if re == nil {
		return Selector{}
	}

	return Selector{match: re.MatchString}
}

// MatchFunc returns a selector that tracks every file for which fn reports
// true. Like [Match], decisions are memoized per filename, so fn runs at
// most once per distinct filename per session.
func MatchFunc(fn func(string) bool) Selector {
	return Selector{match: fn}
}

// MatchExpr compiles an expr-lang boolean expression over the variable
// "file" and returns a selector tracking every file for which it evaluates
// true:
//
//	sel, err := lineprof.MatchExpr(`hasSuffix(file, ".rb")`)
//
// Compilation errors are reported immediately; evaluation errors at match
// time are treated as "not matched".
func MatchExpr(src string) (Selector, error) {
	program, err := expr.Compile(
		src,
		expr.Env(map[string]any{"file": ""}),
		expr.AsBool(),
	)
	if err != nil {
		return Selector{}, ErrExpr.Wrap(err).
			With(slog.String("expr", src))
	}

	return Selector{
		match: func(name string) bool {
			out, err := expr.Run(program, map[string]any{"file": name})
			if err != nil {
				return false
			}

			matched, ok := out.(bool)

			return ok && matched
		},
	}, nil
}

// IsZero reports whether the selector selects nothing.
func (s Selector) IsZero() bool {
	return s.name == "" && s.match == nil
}

// single reports whether the selector is in single-file mode.
func (s Selector) single() bool { return s.match == nil }

// registryEntry is the memoized tracking decision for one filename in
// pattern mode. The registry distinguishes three states per filename:
// absent (never seen), {matched: false} (evaluated and rejected), and
// {matched: true, file: f} (evaluated and tracked). A rejected filename is
// never re-evaluated or promoted within the same session.
type registryEntry struct {
	file    *sourceFile
	matched bool
}
