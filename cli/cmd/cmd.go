// Package cmd implements the lineprof subcommands.
package cmd

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/lineprof/lineprof"
	"github.com/ardnew/lineprof/log"
	"github.com/ardnew/lineprof/trace"
)

// Predefined errors (sentinel values).
var (
	ErrPattern = lineprof.NewError("pattern is not a valid regular expression")
	ErrFocus   = lineprof.NewError("no report files match the focus terms")
)

// selectorFlags are the mutually exclusive file-selection flags shared by
// the replay and view commands. With none set, every file in the trace is
// profiled.
type selectorFlags struct {
	File  string `help:"Profile exactly one file"                          short:"f" xor:"selector"`
	Match string `help:"Profile files matching a regular expression"       short:"m" xor:"selector"`
	Expr  string `help:"Profile files matching an expression over 'file'"  short:"e" xor:"selector"`
}

// selector builds the session selector from the parsed flags.
func (s selectorFlags) selector() (lineprof.Selector, error) {
	switch {
	case s.File != "":
		return lineprof.File(s.File), nil

	case s.Match != "":
		re, err := regexp.Compile(s.Match)
		if err != nil {
			return lineprof.Selector{}, ErrPattern.Wrap(err).
				With(slog.String("pattern", s.Match))
		}

		return lineprof.Match(re), nil

	case s.Expr != "":
		return lineprof.MatchExpr(s.Expr)

	default:
		return lineprof.MatchFunc(func(string) bool { return true }), nil
	}
}

// replayReport loads the trace at path and replays it through a profiling
// session with the given selector.
func replayReport(
	ctx context.Context,
	path string,
	sel lineprof.Selector,
) (lineprof.Report, error) {
	logger := log.Default()

	tr, err := trace.LoadFile(path)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "trace loaded",
		slog.String("path", path),
		slog.Int("events", len(tr.Events)),
		slog.Int("files", len(tr.Files())),
	)

	player := trace.NewPlayer(tr, trace.WithLogger(logger))
	session := lineprof.New(player,
		lineprof.WithClock(player),
		lineprof.WithLogger(logger),
	)

	return session.Profile(sel, player.Run)
}

// focus narrows report to the files fuzzy-matched by any of the terms.
func focus(
	report lineprof.Report,
	terms []string,
) (lineprof.Report, error) {
	if len(terms) == 0 {
		return report, nil
	}

	files := report.Files()
	keep := make(lineprof.Report)

	for _, term := range terms {
		for _, m := range fuzzy.Find(term, files) {
			keep[m.Str] = report[m.Str]
		}
	}

	if len(keep) == 0 {
		return nil, ErrFocus.With(slog.Any("terms", terms))
	}

	return keep, nil
}
