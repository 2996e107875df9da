package cmd

import (
	"context"
	"strings"

	"github.com/ardnew/lineprof/log"
	"github.com/ardnew/lineprof/render"
	"github.com/ardnew/lineprof/tui"
)

// View replays a recorded trace and browses the annotated report in an
// interactive pager.
type View struct {
	Trace string `arg:"" help:"Recorded trace file (YAML)" name:"trace" type:"existingfile"`

	selectorFlags `embed:""`

	Focus     []string `help:"Fuzzy-filter report files by name"`
	SourceDir string   `help:"Directory for resolving source files" placeholder:"DIR" type:"existingdir"`
	Theme     string   `default:"monokai" help:"Syntax highlighting theme"`
	Plain     bool     `help:"Disable syntax highlighting"`
}

// Run executes the view command.
func (v *View) Run(ctx context.Context) error {
	sel, err := v.selector()
	if err != nil {
		return err
	}

	report, err := replayReport(ctx, v.Trace, sel)
	if err != nil {
		return err
	}

	report, err = focus(report, v.Focus)
	if err != nil {
		return err
	}

	a := render.NewAnnotator(
		render.WithSourceDir(v.SourceDir),
		render.WithHighlight(!v.Plain),
		render.WithTheme(v.Theme),
		render.WithLogger(log.Default()),
	)

	var content strings.Builder
	if err := a.AnnotateAll(&content, report); err != nil {
		return err
	}

	return tui.Run(ctx, v.Trace, content.String())
}
