package cmd

import (
	"context"
	"os"

	"github.com/ardnew/lineprof/log"
	"github.com/ardnew/lineprof/render"
)

// Replay replays a recorded trace and writes a per-line timing report.
type Replay struct {
	Trace string `arg:"" help:"Recorded trace file (YAML)" name:"trace" type:"existingfile"`

	selectorFlags `embed:""`

	Format    string   `default:"table"   enum:"table,annotate,yaml" help:"Output format"                       short:"o"`
	Top       int      `default:"10"                                 help:"Rows in the hottest-lines table"`
	Focus     []string `                                             help:"Fuzzy-filter report files by name"`
	SourceDir string   `                                             help:"Directory for resolving source files"          placeholder:"DIR" type:"existingdir"`
	Theme     string   `default:"monokai"                            help:"Syntax highlighting theme"`
	Plain     bool     `                                             help:"Disable syntax highlighting"`
}

// Run executes the replay command.
func (r *Replay) Run(ctx context.Context) error {
	sel, err := r.selector()
	if err != nil {
		return err
	}

	report, err := replayReport(ctx, r.Trace, sel)
	if err != nil {
		return err
	}

	report, err = focus(report, r.Focus)
	if err != nil {
		return err
	}

	switch r.Format {
	case "annotate":
		a := render.NewAnnotator(
			render.WithSourceDir(r.SourceDir),
			render.WithHighlight(!r.Plain),
			render.WithTheme(r.Theme),
			render.WithLogger(log.Default()),
		)

		return a.AnnotateAll(os.Stdout, report)

	case "yaml":
		return render.WriteYAML(os.Stdout, report)

	default:
		if err := render.Totals(os.Stdout, report); err != nil {
			return err
		}

		return render.Summary(os.Stdout, report, r.Top)
	}
}
