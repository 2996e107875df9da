package render

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/lineprof/lineprof"
	"github.com/ardnew/lineprof/log"
)

// ErrSource indicates the profiled source file could not be read for
// annotation.
var ErrSource = lineprof.NewError("source file is not readable")

// Gutter styles keyed by how expensive the line was.
//
//nolint:gochecknoglobals
var (
	coldStyle = lipgloss.NewStyle().Faint(true)
	warmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	hotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

// hotMicros is the threshold above which a line renders in the hot style;
// warmMicros likewise for the warm style.
const (
	warmMicros = 1_000
	hotMicros  = 10_000
)

// Annotator writes source listings with each line prefixed by its
// accumulated execution time.
type Annotator struct {
	dir       string
	highlight bool
	theme     string
	logger    log.Logger
}

// AnnotatorOption configures an [Annotator].
type AnnotatorOption func(*Annotator)

// WithSourceDir resolves report filenames relative to dir when reading
// source text. Absolute filenames are used as-is.
func WithSourceDir(dir string) AnnotatorOption {
	return func(a *Annotator) { a.dir = dir }
}

// WithHighlight enables syntax highlighting of the source text.
func WithHighlight(enable bool) AnnotatorOption {
	return func(a *Annotator) { a.highlight = enable }
}

// WithTheme sets the highlighting theme.
func WithTheme(theme string) AnnotatorOption {
	return func(a *Annotator) { a.theme = theme }
}

// WithLogger sets the logger used for per-file progress.
func WithLogger(l log.Logger) AnnotatorOption {
	return func(a *Annotator) { a.logger = l }
}

// NewAnnotator creates an Annotator.
func NewAnnotator(opts ...AnnotatorOption) *Annotator {
	a := &Annotator{theme: "monokai"}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Annotate writes the timing-annotated listing of one report file to w.
func (a *Annotator) Annotate(
	w io.Writer,
	report lineprof.Report,
	file string,
) error {
	lines, err := a.readSource(file)
	if err != nil {
		return err
	}

	a.logger.Debug("annotating file",
		slog.String("file", file),
		slog.Int("lines", len(lines)),
		slog.Uint64("total", report.Total(file)),
	)

	fmt.Fprintln(w, headStyle.Render(fmt.Sprintf(
		"%s  (%s total)", file, formatMicros(report.Total(file)),
	)))

	times := report[file]

	for i, text := range lines {
		line := i + 1

		var micros uint64
		if line < len(times) {
			micros = times[line]
		}

		fmt.Fprintf(w, "%s │ %s\n", gutter(micros), text)
	}

	return nil
}

// AnnotateAll writes listings for every file in the report, in lexical
// order. Files whose source cannot be read are skipped with a warning.
func (a *Annotator) AnnotateAll(w io.Writer, report lineprof.Report) error {
	for i, file := range report.Files() {
		if i > 0 {
			fmt.Fprintln(w)
		}

		if err := a.Annotate(w, report, file); err != nil {
			a.logger.Warn("skipping file", slog.Any("error", err))
		}
	}

	return nil
}

// readSource loads and splits the source text for file, applying syntax
// highlighting when enabled.
func (a *Annotator) readSource(file string) ([]string, error) {
	path := file
	if a.dir != "" && !filepath.IsAbs(file) {
		path = filepath.Join(a.dir, file)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrSource.Wrap(err).
			With(slog.String("path", path))
	}

	content := strings.TrimSuffix(string(data), "\n")

	if a.highlight {
		content = a.highlightSource(file, content)
	}

	return strings.Split(content, "\n"), nil
}

// highlightSource runs the whole file through chroma so multi-line
// constructs highlight correctly; the result is split per line afterward.
// On any failure the plain text is returned.
func (a *Annotator) highlightSource(file, content string) string {
	lexer := lexers.Match(file)
	if lexer == nil {
		return content
	}

	var buf bytes.Buffer
	if err := quick.Highlight(
		&buf, content, lexer.Config().Name, "terminal16m", a.theme,
	); err != nil {
		return content
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// gutter renders the fixed-width timing column for one line.
func gutter(micros uint64) string {
	cell := fmt.Sprintf("%10s", formatMicros(micros))

	switch {
	case micros >= hotMicros:
		return hotStyle.Render(cell)
	case micros >= warmMicros:
		return warmStyle.Render(cell)
	case micros > 0:
		return cell
	default:
		return coldStyle.Render(fmt.Sprintf("%10s", ""))
	}
}

// formatMicros renders a microsecond count as milliseconds with one decimal.
func formatMicros(micros uint64) string {
	return fmt.Sprintf("%.1fms", float64(micros)/1000.0)
}
