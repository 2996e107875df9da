package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/lineprof/lineprof"
)

func testReport() lineprof.Report {
	return lineprof.Report{
		"app.rb": {0, 1500, 1500, 0, 12_000, 0, 0},
		"lib.rb": {0, 0, 500},
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer

	if err := Summary(&buf, testReport(), 2); err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"app.rb", "12.0ms", "4"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	// Only the top 2 lines requested: the 0.5ms line must be cut.
	if strings.Contains(out, "lib.rb") {
		t.Errorf("summary includes line beyond top-2 cutoff:\n%s", out)
	}
}

func TestTotals(t *testing.T) {
	var buf bytes.Buffer

	if err := Totals(&buf, testReport()); err != nil {
		t.Fatalf("Totals failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"app.rb", "15.0ms", "lib.rb", "0.5ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("totals missing %q:\n%s", want, out)
		}
	}
}

func TestAnnotate(t *testing.T) {
	dir := t.TempDir()

	source := "def slow\n  work\nend\n"
	if err := os.WriteFile(
		filepath.Join(dir, "app.rb"), []byte(source), 0o644,
	); err != nil {
		t.Fatal(err)
	}

	report := lineprof.Report{"app.rb": {0, 0, 2500, 0}}

	var buf bytes.Buffer

	a := NewAnnotator(WithSourceDir(dir))
	if err := a.Annotate(&buf, report, "app.rb"); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	out := buf.String()

	if got := strings.Count(out, "│"); got != 3 {
		t.Errorf("expected 3 annotated lines, got %d:\n%s", got, out)
	}

	if !strings.Contains(out, "2.5ms") {
		t.Errorf("missing gutter time for line 2:\n%s", out)
	}

	if !strings.Contains(out, "work") {
		t.Errorf("missing source text:\n%s", out)
	}
}

func TestAnnotate_MissingSource(t *testing.T) {
	a := NewAnnotator(WithSourceDir(t.TempDir()))

	err := a.Annotate(
		&bytes.Buffer{},
		lineprof.Report{"ghost.rb": {}},
		"ghost.rb",
	)
	if !errors.Is(err, ErrSource) {
		t.Errorf("expected ErrSource, got %v", err)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteYAML(&buf, testReport()); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{
		"file: app.rb",
		"total: 15000",
		"usec: 12000",
		"file: lib.rb",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}

	// Slack entries with zero time must not be emitted.
	if strings.Contains(out, "usec: 0") {
		t.Errorf("yaml includes zero-time lines:\n%s", out)
	}
}
