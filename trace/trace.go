package trace

import (
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/lineprof/lineprof"
)

// Predefined errors (sentinel values).
var (
	ErrDecode   = lineprof.NewError("trace is not valid YAML")
	ErrEvent    = lineprof.NewError("event needs a filename and a positive line")
	ErrOrder    = lineprof.NewError("event timestamps must be non-decreasing")
	ErrDetached = lineprof.NewError("player has no listener installed")
)

// Event is one recorded line notification: the host executed line Line of
// file File at timestamp At, in microseconds from the trace's origin.
type Event struct {
	File string `yaml:"file"`
	Line int    `yaml:"line"`
	At   uint64 `yaml:"at"`
}

// Trace is an ordered recording of line events from a single host run.
type Trace struct {
	Events []Event `yaml:"events"`
}

// Load decodes and validates a trace from r.
func Load(r io.Reader) (*Trace, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	if err := tr.validate(); err != nil {
		return nil, err
	}

	return &tr, nil
}

// LoadFile decodes and validates the trace stored at path.
func LoadFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).
			With(slog.String("path", path))
	}
	defer f.Close()

	return Load(f)
}

// validate rejects malformed events and timestamps that step backward.
func (t *Trace) validate() error {
	var last uint64

	for i, ev := range t.Events {
		if ev.File == "" || ev.Line < 1 {
			return ErrEvent.With(
				slog.Int("index", i),
				slog.String("file", ev.File),
				slog.Int("line", ev.Line),
			)
		}

		if ev.At < last {
			return ErrOrder.With(
				slog.Int("index", i),
				slog.Uint64("at", ev.At),
				slog.Uint64("previous", last),
			)
		}

		last = ev.At
	}

	return nil
}

// Span returns the elapsed microseconds between the first and last event.
func (t *Trace) Span() uint64 {
	if len(t.Events) < 2 {
		return 0
	}

	return t.Events[len(t.Events)-1].At - t.Events[0].At
}

// Files returns the distinct filenames referenced by the trace, in first-seen
// order.
func (t *Trace) Files() []string {
	seen := make(map[string]bool)

	var files []string

	for _, ev := range t.Events {
		if !seen[ev.File] {
			seen[ev.File] = true
			files = append(files, ev.File)
		}
	}

	return files
}
