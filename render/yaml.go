package render

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/lineprof/lineprof"
)

// fileTimes is the YAML shape of one report file: only lines with recorded
// time appear, so the trailing allocation slack never reaches output.
type fileTimes struct {
	File  string      `yaml:"file"`
	Total uint64      `yaml:"total"`
	Lines []lineEntry `yaml:"lines"`
}

type lineEntry struct {
	Line   int    `yaml:"line"`
	Micros uint64 `yaml:"usec"`
}

// WriteYAML writes the report to w as a YAML document with files in lexical
// order and lines in ascending order, stable across runs.
func WriteYAML(w io.Writer, report lineprof.Report) error {
	files := make([]fileTimes, 0, len(report))

	for _, name := range report.Files() {
		ft := fileTimes{
			File:  name,
			Total: report.Total(name),
			Lines: []lineEntry{},
		}

		for line, micros := range report[name] {
			if micros != 0 {
				ft.Lines = append(ft.Lines, lineEntry{Line: line, Micros: micros})
			}
		}

		files = append(files, ft)
	}

	return yaml.NewEncoder(w).Encode(map[string][]fileTimes{"files": files})
}
