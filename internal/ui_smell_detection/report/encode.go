package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Document is the serialized batch output: one record list per unit.
type Document struct {
	Reports  []UnitDocument `json:"reports" yaml:"reports"`
	ExitCode int            `json:"exit_code" yaml:"exit_code"`
}

type UnitDocument struct {
	Unit        string                `json:"unit" yaml:"unit"`
	Findings    []domain.Record       `json:"findings" yaml:"findings"`
	Summary     map[domain.RuleID]int `json:"summary" yaml:"summary"`
	Diagnostics []domain.Diagnostic   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func NewDocument(reports []domain.Report, exitCode int) Document {
	doc := Document{Reports: make([]UnitDocument, 0, len(reports)), ExitCode: exitCode}
	for i := range reports {
		r := &reports[i]
		doc.Reports = append(doc.Reports, UnitDocument{
			Unit:        r.Unit,
			Findings:    r.Records(),
			Summary:     r.Summary,
			Diagnostics: r.Diagnostics,
		})
	}
	return doc
}

func Write(w io.Writer, f Format, reports []domain.Report, exitCode int) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, NewDocument(reports, exitCode))
	case FormatYAML:
		return WriteYAML(w, NewDocument(reports, exitCode))
	default:
		return WriteText(w, reports)
	}
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText prints one line per finding, compiler style.
func WriteText(w io.Writer, reports []domain.Report) error {
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s: %s: %s\n", r.Unit, d.Kind, d.Message); err != nil {
				return err
			}
		}
		for _, f := range r.Findings {
			lines := fmt.Sprintf("%d", f.StartLine)
			if f.EndLine > f.StartLine {
				lines = fmt.Sprintf("%d-%d", f.StartLine, f.EndLine)
			}
			if _, err := fmt.Fprintf(w, "%s:%s: %s [%s] %s\n", f.File, lines, f.Severity, f.RuleID, f.Rationale); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d finding(s) in %d unit(s)\n", Total(reports), len(reports))
	return err
}
