package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/eykd/chapterlint/internal/domain"
)

// writeJSON encodes v as JSON to w, handling I/O errors at the boundary.
func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\":%q}\n", err.Error())
	}
}

// recordJSON is the JSON form of a single report record.
type recordJSON struct {
	Severity domain.Severity `json:"severity"`
	Kind     domain.Kind     `json:"kind"`
	Message  string          `json:"message"`
	Path     string          `json:"path"`
}

// validateJSON is the JSON output structure for the validate command.
type validateJSON struct {
	Chapter  string       `json:"chapter"`
	Root     string       `json:"root"`
	Valid    bool         `json:"valid"`
	Passed   []recordJSON `json:"passed"`
	Warnings []recordJSON `json:"warnings"`
	Errors   []recordJSON `json:"errors"`
	Summary  struct {
		Passed   int `json:"passed"`
		Warnings int `json:"warnings"`
		Errors   int `json:"errors"`
	} `json:"summary"`
}

func newValidateJSON(id, root string, res *domain.Result) *validateJSON {
	out := &validateJSON{
		Chapter:  id,
		Root:     root,
		Valid:    res.IsValid(),
		Passed:   convertRecords(res.Passed),
		Warnings: convertRecords(res.Warnings),
		Errors:   convertRecords(res.Errors),
	}
	out.Summary.Passed = len(res.Passed)
	out.Summary.Warnings = len(res.Warnings)
	out.Summary.Errors = len(res.Errors)
	return out
}

// convertRecords never returns nil so that empty lists encode as [].
func convertRecords(records []domain.Record) []recordJSON {
	out := make([]recordJSON, len(records))
	for i, r := range records {
		out[i] = recordJSON{Severity: r.Severity, Kind: r.Kind, Message: r.Message, Path: r.Path}
	}
	return out
}

// reportRenderer writes a validation report as text: passes and warnings
// to out, errors to errOut, one record per line.
type reportRenderer struct {
	out, errOut io.Writer
	styles      map[domain.Severity]*lipgloss.Style
}

func newReportRenderer(out, errOut io.Writer, noColor bool) *reportRenderer {
	r := &reportRenderer{out: out, errOut: errOut, styles: map[domain.Severity]*lipgloss.Style{}}
	if noColor {
		return r
	}
	colors := map[domain.Severity]lipgloss.Color{
		domain.SeverityPass:    lipgloss.Color("2"),
		domain.SeverityWarning: lipgloss.Color("3"),
		domain.SeverityError:   lipgloss.Color("1"),
	}
	for sev, color := range colors {
		w := out
		if sev == domain.SeverityError {
			w = errOut
		}
		if !isTerminal(w) {
			continue
		}
		style := lipgloss.NewRenderer(w).NewStyle().Foreground(color).Bold(true)
		r.styles[sev] = &style
	}
	return r
}

// Render writes all passes, then all warnings, then all errors.
func (r *reportRenderer) Render(res *domain.Result) {
	for _, rec := range res.Passed {
		r.line(r.out, rec)
	}
	for _, rec := range res.Warnings {
		r.line(r.out, rec)
	}
	for _, rec := range res.Errors {
		r.line(r.errOut, rec)
	}
}

func (r *reportRenderer) line(w io.Writer, rec domain.Record) {
	tag := rec.Severity.Tag()
	if style, ok := r.styles[rec.Severity]; ok {
		tag = style.Render(tag)
	}
	fmt.Fprintln(w, tag+" "+rec.Message)
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
