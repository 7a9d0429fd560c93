package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/assertia/internal/model"
)

// Renderer writes reports as JSON, Markdown and a one-line summary
type Renderer struct {
	includeFooter bool
	out           io.Writer // summary destination
}

// NewRenderer creates a renderer printing summaries to stdout
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, out: os.Stdout}
}

// SetOutput redirects RenderSummary
func (r *Renderer) SetOutput(w io.Writer) {
	r.out = w
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Markdown formats the report
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Assertion report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- Source: `%s`\n", report.Source)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- Classified: %d", report.Summary.Total)
	if report.Summary.Failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", report.Summary.Failed)
	}
	b.WriteString("\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Attribute | Value | Count |\n|---|---|---|\n")
	writeCounts(&b, "Negation", report.Summary.Negation)
	writeCounts(&b, "Temporality", report.Summary.Temporality)
	writeCounts(&b, "Experiencer", report.Summary.Experiencer)
	b.WriteString("\n")

	if len(report.Results) > 0 {
		b.WriteString("## Mentions\n\n")
		b.WriteString("| Phrase | Negation | Temporality | Experiencer | Sentence |\n|---|---|---|---|---|\n")
		for _, res := range report.Results {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(res.Phrase), res.Negation, res.Temporality, res.Experiencer, cell(res.Sentence))
		}
		b.WriteString("\n")
	}

	if len(report.Terms) > 0 {
		b.WriteString("## Terms\n\n")
		b.WriteString("| # | Term | Negation | Temporality | Experiencer | Sentence |\n|---|---|---|---|---|---|\n")
		for _, t := range report.Terms {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
				t.SentenceIndex+1, cell(t.Term), t.Negation, t.Temporality, t.Experiencer, cell(t.Sentence))
		}
		b.WriteString("\n")
	}

	if len(report.Errors) > 0 {
		b.WriteString("## Errors\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Rule-based classification from trigger phrase windows. " +
			"Results are heuristics and need clinical review._\n")
	}

	return b.String()
}

// RenderSummary prints a one-line summary
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Summary
	fmt.Fprintf(r.out, "%s: %d classified, %d failed | negated %d, possible %d | historical %d, hypothetical %d | other %d\n",
		report.Subject,
		s.Total,
		s.Failed,
		s.Negation[model.NegationNegated.String()],
		s.Negation[model.NegationPossible.String()],
		s.Temporality[model.TemporalityHistorical.String()],
		s.Temporality[model.TemporalityHypothetical.String()],
		s.Experiencer[model.ExperiencerOther.String()],
	)
}

func writeCounts(b *strings.Builder, attribute string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %s | %d |\n", attribute, k, counts[k])
	}
}

// cell makes text safe for a Markdown table cell
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
