package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/assertia/internal/classify"
	"github.com/ppiankov/assertia/internal/extract"
	"github.com/ppiankov/assertia/internal/model"
	"github.com/ppiankov/assertia/internal/worker"
	"go.uber.org/zap"
)

// Pipeline turns input files into reports
type Pipeline struct {
	classifier classify.Interface
	renderer   *Renderer
	logger     *zap.Logger
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, classifier classify.Interface, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		classifier: classifier,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		logger:     logger,
		config:     cfg,
	}
}

// Renderer returns the renderer used by RenderReport
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// ScanDocument reads a .txt or .html file and reports every hit of terms
func (p *Pipeline) ScanDocument(ctx context.Context, path string, terms []string, opts ...extract.FinderOption) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = extract.VisibleText(text)
		if err != nil {
			return nil, fmt.Errorf("extract text: %w", err)
		}
	}

	finder, err := extract.NewTermFinder(p.classifier, terms, opts...)
	if err != nil {
		return nil, err
	}

	found, err := finder.Find(text)
	if err != nil {
		return nil, fmt.Errorf("find terms: %w", err)
	}

	p.logger.Debug("document scanned",
		zap.String("path", path),
		zap.Strings("terms", finder.Terms()),
		zap.Int("hits", len(found)))

	summary := model.NewSummary()
	for _, term := range found {
		summary.Add(term.Negation, term.Temporality, term.Experiencer)
	}

	return &model.Report{
		Subject:     model.SubjectFromPath(path),
		Source:      path,
		GeneratedAt: time.Now().UTC(),
		Terms:       found,
		Summary:     summary,
	}, nil
}

// RunBatch classifies every mention of the given TSV files with the
// configured concurrency and rate limits. Per-file overrides match on the
// cleaned path.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string) (*model.Report, error) {
	processor := worker.NewBatchProcessor(
		p.classifier,
		p.config.Concurrency.Workers,
		p.config.RateLimiting.PerSecond,
		p.config.RateLimiting.Burst,
	)
	for _, src := range p.config.RateLimiting.Sources {
		processor.SetSourceRate(filepath.Clean(src.Path), src.PerSecond, src.Burst)
		p.logger.Debug("source rate",
			zap.String("path", src.Path),
			zap.Float64("per_second", src.PerSecond))
	}

	cleaned := make([]string, len(paths))
	for i, path := range paths {
		cleaned[i] = filepath.Clean(path)
	}
	paths = cleaned

	results, err := processor.ProcessFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	source := strings.Join(paths, ", ")
	report := p.BuildBatchReport(source, results)
	if len(paths) == 1 {
		report.Subject = model.SubjectFromPath(paths[0])
	}

	p.logger.Debug("batch classified",
		zap.Int("mentions", report.Summary.Total+report.Summary.Failed),
		zap.Int("failed", report.Summary.Failed))

	return report, nil
}

// BuildBatchReport collects batch results into a report, keeping input order
func (p *Pipeline) BuildBatchReport(source string, results []worker.MentionResult) *model.Report {
	report := &model.Report{
		Subject:     "batch",
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Summary:     model.NewSummary(),
	}

	for _, r := range results {
		if r.Error != nil {
			report.Summary.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", r.Mention.Phrase, r.Error))
			continue
		}
		report.Results = append(report.Results, r.Result)
		report.Summary.Add(r.Result.Negation, r.Result.Temporality, r.Result.Experiencer)
	}

	return report
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Info("wrote JSON", zap.String("path", jsonPath))
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Info("wrote Markdown", zap.String("path", mdPath))
	}

	p.renderer.RenderSummary(report)

	return nil
}
