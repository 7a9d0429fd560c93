package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/assertia/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	concurrency  int
	ratePerSec   float64
	rateBurst    int
	outJSON      string
	outMD        string
	noCache      bool
	cacheDir     string
	noFooter     bool
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Classify every mention of one or more TSV files in parallel",
	Long: `Batch classifies mentions read from tab-separated files, one
"sentence<TAB>phrase" row per line. Empty lines and lines starting with '#'
are skipped; repeated rows are classified once.

Results keep the input order. Rows whose phrase does not occur in the
sentence are reported as errors and do not stop the batch.

Example:
  assertia batch mentions.tsv
  assertia batch a.tsv b.tsv --concurrency 8 --json report.json --md report.md
  assertia batch mentions.tsv --cache-dir ~/.assertia/cache`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: config, then CPU count)")
	batchCmd.Flags().Float64Var(&ratePerSec, "rate", 0, "max mentions per second per input file (0 = unlimited)")
	batchCmd.Flags().IntVar(&rateBurst, "burst", 0, "rate limiter burst size (default: config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	addReportFlags(batchCmd)
}

// addReportFlags registers the output and cache flags shared by batch and find
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	cmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist cached results in this directory")
}

// applyReportFlags copies the shared flags into the loaded configuration
func applyReportFlags() {
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	applyReportFlags()
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if cmd.Flags().Changed("rate") {
		cfg.RateLimiting.PerSecond = ratePerSec
	}
	if cmd.Flags().Changed("burst") {
		cfg.RateLimiting.Burst = rateBurst
	}

	logger.Debug("batch starting",
		zap.Strings("files", args),
		zap.Int("workers", cfg.Concurrency.Workers),
		zap.Float64("rate", cfg.RateLimiting.PerSecond),
		zap.Bool("cache", cfg.Cache.Enabled))

	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, classifier, logger)
	p.Renderer().SetOutput(cmd.OutOrStdout())
	report, err := p.RunBatch(ctx, args)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	for _, e := range report.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", e)
	}

	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
