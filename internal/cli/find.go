package cli

import (
	"context"
	"fmt"

	"github.com/ppiankov/assertia/internal/extract"
	"github.com/ppiankov/assertia/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	findTerms       []string
	findExcluded    []string
	findNegation    []string
	findTemporality []string
	findExperiencer []string
	findList        bool
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <file>",
	Short: "Find terms in a .txt or .html document and classify each mention",
	Long: `Find splits a document into sentences, locates every whole-word,
case-insensitive occurrence of the given terms and classifies it.

Sentences mentioning an excluded term are skipped. The attribute filters
keep only mentions with the listed values.

Example:
  assertia find note.txt --term "chest pain" --term fever
  assertia find note.html --term diabetes --negation affirmed --experiencer patient
  assertia find note.txt --term cough --exclude "family history" --md cough.md`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringArrayVarP(&findTerms, "term", "t", nil, "term to search for (repeatable)")
	findCmd.Flags().StringArrayVar(&findExcluded, "exclude", nil, "skip sentences containing this term (repeatable)")
	findCmd.Flags().StringSliceVar(&findNegation, "negation", nil, "keep only these values: affirmed, negated, possible")
	findCmd.Flags().StringSliceVar(&findTemporality, "temporality", nil, "keep only these values: recent, historical, hypothetical")
	findCmd.Flags().StringSliceVar(&findExperiencer, "experiencer", nil, "keep only these values: patient, other")
	findCmd.Flags().BoolVar(&findList, "list", false, "print every hit to stdout")
	_ = findCmd.MarkFlagRequired("term")
	addReportFlags(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	applyReportFlags()

	filters, err := extract.ParseFilters(findNegation, findTemporality, findExperiencer)
	if err != nil {
		return err
	}

	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, classifier, logger)
	p.Renderer().SetOutput(cmd.OutOrStdout())
	report, err := p.ScanDocument(context.Background(), args[0], findTerms,
		extract.WithExcluded(findExcluded...),
		extract.WithFilters(filters),
	)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	if findList {
		out := cmd.OutOrStdout()
		for _, t := range report.Terms {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\t%s\n",
				t.SentenceIndex+1, t.Term, t.Negation, t.Temporality, t.Experiencer, t.Sentence)
		}
	}

	if err := p.RenderReport(report, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
