package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	classifyJSON     bool
	classifyFeatures bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <sentence> <phrase>",
	Short: "Classify one phrase mentioned in a sentence",
	Long: `Classify reports the negation, temporality and experiencer of a phrase
as it is mentioned in a sentence.

Example:
  assertia classify "Patient denies chest pain." "chest pain"
  assertia classify "Mother has breast cancer." "breast cancer" --json
  assertia classify "History of diabetes in 2010." "diabetes" --features`,
	Args: cobra.ExactArgs(2),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "print the full result as JSON")
	classifyCmd.Flags().BoolVar(&classifyFeatures, "features", false, "list the triggers that fired")
}

func runClassify(cmd *cobra.Command, args []string) error {
	classifier, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	result, err := classifier.Classify(args[0], args[1])
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	out := cmd.OutOrStdout()
	if classifyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, result.String())
	if classifyFeatures {
		for _, f := range result.Features {
			fmt.Fprintf(out, "  %-12s %-13s %q distance=%d possible=%t\n",
				f.Category, f.Role, f.MatchedPhrase, f.Distance, f.Possible)
		}
	}
	return nil
}
