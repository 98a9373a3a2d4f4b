package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"carerag/internal/domain"
	"carerag/internal/presenter"
)

var (
	askText     string
	askDetail   string
	askAudience string
	askFilter   bool
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a caregiving question",
	Long: `Retrieve evidence from the knowledge base and compose a structured answer.

Examples:
  carerag ask -q "How to prevent bedsores?"
  carerag ask -q "diabetes diet" --detail brief --audience professional
  carerag ask -q "prevent falls" --filter --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askText, "query", "q", "", "question to answer (required)")
	askCmd.Flags().StringVar(&askDetail, "detail", "standard", "answer length: brief, standard or detailed")
	askCmd.Flags().StringVar(&askAudience, "audience", "family", "reader: family or professional")
	askCmd.Flags().BoolVar(&askFilter, "filter", false, "keep only the sections relevant to the reader")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	opts, err := domain.ParseOptions(askDetail, askAudience)
	if err != nil {
		return err
	}

	a, err := newApp(GetConfig(), GetRootDir(), GetLogger())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// A failed load leaves the index empty; the answer is still composed.
	_, _ = a.loader.Load(ctx, nil)

	answer := a.ask.Ask(ctx, domain.Query{Text: askText, Options: opts})

	text, evidence := answer.Text, ""
	if askFilter {
		var main string
		main, evidence = presenter.SplitEvidence(answer.Text)
		text = presenter.FilterSections(main, opts, askText)
	}

	if askJSON {
		output, _ := json.MarshalIndent(map[string]interface{}{
			"answer":   text,
			"evidence": evidence,
			"source":   answer.Source,
			"hits":     answer.Hits,
		}, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(text)
	if answer.Source == domain.SourceRuleBased && a.generator != nil {
		color.Yellow("\n(generative backend unavailable; showing rule-based answer)")
	}
	if evidence != "" {
		fmt.Println()
		fmt.Println(evidence)
	}
	return nil
}
