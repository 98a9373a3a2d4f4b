package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"carerag/internal/usecase"
)

var (
	retrieveText string
	retrieveTopK int
	retrieveJSON bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Show the knowledge chunks matching a query",
	Long: `Score knowledge chunks against a query and print the best matches.

Examples:
  carerag retrieve -q "pressure ulcer"
  carerag retrieve -q "blood sugar" -k 3 --json`,
	RunE: runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
	retrieveCmd.Flags().StringVarP(&retrieveText, "query", "q", "", "search query (required)")
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 0, "number of results (default from config)")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output as JSON")
	retrieveCmd.MarkFlagRequired("query")
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	a, err := newApp(cfg, GetRootDir(), GetLogger())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := a.loader.Load(ctx, nil); err != nil {
		return fmt.Errorf("failed to load knowledge: %w", err)
	}

	topK := cfg.Retrieve.TopK
	if retrieveTopK > 0 {
		topK = retrieveTopK
	}

	hits := a.retrieve.RetrieveTopK(retrieveText, topK)

	if retrieveJSON {
		output, _ := json.MarshalIndent(hits, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(hits) == 0 {
		color.Yellow("No results found.")
		return nil
	}
	fmt.Printf("Found %d results for: %s\n\n", len(hits), retrieveText)
	header := color.New(color.FgCyan).PrintfFunc()
	for i, h := range hits {
		header("--- [%d] %s (chunk %d, score: %.3f) ---\n", i+1, h.Title, h.Index, h.Score)
		fmt.Println(usecase.Truncate(h.Text, 500))
		fmt.Println()
	}
	return nil
}
