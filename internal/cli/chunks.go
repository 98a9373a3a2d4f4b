package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var chunksJSON bool

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Load the knowledge base and list its chunks",
	Long: `Read every knowledge source, split it into heading-delimited chunks and
list them in index order.

Examples:
  carerag chunks
  carerag chunks --json`,
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
	chunksCmd.Flags().BoolVar(&chunksJSON, "json", false, "output as JSON")
}

func runChunks(cmd *cobra.Command, args []string) error {
	a, err := newApp(GetConfig(), GetRootDir(), GetLogger())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Loading[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Describe(fmt.Sprintf("[cyan]Loading[reset] %s", filepath.Base(currentFile)))
		_ = bar.Set(processed)
	}

	if !chunksJSON {
		fmt.Printf("Scanning %s...\n", a.knowledgeRoot)
	} else {
		progressCallback = nil
	}

	result, err := a.loader.Load(ctx, progressCallback)
	if err != nil {
		return fmt.Errorf("loading failed: %w", err)
	}

	chunks := a.index.Chunks()
	if chunksJSON {
		output, _ := json.MarshalIndent(chunks, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for i, c := range chunks {
		fmt.Printf("[%d] %s (%d tokens)\n", i, c.Title, len(c.Tokens))
	}

	color.Green("\nLoading complete:")
	fmt.Printf("  Files loaded:   %d\n", len(result.Files))
	fmt.Printf("  Chunks created: %d\n", result.Chunks)
	fmt.Printf("  Duration:       %s\n", formatDuration(result.Duration))
	return nil
}
