package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carerag/config"
	"carerag/internal/logging"
)

var (
	cfgFile  string
	cfg      *config.Config
	rootDir  string
	logLevel string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "carerag",
	Short: "Caregiving Q&A over a local markdown knowledge base",
	Long: `carerag answers home-care questions by retrieving passages from local
markdown knowledge files and composing a structured answer tailored to the
reader. When a generative backend is configured and reachable it writes the
answer instead; otherwise a rule-based template is used.

Example usage:
  carerag ask -q "How to prevent bedsores?"          # Structured answer
  carerag ask -q "diabetes diet" --detail detailed   # Longer answer
  carerag retrieve -q "fall prevention" -k 3         # Raw retrieval hits
  carerag serve                                      # HTTP API`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		// API keys may live in a .env file next to the config.
		_ = godotenv.Load()

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if logLevel != "" {
			level = logLevel
		}
		logger, err = logging.NewLogger(level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./carerag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "project directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
