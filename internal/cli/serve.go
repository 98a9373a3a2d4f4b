package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carerag/internal/adapter/watcher"
	"carerag/internal/server"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the HTTP API. The knowledge base loads in the background, so
questions asked before it finishes get answers without evidence.

Examples:
  carerag serve
  carerag serve --port 9000 --watch`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload when knowledge files change")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := GetLogger()

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	a, err := newApp(cfg, GetRootDir(), log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.loader.LoadAsync(ctx)

	if serveWatch || cfg.Knowledge.Watch {
		w := watcher.New(a.knowledgeRoot, a.walker.Matches, func() {
			_, _ = a.loader.Load(ctx, nil)
		}, watcher.WithDebounce(cfg.Knowledge.Debounce()), watcher.WithLogger(log.Named("watcher")))
		if err := w.Start(ctx); err != nil {
			log.Warn("knowledge watcher not started", zap.String("root", a.knowledgeRoot), zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	if a.generator != nil {
		log.Info("generative backend configured", zap.String("model", a.generator.ModelName()))
	}

	srv := server.NewServer(a.ask, a.retrieve, a.loader, a.index, &cfg.Server, log)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
	case err := <-errCh:
		return err
	}

	log.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}
