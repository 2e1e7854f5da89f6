package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/preview"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the static directory to preview patched pages",
	Long:  `Starts a local HTTP server over the static directory so the sidebar can be checked in a browser. /api/status reports which pages are patched.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("dir", "", "static directory to serve (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.StaticDir); err != nil {
		return fmt.Errorf("static directory not found: %s", cfg.StaticDir)
	}

	port := cfg.Preview.Port
	if p, _ := cmd.Flags().GetInt("port"); p > 0 {
		port = p
	}
	allowAll := cfg.Preview.AllowAll
	if a, _ := cmd.Flags().GetBool("allow-all"); a {
		allowAll = true
	}

	srv := preview.New(preview.Config{
		Port:      port,
		StaticDir: cfg.StaticDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		AllowAll:  allowAll,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down preview server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving %s at http://localhost:%d/\n", cfg.StaticDir, port)
	fmt.Fprintln(cmd.ErrOrStderr(), "Press Ctrl+C to stop.")

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving preview: %w", err)
	}
	return nil
}
