// Package cmd holds the concert-pass command line.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"concert-pass/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "concert-pass",
		Short:         "Concert Pass storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newHealthcheckCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port != "" {
				cfg.Port = port
			}
			return Start(cfg)
		},
	}
	serve.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")
	return serve
}

// newHealthcheckCmd asks a running storefront for its health, for container
// health checks.
func newHealthcheckCmd() *cobra.Command {
	var url string
	healthcheck := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check that a running storefront and its stores answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = fmt.Sprintf("http://localhost:%s/healthz", config.LoadConfig().Port)
			}
			return checkHealth(cmd.Context(), url)
		},
	}
	healthcheck.Flags().StringVar(&url, "url", "", "health endpoint, defaults to the local server")
	return healthcheck
}

func checkHealth(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck: %s returned %d", url, resp.StatusCode)
	}
	return nil
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
