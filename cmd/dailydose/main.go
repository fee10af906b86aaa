// Package main is the dailydose command: the HTTP service plus a few
// commands for inspecting and editing the local store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dailydose/dailydose/internal/platform/config"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// options are the persistent flags shared by every command.
type options struct {
	profile   string
	configDir string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	root := &cobra.Command{
		Use:           "dailydose",
		Short:         "Daily quotes with favorites, offline cache and a daily reminder",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.profile, "profile", "p", profile,
		"configuration profile, loaded from <config-dir>/<profile>.yaml")
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", config.DefaultDir,
		"directory holding base.yaml and the profile files")

	root.AddCommand(
		newServeCmd(opts),
		newFavoritesCmd(opts),
		newCacheCmd(opts),
		newQOTDCmd(opts),
	)

	return root
}
