package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/briefdesk-cli/internal/adapters/driven/dropdir"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch <topic>",
	Short: "Watch the drop directory and stage new files",
	Long: `Watch a local directory and stage every file dropped into it for
the given topic. Staged files still need an explicit commit to reach
the backend. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "directory to watch (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if services.Uploads == nil {
		return errors.New("upload service not configured")
	}

	dir := watchDir
	if dir == "" && services.Config != nil {
		dir = services.Config.GetString(driven.ConfigKeyDropDir)
	}
	if dir == "" {
		return errors.New("no drop directory configured, pass --dir or set staging.drop_dir")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s, staging into %s. Press Ctrl-C to stop.\n", dir, args[0])

	watcher := dropdir.New(dir, services.Uploads)
	if err := watcher.Run(ctx, args[0]); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
