package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var uploadTarget string

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Manage staged document uploads",
	Long: `Stage local files, inspect the staging queue, and commit staged
entries to the backend. Staging never touches the network; a staged
file only uploads when committed.`,
	RunE: runUploadsList,
}

var uploadsStageCmd = &cobra.Command{
	Use:   "stage <path>...",
	Short: "Stage local files for upload",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUploadsStage,
}

var uploadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staged uploads",
	RunE:  runUploadsList,
}

var uploadsUnstageCmd = &cobra.Command{
	Use:   "unstage <id>",
	Short: "Discard a staged upload",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadsUnstage,
}

var uploadsCommitCmd = &cobra.Command{
	Use:   "commit <id>",
	Short: "Upload a staged entry to the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadsCommit,
}

func init() {
	uploadsStageCmd.Flags().StringVarP(&uploadTarget, "topic", "t", "", "topic or category the file belongs to")

	uploadsCmd.AddCommand(uploadsStageCmd)
	uploadsCmd.AddCommand(uploadsListCmd)
	uploadsCmd.AddCommand(uploadsUnstageCmd)
	uploadsCmd.AddCommand(uploadsCommitCmd)
	rootCmd.AddCommand(uploadsCmd)
}

func runUploadsStage(cmd *cobra.Command, args []string) error {
	if services.Uploads == nil {
		return errors.New("upload service not configured")
	}
	if uploadTarget == "" {
		return errors.New("--topic is required")
	}

	// Each file stages independently; one rejection does not stop
	// the rest.
	var failed int
	for _, path := range args {
		entry, err := services.Uploads.Stage(path, uploadTarget)
		if err != nil {
			failed++
			cmd.Printf("Skipped %s: %v\n", path, err)
			continue
		}
		cmd.Printf("Staged %s as %s (%d bytes) for %s.\n", entry.DisplayName, entry.ID, entry.SizeBytes, entry.Target)
	}
	if failed == len(args) {
		return errors.New("no files staged")
	}
	printStatus(cmd)
	return nil
}

func runUploadsList(cmd *cobra.Command, _ []string) error {
	if services.Uploads == nil {
		return errors.New("upload service not configured")
	}

	entries := services.Uploads.List()
	if len(entries) == 0 {
		cmd.Println("No staged uploads.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("  %-12s %-30s %8d bytes  -> %s\n", entry.ID, entry.DisplayName, entry.SizeBytes, entry.Target)
	}
	return nil
}

func runUploadsUnstage(cmd *cobra.Command, args []string) error {
	if services.Uploads == nil {
		return errors.New("upload service not configured")
	}

	if err := services.Uploads.Unstage(args[0]); err != nil {
		return fmt.Errorf("unstage %s: %w", args[0], err)
	}

	cmd.Printf("Unstaged %s.\n", args[0])
	return nil
}

func runUploadsCommit(cmd *cobra.Command, args []string) error {
	if services.Uploads == nil {
		return errors.New("upload service not configured")
	}

	if err := services.Uploads.Commit(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("commit %s: %w", args[0], err)
	}
	flush()

	cmd.Printf("Uploaded %s.\n", args[0])
	printStatus(cmd)
	return nil
}
