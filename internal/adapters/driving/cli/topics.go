package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Manage the topic catalog",
	Long: `List, add, and remove topics.

Topics group every other content kind; removing a topic also clears
the local collections loaded under it.`,
	RunE: runTopicsList,
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics",
	RunE:  runTopicsList,
}

var topicsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsAdd,
}

var topicsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsRemove,
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsAddCmd)
	topicsCmd.AddCommand(topicsRemoveCmd)
	rootCmd.AddCommand(topicsCmd)
}

func runTopicsList(cmd *cobra.Command, _ []string) error {
	if services.Catalog == nil {
		return errors.New("catalog service not configured")
	}

	topics := services.Catalog.Load(cmd.Context())
	if len(topics) == 0 {
		cmd.Println("No topics.")
		printStatus(cmd)
		return nil
	}

	for _, topic := range topics {
		if topic.Tag != "" {
			cmd.Printf("  %s [%s]\n", topic.Name, topic.Tag)
		} else {
			cmd.Printf("  %s\n", topic.Name)
		}
	}
	return nil
}

func runTopicsAdd(cmd *cobra.Command, args []string) error {
	if services.Catalog == nil {
		return errors.New("catalog service not configured")
	}

	topic, err := services.Catalog.Add(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("add topic: %w", err)
	}
	flush()

	cmd.Printf("Added topic %s.\n", topic.Name)
	printStatus(cmd)
	return nil
}

func runTopicsRemove(cmd *cobra.Command, args []string) error {
	if services.Catalog == nil {
		return errors.New("catalog service not configured")
	}

	// Populate the catalog so the removal has something to match.
	services.Catalog.Load(cmd.Context())

	if err := services.Catalog.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove topic: %w", err)
	}
	flush()

	cmd.Printf("Removed topic %s.\n", args[0])
	printStatus(cmd)
	return nil
}
