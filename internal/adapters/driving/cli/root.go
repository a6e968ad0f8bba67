// Package cli provides the cobra command surface for briefdesk.
// Commands are thin: they resolve flags, call the driving ports, and
// print the status reporter's outcome before exiting.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/briefdesk-cli/internal/core/domain"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driving"
	"github.com/custodia-labs/briefdesk-cli/internal/logger"
)

// Services bundles the driving ports the commands operate on.
type Services struct {
	Catalog  driving.CatalogService
	Stores   map[domain.Kind]driving.ContentService
	Uploads  driving.UploadService
	Reporter driving.StatusReporter
	Config   driven.ConfigStore

	// Flush blocks until all dispatched remote writes finish. The
	// CLI is one-shot; exiting before the dispatches land would drop
	// them silently.
	Flush func()
}

var (
	services Services
	verbose  bool
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "briefdesk",
	Short: "Topic briefing console for the campaign backend",
	Long: `briefdesk manages the topic catalog, Q&A entries, criticisms,
documents, and member records stored in the remote automation backend.

All mutations apply locally first and synchronise in the background;
failures surface as status messages, never as rolled-back state.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the wired services before Execute.
func SetServices(s Services) {
	services = s
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// flush waits for outstanding dispatches, if wired.
func flush() {
	if services.Flush != nil {
		services.Flush()
	}
}

// printStatus prints the reporter's current message, if any.
func printStatus(cmd *cobra.Command) {
	if services.Reporter == nil {
		return
	}
	if msg := services.Reporter.Current(); msg != "" {
		cmd.Println(msg)
	}
}

// contentStore resolves the store for a kind.
func contentStore(kind domain.Kind) (driving.ContentService, error) {
	store, ok := services.Stores[kind]
	if !ok || store == nil {
		return nil, domain.ErrUnsupportedKind
	}
	return store, nil
}
