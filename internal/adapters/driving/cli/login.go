package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/briefdesk-cli/internal/core/ports/driven"
)

var loginBaseURL string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure the backend URL and session token",
	Long: `Store the webhook backend base URL and the session token used to
authorise requests. The token is read from the terminal without echo.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&loginBaseURL, "url", "", "backend base URL")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if services.Config == nil {
		return errors.New("config store not configured")
	}

	baseURL := loginBaseURL
	if baseURL == "" {
		baseURL = services.Config.GetString(driven.ConfigKeyBaseURL)
	}
	if baseURL == "" {
		cmd.Print("Backend base URL: ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		baseURL = strings.TrimSpace(input)
	}
	if baseURL == "" {
		return errors.New("a backend base URL is required")
	}

	cmd.Print("Session token: ")
	token := readPassword()
	cmd.Println()
	if token == "" {
		return errors.New("a session token is required")
	}

	services.Config.Set(driven.ConfigKeyBaseURL, baseURL)
	services.Config.Set(driven.ConfigKeyToken, token)
	if err := services.Config.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Printf("Logged in against %s.\n", baseURL)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if services.Config == nil {
		return errors.New("config store not configured")
	}

	services.Config.Set(driven.ConfigKeyToken, "")
	if err := services.Config.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Println("Logged out.")
	return nil
}

func readPassword() string {
	// Try to read the token without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
