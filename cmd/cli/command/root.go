package command

// root.go defines the root command for the mediaminder CLI.
// set up the global flags here.

import (
	"fmt"
	"os"

	"mediaminder/cmd/cli/authentication"
	"mediaminder/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var apiURL string // Global flag for API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediaminder",
	Short: "mediaminder - track the movies, series and books you follow",
	Long: `mediaminder is a command line client for the mediaminder API. Use it to:
- Register and log in to your account
- Keep a personal list of movies, series and books with a status, rating and review
- Browse genres
- Manage your profile

Use "mediaminder command -h" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(genreCmd)
	rootCmd.AddCommand(profileCmd)
}

// GetAuthenticatedClient returns a client carrying the token saved by "auth login".
// The server URL saved at login is used unless --api is given.
func GetAuthenticatedClient(cmd *cobra.Command) (*client.HTTPClient, error) {
	creds, err := authentication.GetCredentials()
	if err != nil {
		return nil, err
	}

	url := apiURL
	if !cmd.Flags().Changed("api") && creds.APIURL != "" {
		url = creds.APIURL
	}

	httpClient := client.NewHTTPClient(url)
	httpClient.SetToken(creds.Token)
	return httpClient, nil
}

// wrapAuthError turns a 401 from the server into a hint to log in again.
func wrapAuthError(err error) error {
	if client.StatusCode(err) == 401 {
		return fmt.Errorf("%w (run \"mediaminder auth login\" again)", err)
	}
	return err
}
