package command

import (
	"fmt"

	"mediaminder/cmd/cli/authentication"
	"mediaminder/cmd/cli/command/client"
	"mediaminder/cmd/cli/dto"

	"github.com/spf13/cobra"
)

// auth.go handles the register, login and logout commands.

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the mediaminder API server. Supports register, login and logout.`,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		httpClient := client.NewHTTPClient(apiURL)
		res, err := httpClient.Register(&req)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		// registering also logs in
		if err := saveCredentials(res); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), "%s, welcome %s!", res.Message, res.User.Username)
		return nil
	},
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		httpClient := client.NewHTTPClient(apiURL)
		res, err := httpClient.Login(&req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := saveCredentials(res); err != nil {
			return err
		}

		printSuccess(cmd.OutOrStdout(), "Logged in as %s", res.User.Username)
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and forget the saved token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteCredentials(); err != nil {
			return fmt.Errorf("failed to remove saved token: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Successfully logged out.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)

	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringP("email", "e", "", "Email address of the account")
	loginCmd.Flags().StringP("password", "p", "", "Password of the account")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

// saveCredentials keeps the token in the OS keyring
func saveCredentials(res *dto.AuthResponse) error {
	err := authentication.StoreCredentials(&authentication.StoredCredentials{
		Token:    res.Token,
		Username: res.User.Username,
		APIURL:   apiURL,
	})
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
