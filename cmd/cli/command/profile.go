package command

import (
	"fmt"

	"mediaminder/cmd/cli/authentication"
	"mediaminder/cmd/cli/dto"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and manage your account",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		user, err := httpClient.GetProfile()
		if err != nil {
			return wrapAuthError(err)
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your username, email, password or privacy",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var req dto.UpdateProfileRequest
		if flags.Changed("username") {
			v, _ := flags.GetString("username")
			req.Username = &v
		}
		if flags.Changed("email") {
			v, _ := flags.GetString("email")
			req.Email = &v
		}
		if flags.Changed("password") {
			v, _ := flags.GetString("password")
			req.Password = &v
		}
		if flags.Changed("private") {
			v, _ := flags.GetBool("private")
			req.IsPrivate = &v
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		res, err := httpClient.UpdateProfile(&req)
		if err != nil {
			return wrapAuthError(err)
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "%s", res.Message)
		printUser(out, &res.User)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account and your whole media list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes your account permanently, pass --yes to confirm")
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		if err := httpClient.DeleteAccount(); err != nil {
			return wrapAuthError(err)
		}

		// the token is useless now
		if err := authentication.DeleteCredentials(); err != nil {
			return fmt.Errorf("account deleted but the saved token could not be removed: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Account deleted")
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	profileUpdateCmd.Flags().StringP("username", "u", "", "New username")
	profileUpdateCmd.Flags().StringP("email", "e", "", "New email address")
	profileUpdateCmd.Flags().StringP("password", "p", "", "New password")
	profileUpdateCmd.Flags().Bool("private", true, "Whether your list is private (--private=false to make it public)")

	profileDeleteCmd.Flags().Bool("yes", false, "Confirm the deletion")
}
