package command

import (
	"strings"

	"github.com/spf13/cobra"
)

var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "Genre commands",
}

var listGenresCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		mediaType, _ := cmd.Flags().GetString("type")

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		genres, err := httpClient.ListGenres(strings.ToLower(strings.TrimSpace(mediaType)))
		if err != nil {
			return wrapAuthError(err)
		}

		printGenres(cmd.OutOrStdout(), genres)
		return nil
	},
}

func init() {
	genreCmd.AddCommand(listGenresCmd)
	listGenresCmd.Flags().StringP("type", "t", "", "Only genres for this media type (movie, series or book)")
}
