package command

import (
	"fmt"
	"strconv"

	"mediaminder/cmd/cli/dto"

	"github.com/spf13/cobra"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage your media list",
	Long:  `Add, update, remove and list the movies, series and books you track`,
}

var mediaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every entry in your media list",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}

		items, err := httpClient.ListMedia()
		if err != nil {
			return wrapAuthError(err)
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "Your list is empty")
			return nil
		}

		fmt.Fprintf(out, "Your list (%d entries)\n\n", len(items))
		for i := range items {
			printUserMedia(out, &items[i])
		}
		return nil
	},
}

var mediaShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one entry and the genres of its media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}

		item, err := httpClient.GetMedia(id)
		if err != nil {
			return wrapAuthError(err)
		}
		out := cmd.OutOrStdout()
		printUserMedia(out, item)

		if item.Media == nil {
			return nil
		}
		genres, err := httpClient.MediaGenres(id)
		if err != nil {
			return wrapAuthError(err)
		}
		fmt.Fprintln(out, "    Genres:")
		printGenres(out, genres)
		return nil
	},
}

var mediaAddCmd = &cobra.Command{
	Use:   "add [media_id]",
	Short: "Add a movie, series or book to your list",
	Long: `Add a work by its external catalog id. The title is required the
first time anyone adds that work.`,
	Example: `  mediaminder media add 438631 --type movie --status watching --title Dune`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := dto.AddMediaRequest{MediaID: args[0]}
		req.MediaType, _ = cmd.Flags().GetString("type")
		req.Status, _ = cmd.Flags().GetString("status")
		req.Title, _ = cmd.Flags().GetString("title")
		if cmd.Flags().Changed("poster") {
			poster, _ := cmd.Flags().GetString("poster")
			req.PosterPath = &poster
		}
		if cmd.Flags().Changed("rating") {
			rating, _ := cmd.Flags().GetInt("rating")
			req.Rating = &rating
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		item, err := httpClient.AddMedia(&req)
		if err != nil {
			return wrapAuthError(err)
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Added to your list")
		printUserMedia(out, item)
		return nil
	},
}

var mediaUpdateCmd = &cobra.Command{
	Use:     "update [id]",
	Short:   "Change the status, rating or review of an entry",
	Example: `  mediaminder media update 12 --status completed --rating 9`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		req := dto.UpdateMediaRequest{}
		if flags.Changed("status") {
			req["status"], _ = flags.GetString("status")
		}
		if flags.Changed("rating") {
			req["rating"], _ = flags.GetInt("rating")
		}
		if flags.Changed("review") {
			req["review"], _ = flags.GetString("review")
		}
		if unset, _ := flags.GetBool("clear-rating"); unset {
			req["rating"] = nil
		}
		if unset, _ := flags.GetBool("clear-review"); unset {
			req["review"] = nil
		}
		if len(req) == 0 {
			return fmt.Errorf("nothing to update, pass --status, --rating or --review")
		}

		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}
		item, err := httpClient.UpdateMedia(id, req)
		if err != nil {
			return wrapAuthError(err)
		}

		out := cmd.OutOrStdout()
		printSuccess(out, "Entry updated")
		printUserMedia(out, item)
		return nil
	},
}

var mediaRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove an entry from your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		httpClient, err := GetAuthenticatedClient(cmd)
		if err != nil {
			return err
		}

		if err := httpClient.DeleteMedia(id); err != nil {
			return wrapAuthError(err)
		}

		printSuccess(cmd.OutOrStdout(), "Removed entry %d from your list", id)
		return nil
	},
}

func init() {
	mediaCmd.AddCommand(mediaListCmd)
	mediaCmd.AddCommand(mediaShowCmd)
	mediaCmd.AddCommand(mediaAddCmd)
	mediaCmd.AddCommand(mediaUpdateCmd)
	mediaCmd.AddCommand(mediaRemoveCmd)

	mediaAddCmd.Flags().StringP("type", "t", "", "Media type: movie, series or book")
	mediaAddCmd.Flags().StringP("status", "s", "", "Your status, e.g. watching, reading, completed")
	mediaAddCmd.Flags().String("title", "", "Title of the work")
	mediaAddCmd.Flags().String("poster", "", "Poster image path or URL")
	mediaAddCmd.Flags().IntP("rating", "r", 0, "Rating from 0 to 10")
	mediaAddCmd.MarkFlagRequired("type")
	mediaAddCmd.MarkFlagRequired("status")

	mediaUpdateCmd.Flags().StringP("status", "s", "", "New status")
	mediaUpdateCmd.Flags().IntP("rating", "r", 0, "New rating from 0 to 10")
	mediaUpdateCmd.Flags().String("review", "", "New review")
	mediaUpdateCmd.Flags().Bool("clear-rating", false, "Remove the rating")
	mediaUpdateCmd.Flags().Bool("clear-review", false, "Remove the review")
	mediaUpdateCmd.MarkFlagsMutuallyExclusive("rating", "clear-rating")
	mediaUpdateCmd.MarkFlagsMutuallyExclusive("review", "clear-review")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
