package command

import (
	"fmt"
	"io"
	"strings"

	"mediaminder/cmd/cli/dto"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	titleColor   = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

func printSuccess(w io.Writer, format string, args ...interface{}) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "✗ %v\n", err)
}

func printUser(w io.Writer, u *dto.User) {
	titleColor.Fprintln(w, u.Username)
	fmt.Fprintf(w, "  ID:      %d\n", u.ID)
	fmt.Fprintf(w, "  Email:   %s\n", u.Email)
	fmt.Fprintf(w, "  Private: %t\n", u.IsPrivate)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Joined:  %s\n", u.CreatedAt.Format("2006-01-02"))
	}
}

func printUserMedia(w io.Writer, item *dto.UserMedia) {
	if item.Media == nil {
		errorColor.Fprintf(w, "[%d] %s", item.ID, item.Error)
		fmt.Fprintf(w, " (status: %s)\n", item.Status)
		return
	}

	titleColor.Fprintf(w, "[%d] %s", item.ID, item.Media.Title)
	dimColor.Fprintf(w, " (%s %s)\n", item.Media.Type, item.Media.ExternalID)
	fmt.Fprintf(w, "    Status: %s\n", item.Status)
	if item.Rating != nil {
		fmt.Fprintf(w, "    Rating: %d/10\n", *item.Rating)
	}
	if item.Review != nil {
		fmt.Fprintf(w, "    Review: %s\n", *item.Review)
	}
	if !item.UpdatedAt.IsZero() {
		dimColor.Fprintf(w, "    Updated %s\n", item.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printGenres(w io.Writer, genres []dto.Genre) {
	if len(genres) == 0 {
		fmt.Fprintln(w, "No genres found.")
		return
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		name := g.Name
		if g.MediaType != nil {
			name += dimColor.Sprintf(" (%s)", *g.MediaType)
		}
		names = append(names, fmt.Sprintf("%d. %s", g.ID, name))
	}
	fmt.Fprintln(w, strings.Join(names, "\n"))
}
