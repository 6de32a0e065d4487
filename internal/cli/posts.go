package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"panel-cli/internal/format"
	"panel-cli/internal/model"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Post commands",
	}
	cmd.AddCommand(newPostsListCmd(app))
	return cmd
}

func newPostsListCmd(app *App) *cobra.Command {
	var outFormat string
	var pretty bool
	var userID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts from the remote source",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Timeout())
			defer cancel()

			client := app.newClient()
			var posts []model.Post
			var err error
			if cmd.Flags().Changed("user") {
				posts, err = client.PostsByUser(ctx, userID)
			} else {
				posts, err = client.Posts(ctx)
			}
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(posts))
			for _, p := range posts {
				rows = append(rows, []string{strconv.Itoa(p.ID), strconv.Itoa(p.UserID), p.Title})
			}
			return format.Write(cmd.OutOrStdout(),
				[]string{"ID", "USER", "TITLE"}, rows,
				posts, outFormat, pretty)
		},
	}

	cmd.Flags().IntVar(&userID, "user", 0, "only posts authored by this user id")
	cmd.Flags().StringVar(&outFormat, "format", "table", "output format: table|json")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
