package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"panel-cli/internal/format"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User commands",
	}
	cmd.AddCommand(newUsersListCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	var outFormat string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users from the remote source",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), app.cfg.Timeout())
			defer cancel()

			users, err := app.newClient().Users(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.Username, u.Email})
			}
			return format.Write(cmd.OutOrStdout(),
				[]string{"ID", "NAME", "USERNAME", "EMAIL"}, rows,
				users, outFormat, pretty)
		},
	}

	cmd.Flags().StringVar(&outFormat, "format", "table", "output format: table|json")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
