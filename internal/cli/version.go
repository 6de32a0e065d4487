package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped by the build (-ldflags "-X panel-cli/internal/cli.Version=...").
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the panel version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
			return err
		},
	}
}
