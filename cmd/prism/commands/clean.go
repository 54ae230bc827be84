package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prism/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the output base of the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("directory")
			return c.app.Clean(cmd.Context(), app.CleanOptions{Dir: dir})
		},
	}
}
