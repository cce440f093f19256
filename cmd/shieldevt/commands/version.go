package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/shieldevt/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of shieldevt`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shieldevt %s\n", version.Version)
		},
	}
}
