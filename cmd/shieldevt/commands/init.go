package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livp123/shieldevt/internal/cli"
	"github.com/livp123/shieldevt/internal/config"
)

func newInitCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  `Write the default configuration file with every option documented (default /etc/shieldevt/config.yaml)`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.InitFile(path)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.ErrOrStderr(), "[FILE] Created default configuration: %s\n", path)
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "[INFO]  Configuration already exists: %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, cli.ConfigFlag, "c", config.DefaultConfigPath, "Path of the configuration file to create")
	return cmd
}
