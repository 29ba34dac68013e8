package main

import (
	"github.com/aretw0/portcfg/internal/cli"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <input|output> <port-id>",
	Short: "Print the current configuration of a port",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParsePortKind(args[0])
		if err != nil {
			return err
		}
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		cached, _ := cmd.Flags().GetBool("cached")
		format, _ := cmd.Flags().GetString("output")
		return cli.RunShow(cmd.Context(), app, cmd.OutOrStdout(), kind, args[1], cached, format)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("cached", false, "Read the port from the local cache instead of the service")
	showCmd.Flags().StringP("output", "o", cli.FormatText, "Output format: text, json or yaml")
}
