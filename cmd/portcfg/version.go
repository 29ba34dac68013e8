package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/portcfg"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of portcfg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "portcfg version %s\n", strings.TrimSpace(portcfg.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
