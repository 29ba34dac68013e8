package main

import (
	"fmt"

	"github.com/aretw0/portcfg/internal/cli"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local port cache",
	Long:  `List, inspect, and remove the port representations cached after successful updates.`,
}

var cacheLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RunList(cmd.Context(), app, cmd.OutOrStdout())
	},
}

var cacheInspectCmd = &cobra.Command{
	Use:   "inspect <port-id>",
	Short: "Print a cached port",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		format, _ := cmd.Flags().GetString("output")
		return cli.RunShow(cmd.Context(), app, cmd.OutOrStdout(), "", args[0], true, format)
	},
}

var cacheRmCmd = &cobra.Command{
	Use:   "rm <port-id>...",
	Short: "Remove one or more cached ports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		failed := 0
		for _, id := range args {
			if err := app.Store.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed port '%s'\n", id)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d ports could not be removed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheLsCmd)
	cacheCmd.AddCommand(cacheInspectCmd)
	cacheCmd.AddCommand(cacheRmCmd)
	cacheInspectCmd.Flags().StringP("output", "o", cli.FormatYAML, "Output format: text, json or yaml")
}
