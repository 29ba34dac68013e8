package main

import (
	"fmt"
	"os"

	"github.com/aretw0/portcfg/internal/cli"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure <input|output> <port-id>",
	Short: "Edit the configuration of a port",
	Long: `Loads the port from the service, applies the given changes and submits them.

Without change flags on a terminal, every field is prompted for. When the service
rejects the change the dialog stays open and you can edit and retry.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParsePortKind(args[0])
		if err != nil {
			return err
		}

		opts := cli.ConfigureOptions{
			Kind: kind,
			ID:   args[1],
			In:   cmd.InOrStdin(),
			Out:  cmd.OutOrStdout(),
		}
		opts.Format, _ = cmd.Flags().GetString("output")

		flags := cmd.Flags()
		if flags.Changed("name") {
			v, _ := flags.GetString("name")
			opts.Name = &v
		}
		if flags.Changed("comments") {
			v, _ := flags.GetString("comments")
			opts.Comments = &v
		}
		if flags.Changed("tasks") {
			v, _ := flags.GetString("tasks")
			opts.ConcurrentTasks = &v
		}
		for flag, dst := range map[string]**domain.Toggle{
			"enabled":       &opts.Enabled,
			"remote-access": &opts.RemoteAccess,
		} {
			if !flags.Changed(flag) {
				continue
			}
			raw, _ := flags.GetString(flag)
			t, ok, err := cli.ParseToggle(raw)
			if err != nil {
				return fmt.Errorf("--%s: %w", flag, err)
			}
			if ok {
				*dst = &t
			}
		}

		interactive, _ := flags.GetBool("interactive")
		noChanges := opts.Name == nil && opts.Comments == nil && opts.ConcurrentTasks == nil &&
			opts.Enabled == nil && opts.RemoteAccess == nil
		opts.Interactive = interactive || (noChanges && cli.IsInteractive(os.Stdin))

		app, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.RunConfigure(cmd.Context(), app, opts)
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().String("name", "", "Port name")
	configureCmd.Flags().String("comments", "", "Port comments")
	configureCmd.Flags().String("tasks", "", "Concurrent task count (sent only for ports with remote access)")
	configureCmd.Flags().String("enabled", "", "Enabled checkbox: y, n or - for indeterminate")
	configureCmd.Flags().String("remote-access", "", "Remote access checkbox: y, n or - for indeterminate")
	configureCmd.Flags().BoolP("interactive", "i", false, "Prompt for every field")
	configureCmd.Flags().StringP("output", "o", cli.FormatText, "Output format: text, json or yaml")
}
