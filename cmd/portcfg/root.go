package main

import (
	"fmt"
	"os"

	"github.com/aretw0/portcfg/internal/cli"
	"github.com/aretw0/portcfg/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "portcfg",
	Short: "portcfg edits the configuration of input and output ports",
	Long: `portcfg opens a port of a dataflow service, lets you change its name, comments,
run state, remote access and concurrent task count, and submits the change
with the revision the service expects.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (default ./portcfg.yaml or ~/.portcfg/portcfg.yaml)")
	fs.String("api", "", "Base URL of the port service")
	fs.String("cache", "", "Port cache driver: file, memory or redis")
	fs.Bool("debug", false, "Enable debug logging")
}

// loadConfig resolves the config file, environment and persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	v := config.New(file)
	if err := bindFlag(v, cmd, "api.base_url", "api"); err != nil {
		return nil, err
	}
	if err := bindFlag(v, cmd, "cache.driver", "cache"); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) error {
	f := cmd.Flags().Lookup(flag)
	if f == nil || !f.Changed {
		return nil
	}
	return v.BindPFlag(key, f)
}

// loadApp builds the CLI collaborators. Callers must Close the app.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.NewApp(cmd.Context(), cfg, debug)
}
