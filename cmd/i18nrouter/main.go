// Command i18nrouter builds, inspects and serves locale-aware routing
// manifests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/i18nrouter/pkg/config"
	"github.com/dmitrymomot/i18nrouter/pkg/i18n"
	"github.com/dmitrymomot/i18nrouter/pkg/manifest"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// app carries settings shared by all subcommands.
type app struct {
	settings config.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "i18nrouter",
		Short: "Locale-aware request routing",
		Long: `i18nrouter compiles a routing document (base path, i18n locales and
domains, rewrites) into a routes manifest and resolves requests against it.

Settings are read from the environment and an optional .env file; flags
override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadSettings(cmd)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "routing document (.yaml, .yml or .json)")
	root.PersistentFlags().Bool("strip-port", false, "ignore the port when matching request hosts to domains")
	root.PersistentFlags().String("env-file", "", "load environment variables from this file")

	root.AddCommand(
		a.manifestCmd(),
		a.resolveCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) loadSettings(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return err
		}
	}
	if err := config.Load(&a.settings); err != nil {
		return err
	}

	if flags.Changed("config") {
		a.settings.ConfigFile, _ = flags.GetString("config")
	}
	if flags.Changed("strip-port") {
		a.settings.StripPort, _ = flags.GetBool("strip-port")
	}
	return nil
}

func (a *app) tableOptions() []i18n.TableOption {
	opts := []i18n.TableOption{i18n.WithNegotiationCache(a.settings.NegotiationCache)}
	if a.settings.StripPort {
		opts = append(opts, i18n.WithPortStripping())
	}
	return opts
}

func (a *app) loadManifest() (*manifest.Manifest, error) {
	return config.LoadManifest(a.settings.ConfigFile, a.tableOptions()...)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "i18nrouter %s (%s)\n", version, commit)
		},
	}
}
