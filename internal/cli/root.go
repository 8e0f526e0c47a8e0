// Package cli implements the ironlog command line client.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Output     string // "text" | "json" | "yaml"
	Verbose    bool
}

// ValidOutputs lists the accepted --output values.
var ValidOutputs = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command of the ironlog client.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ironlog",
		Short: "Log workouts, online or off",
		Long: `ironlog records workouts against the IronLog server.

Unsaved work is kept as a local draft and restored after a crash. Workouts
saved while the server is unreachable are queued on disk and synced, oldest
first, once it is reachable again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default: $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.AddCommand(NewSessionCommand(opts))
	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewQueueCommand(opts))
	cmd.AddCommand(NewDraftCommand(opts))

	return cmd
}
