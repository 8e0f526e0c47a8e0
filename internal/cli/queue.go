package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewQueueCommand creates the queue command group.
func NewQueueCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect workouts waiting to be synced",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List queued workouts, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			views := toQueuedViews(env.queue.List(cmd.Context()))
			return render(cmd.OutOrStdout(), rootOpts.Output, views, func(w io.Writer) {
				if len(views) == 0 {
					fmt.Fprintln(w, "Queue is empty.")
					return
				}
				fmt.Fprintf(w, "%-36s  %-10s  %-20s  %s\n", "LOCAL ID", "DATE", "QUEUED AT", "EXERCISES")
				for _, v := range views {
					fmt.Fprintf(w, "%-36s  %-10s  %-20s  %d\n", v.LocalID, v.Date, v.QueuedAt.Format("2006-01-02 15:04:05"), len(v.Exercises))
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of queued workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			n := env.queue.Count(cmd.Context())
			return render(cmd.OutOrStdout(), rootOpts.Output, map[string]int{"count": n}, func(w io.Writer) {
				fmt.Fprintln(w, n)
			})
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every queued workout without syncing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop queued workouts without --yes")
			}
			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			n := env.queue.Count(cmd.Context())
			if err := env.queue.Clear(cmd.Context()); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rootOpts.Output, map[string]int{"cleared": n}, func(w io.Writer) {
				fmt.Fprintf(w, "Dropped %d queued workout(s).\n", n)
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm dropping unsynced workouts")
	cmd.AddCommand(clearCmd)

	return cmd
}
