package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/ironlog/internal/syncer"
)

type syncView struct {
	Online    bool `json:"online"    yaml:"online"`
	Synced    int  `json:"synced"    yaml:"synced"`
	Remaining int  `json:"remaining" yaml:"remaining"`
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Send queued workouts to the server",
		Long: `Sends queued workouts to the server oldest first. Sync stops at the
first workout the server does not accept; it and everything after it stay
queued for the next attempt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			mon := env.monitor(ctx)
			v := syncView{Online: mon.Online()}
			if v.Online {
				eng := syncer.New(env.log, env.queue, env.api, mon, syncer.Options{Clock: env.clock})
				v.Synced = eng.SyncPending(ctx)
			}
			v.Remaining = env.queue.Count(ctx)

			return render(cmd.OutOrStdout(), rootOpts.Output, v, func(w io.Writer) {
				if !v.Online {
					fmt.Fprintln(w, OfflineBanner)
				}
				fmt.Fprintf(w, "Synced %d workout(s), %d still queued.\n", v.Synced, v.Remaining)
			})
		},
	}
}
