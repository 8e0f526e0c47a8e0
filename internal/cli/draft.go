package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewDraftCommand creates the draft command group.
func NewDraftCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect the recovered in-progress workout",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			rec, ok := env.drafts.LoadDraft(cmd.Context())
			var v *draftView
			if ok {
				v = &draftView{UpdatedAt: rec.UpdatedAt, Notes: rec.Notes, Exercises: rec.Exercises}
			}
			return render(cmd.OutOrStdout(), rootOpts.Output, v, func(w io.Writer) {
				if v == nil {
					fmt.Fprintln(w, "No draft.")
					return
				}
				fmt.Fprintf(w, "Draft from %s:\n", v.UpdatedAt.Local().Format("2006-01-02 15:04"))
				writeExercises(w, v.Exercises, v.Notes)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "discard",
		Short: "Delete the stored draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.drafts.ClearDraft(cmd.Context()); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), rootOpts.Output, map[string]bool{"discarded": true}, func(w io.Writer) {
				fmt.Fprintln(w, "Draft discarded.")
			})
		},
	})

	return cmd
}
