package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/ironlog/internal/connectivity"
	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/internal/syncer"
	"github.com/heartmarshall/ironlog/internal/workoutlog"
)

const sessionHelp = `Commands (exercise and set numbers start at 1):
  add <name>                  add an exercise with one empty set
  rename <ex> <name>          rename an exercise
  rm <ex>                     remove an exercise
  clear                       remove every exercise
  set <ex> <set> <weight> <reps>
  weight <ex> <set> <value>   change one field; an empty value clears it
  reps <ex> <set> <value>
  addset <ex>                 add a set copied from the last one
  rmset <ex> <set>            remove a set
  notes <text>                replace the notes
  show                        print the workout
  resume | discard            answer the draft recovery prompt
  save                        save the workout
  status                      print session and queue state
  probe                       re-check the server connection
  quit                        leave the session`

// NewSessionCommand creates the interactive logging session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	var routine string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log a workout interactively",
		Long: `Starts an interactive logging session reading commands from stdin.

Edits are autosaved as a draft shortly after you stop typing. If a draft
from an earlier session exists you are asked to resume or discard it.
Queued workouts are synced in the background whenever the server is
reachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var routineID *uuid.UUID
			if routine != "" {
				id, err := uuid.Parse(routine)
				if err != nil {
					return fmt.Errorf("invalid --routine: %w", err)
				}
				routineID = &id
			}

			env, err := openEnv(rootOpts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			return runSession(cmd.Context(), env, routineID, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&routine, "routine", "", "routine UUID to pre-fill exercises from")
	return cmd
}

type session struct {
	env     *clientEnv
	ctl     *workoutlog.Controller
	monitor *connectivity.Monitor
	out     io.Writer

	confirmQuit bool
}

func runSession(ctx context.Context, env *clientEnv, routineID *uuid.UUID, in io.Reader, out io.Writer) error {
	mon := env.monitor(ctx)
	unsubscribe := mon.Subscribe(func(ev connectivity.Event) {
		if ev == connectivity.WentOffline {
			fmt.Fprintln(out, OfflineBanner)
			return
		}
		fmt.Fprintln(out, "Back online.")
	})
	defer unsubscribe()

	eng := syncer.New(env.log, env.queue, env.api, mon, syncer.Options{
		RetryInterval: env.cfg.Client.RetryInterval,
		Clock:         env.clock,
	})
	eng.Start(ctx)
	defer eng.Stop()

	ctl := workoutlog.New(env.log, workoutlog.Deps{
		Drafts:  env.drafts,
		Queue:   env.queue,
		Remote:  env.api,
		Monitor: mon,
	}, workoutlog.Options{
		Unit:             domain.WeightUnit(env.cfg.Client.Unit),
		AutosaveDebounce: env.cfg.Client.AutosaveDebounce,
		OfflineNoticeTTL: env.cfg.Client.OfflineNoticeTTL,
		Clock:            env.clock,
	})
	defer ctl.Close()

	if !mon.Online() {
		fmt.Fprintln(out, OfflineBanner)
	}
	if err := ctl.Init(ctx, routineID); err != nil {
		return err
	}

	s := &session{env: env, ctl: ctl, monitor: mon, out: out}
	s.greet()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := s.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if done {
			return nil
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func (s *session) greet() {
	if rec, ok := s.ctl.PendingDraft(); ok {
		fmt.Fprintf(s.out, "Found an unsaved workout from %s with %d exercise(s). Type 'resume' or 'discard'.\n",
			rec.UpdatedAt.Local().Format("2006-01-02 15:04"), len(rec.Exercises))
		return
	}
	if snap := s.ctl.Snapshot(); snap.RoutineName != "" {
		fmt.Fprintf(s.out, "Routine %q loaded.\n", snap.RoutineName)
	}
	s.show()
	fmt.Fprintln(s.out, "Type 'help' for commands.")
}

// exec runs one input line. done reports that the session should end.
func (s *session) exec(ctx context.Context, line string) (done bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	if cmd != "quit" && cmd != "exit" {
		s.confirmQuit = false
	}

	switch cmd {
	case "":
		return false, nil
	case "help":
		fmt.Fprintln(s.out, sessionHelp)
	case "show":
		s.show()
	case "add":
		if rest == "" {
			return false, errors.New("usage: add <name>")
		}
		return false, s.ctl.AddExercise(rest)
	case "rename":
		ex, name, _ := strings.Cut(rest, " ")
		i, err := index(ex)
		if err != nil {
			return false, err
		}
		return false, s.ctl.RenameExercise(i, strings.TrimSpace(name))
	case "rm":
		i, err := indexArgs(args, 1)
		if err != nil {
			return false, err
		}
		return false, s.ctl.RemoveExercise(i[0])
	case "clear":
		return false, s.ctl.ReplaceExercises(nil)
	case "set":
		if len(args) != 4 {
			return false, errors.New("usage: set <ex> <set> <weight> <reps>")
		}
		i, err := indexArgs(args[:2], 2)
		if err != nil {
			return false, err
		}
		if err := s.ctl.UpdateSet(i[0], i[1], workoutlog.FieldWeight, args[2]); err != nil {
			return false, err
		}
		return false, s.ctl.UpdateSet(i[0], i[1], workoutlog.FieldReps, args[3])
	case "weight", "reps":
		if len(args) < 2 || len(args) > 3 {
			return false, fmt.Errorf("usage: %s <ex> <set> [value]", cmd)
		}
		i, err := indexArgs(args[:2], 2)
		if err != nil {
			return false, err
		}
		value := ""
		if len(args) == 3 {
			value = args[2]
		}
		field := workoutlog.FieldWeight
		if cmd == "reps" {
			field = workoutlog.FieldReps
		}
		return false, s.ctl.UpdateSet(i[0], i[1], field, value)
	case "addset":
		i, err := indexArgs(args, 1)
		if err != nil {
			return false, err
		}
		return false, s.ctl.AddSet(i[0])
	case "rmset":
		i, err := indexArgs(args, 2)
		if err != nil {
			return false, err
		}
		return false, s.ctl.RemoveSet(i[0], i[1])
	case "notes":
		return false, s.ctl.SetNotes(rest)
	case "resume":
		if err := s.ctl.Resume(); err != nil {
			return false, err
		}
		s.show()
	case "discard":
		if err := s.ctl.Discard(ctx); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "Draft discarded.")
	case "save":
		return s.save(ctx)
	case "status":
		s.status(ctx)
	case "probe":
		s.monitor.SetOnline(s.env.probe(ctx))
		s.status(ctx)
	case "quit", "exit":
		if s.ctl.HasUnsavedContent() && !s.confirmQuit {
			s.confirmQuit = true
			fmt.Fprintln(s.out, "You have unsaved changes. They are kept as a draft once autosaved. Type 'quit' again to leave.")
			return false, nil
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return false, nil
}

func (s *session) save(ctx context.Context) (bool, error) {
	res, err := s.ctl.Save(ctx)
	if errors.Is(err, workoutlog.ErrNothingToSave) {
		fmt.Fprintf(s.out, "Nothing to save: %v.\n", err)
		return false, nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(s.out, "Cannot save yet, fix these first:")
		for _, fe := range verr.Errors {
			fmt.Fprintf(s.out, "  %s: %s\n", fe.Field, fe.Message)
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !res.Queued {
		fmt.Fprintln(s.out, "Workout saved.")
		return true, nil
	}
	fmt.Fprintln(s.out, "Saved offline. It will sync when you are back online.")
	return false, nil
}

func (s *session) show() {
	snap := s.ctl.Snapshot()
	writeExercises(s.out, snap.Exercises, snap.Notes)
}

func (s *session) status(ctx context.Context) {
	snap := s.ctl.Snapshot()
	conn := "online"
	if !s.monitor.Online() {
		conn = "offline"
	}
	fmt.Fprintf(s.out, "state: %s, %s, %d queued\n", snap.State, conn, s.env.queue.Count(ctx))
	if snap.OfflineNotice {
		fmt.Fprintln(s.out, "Saved offline.")
	}
}

// index converts a 1-based user index into a 0-based one.
func index(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n - 1, nil
}

func indexArgs(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("expected %d number(s), got %d", want, len(args))
	}
	out := make([]int, want)
	for i, a := range args {
		n, err := index(a)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
