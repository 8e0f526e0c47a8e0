package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// OfflineBanner is shown whenever the server is unreachable.
const OfflineBanner = "You are offline. Workouts will be saved locally and synced when you reconnect."

// render writes v as JSON or YAML, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	text(w)
	return nil
}

type queuedView struct {
	LocalID   string        `json:"localId"   yaml:"local_id"`
	Date      string        `json:"date"      yaml:"date"`
	QueuedAt  time.Time     `json:"queuedAt"  yaml:"queued_at"`
	Unit      string        `json:"unit"      yaml:"unit"`
	Notes     string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Exercises []exerciseRow `json:"exercises" yaml:"exercises"`
}

type exerciseRow struct {
	Name string   `json:"name" yaml:"name"`
	Sets []string `json:"sets" yaml:"sets"`
}

func toQueuedViews(items []domain.QueuedWorkout) []queuedView {
	out := make([]queuedView, 0, len(items))
	for _, it := range items {
		v := queuedView{
			LocalID:  it.LocalID.String(),
			Date:     it.Date,
			QueuedAt: it.QueuedAt,
			Unit:     it.Unit.String(),
			Notes:    it.Notes,
		}
		for _, ex := range it.Exercises {
			row := exerciseRow{Name: ex.Name}
			for _, s := range ex.Sets {
				row.Sets = append(row.Sets, fmt.Sprintf("%gx%d", s.Weight, s.Reps))
			}
			v.Exercises = append(v.Exercises, row)
		}
		out = append(out, v)
	}
	return out
}

type draftView struct {
	UpdatedAt time.Time              `json:"updatedAt" yaml:"updated_at"`
	Notes     string                 `json:"notes,omitempty" yaml:"notes,omitempty"`
	Exercises []domain.DraftExercise `json:"exercises" yaml:"exercises"`
}

// writeExercises prints exercises as a numbered list with 1-based indexes.
func writeExercises(w io.Writer, exercises []domain.DraftExercise, notes string) {
	if len(exercises) == 0 {
		fmt.Fprintln(w, "  (no exercises)")
	}
	for i, ex := range exercises {
		name := ex.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, name)
		for j, s := range ex.Sets {
			fmt.Fprintf(w, "     set %d: %s x %s\n", j+1, orDash(s.Weight), orDash(s.Reps))
		}
	}
	if strings.TrimSpace(notes) != "" {
		fmt.Fprintf(w, "  notes: %s\n", notes)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
