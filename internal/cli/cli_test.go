package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeConfig writes a client config pointing at serverURL and returns its path.
func writeConfig(t *testing.T, serverURL string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`client:
  store_path: %s
  server_url: %s
  request_timeout: 2s
log:
  level: error
  format: text
`, filepath.Join(dir, "ironlog.db"), serverURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func deadServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{
		{"session"}, {"sync"}, {"queue", "list"}, {"queue", "count"}, {"queue", "clear"},
		{"draft", "show"}, {"draft", "discard"},
	} {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	output := cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "text", output.DefValue)

	session, _, err := cmd.Find([]string{"session"})
	require.NoError(t, err)
	assert.NotNil(t, session.Flags().Lookup("routine"))
}

func TestRootCommand_InvalidOutput(t *testing.T) {
	_, err := run(t, "", "queue", "count", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output")
}

func TestSession_OfflineSaveQueues(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))

	out, err := run(t, "add Squat\nset 1 1 100 5\nsave\nstatus\nquit\n", "--config", cfg, "session")
	require.NoError(t, err)

	assert.Contains(t, out, OfflineBanner)
	assert.Contains(t, out, "Saved offline. It will sync when you are back online.")
	assert.Contains(t, out, "state: queued_offline, offline, 1 queued")

	out, err = run(t, "", "--config", cfg, "queue", "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "", "--config", cfg, "draft", "show")
	require.NoError(t, err)
	assert.Equal(t, "No draft.\n", out)
}

func TestSession_NothingToSave(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))

	out, err := run(t, "add Squat\nweight 1 1 100\nsave\nquit\nquit\n", "--config", cfg, "session")
	require.NoError(t, err)

	assert.Contains(t, out, "Nothing to save: add at least one exercise with weight and reps.")
	assert.Contains(t, out, "You have unsaved changes.")

	out, err = run(t, "", "--config", cfg, "queue", "count")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSession_UnparsableSetBlocksSave(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))

	out, err := run(t, "add Squat\nset 1 1 100 5\naddset 1\nweight 1 2 102.5kg\nsave\nstatus\nclear\nshow\nquit\n", "--config", cfg, "session")
	require.NoError(t, err)

	assert.Contains(t, out, "Cannot save yet, fix these first:")
	assert.Contains(t, out, `Squat (exercise 1) set 2: weight "102.5kg" must be a non-negative number`)
	assert.Contains(t, out, "state: editing, offline, 0 queued")

	out, err = run(t, "", "--config", cfg, "queue", "count")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSession_BadInput(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))

	out, err := run(t, "bogus\nrm x\nset 1 1 100\nrm 4\nquit\n", "--config", cfg, "session")
	require.NoError(t, err)

	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, `invalid number "x"`)
	assert.Contains(t, out, "usage: set")
	assert.Contains(t, out, "index out of range")
}

// fakeServer accepts every workout and counts what it received.
type fakeServer struct {
	saved  atomic.Int32
	synced atomic.Int32
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /api/workouts", func(w http.ResponseWriter, r *http.Request) {
		f.saved.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /api/workouts/sync", func(w http.ResponseWriter, r *http.Request) {
		f.synced.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func TestSession_OnlineSaveThenSyncBacklog(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	// Build a backlog while the server is down, using the same local store.
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeAt := func(url string) {
		content := fmt.Sprintf("client:\n  store_path: %s\n  server_url: %s\n  request_timeout: 2s\n",
			filepath.Join(dir, "ironlog.db"), url)
		require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	}

	writeAt(deadServerURL(t))
	_, err := run(t, "add Row\nset 1 1 60 10\nsave\nadd Curl\nset 1 1 12 12\nsave\nquit\n", "--config", cfgPath, "session")
	require.NoError(t, err)

	writeAt(srv.URL)
	out, err := run(t, "", "--config", cfgPath, "sync", "-o", "json")
	require.NoError(t, err)

	var v syncView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, syncView{Online: true, Synced: 2, Remaining: 0}, v)
	assert.EqualValues(t, 2, fake.synced.Load())

	out, err = run(t, "add Squat\nset 1 1 100 5\nsave\n", "--config", cfgPath, "session")
	require.NoError(t, err)
	assert.Contains(t, out, "Workout saved.")
	assert.NotContains(t, out, OfflineBanner)
	assert.EqualValues(t, 1, fake.saved.Load())
}

func TestSync_Offline(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))

	out, err := run(t, "", "--config", cfg, "sync")
	require.NoError(t, err)

	assert.Contains(t, out, OfflineBanner)
	assert.Contains(t, out, "Synced 0 workout(s), 0 still queued.")
}

func TestQueue_ListAndClear(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))

	_, err := run(t, "add Squat\nset 1 1 100 5\naddset 1\nsave\n", "--config", cfg, "session")
	require.NoError(t, err)

	out, err := run(t, "", "--config", cfg, "queue", "list", "-o", "yaml")
	require.NoError(t, err)

	var views []queuedView
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "kg", views[0].Unit)
	assert.Equal(t, []exerciseRow{{Name: "Squat", Sets: []string{"100x5", "100x5"}}}, views[0].Exercises)

	out, err = run(t, "", "--config", cfg, "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, views[0].LocalID)

	_, err = run(t, "", "--config", cfg, "queue", "clear")
	require.Error(t, err, "clear requires --yes")

	out, err = run(t, "", "--config", cfg, "queue", "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Dropped 1 queued workout(s).\n", out)

	out, err = run(t, "", "--config", cfg, "queue", "list")
	require.NoError(t, err)
	assert.Equal(t, "Queue is empty.\n", out)
}

func TestDraft_ShowResumeDiscard(t *testing.T) {
	cfg := writeConfig(t, deadServerURL(t))
	env, err := openEnv(&RootOptions{ConfigPath: cfg}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, env.drafts.SaveDraft(context.Background(), draftRecordFixture()))
	require.NoError(t, env.Close())

	out, err := run(t, "", "--config", cfg, "draft", "show", "-o", "json")
	require.NoError(t, err)
	var v draftView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Deadlift", v.Exercises[0].Name)

	out, err = run(t, "add Row\nresume\nquit\nquit\n", "--config", cfg, "session")
	require.NoError(t, err)
	assert.Contains(t, out, "Found an unsaved workout")
	assert.Contains(t, out, "workout is not editable in this state")
	assert.Contains(t, out, "1. Deadlift")
	assert.Contains(t, out, "set 1: 180 x 3")

	out, err = run(t, "", "--config", cfg, "draft", "discard")
	require.NoError(t, err)
	assert.Equal(t, "Draft discarded.\n", out)

	out, err = run(t, "", "--config", cfg, "draft", "show")
	require.NoError(t, err)
	assert.Equal(t, "No draft.\n", out)
}
