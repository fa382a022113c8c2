package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AnatoleLucet/updatequeue"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		s, err := Load(filepath.Join("testdata", "rebase.toml"))
		require.NoError(t, err)

		assert.Equal(t, "rebase", s.Name)
		assert.Len(t, s.Steps, 8)
		assert.Equal(t, Step{Action: ActionEnqueue, Lane: "default", Payload: "B", Callback: "b"}, s.Steps[1])
	})

	t.Run("yaml", func(t *testing.T) {
		s, err := Load(filepath.Join("testdata", "capture.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "x", s.Initial)
		assert.Equal(t, Step{Action: ActionRender, Lanes: "sync", Discard: true}, s.Steps[1])
	})

	t.Run("name defaults to the file name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unnamed.yml")
		require.NoError(t, os.WriteFile(path, []byte("steps:\n  - action: Render\n    lanes: idle\n"), 0o600))

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "unnamed", s.Name)
		assert.Equal(t, ActionRender, s.Steps[0].Action)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Parse([]byte(`{}`), ".json")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]byte(`steps = [`), ".toml")
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	t.Run("rebase", func(t *testing.T) {
		s, err := Load(filepath.Join("testdata", "rebase.toml"))
		require.NoError(t, err)

		report, err := Run(s)
		require.NoError(t, err)

		want := []*PassReport{
			{
				Step: 5, Lanes: updatequeue.SyncLane, State: "AC", RemainingLanes: updatequeue.DefaultLane,
				Applied: 2, Skipped: 2, Outcome: OutcomeCommitted, Callbacks: []string{"c"},
			},
			{
				Step: 7, Lanes: updatequeue.DefaultLane, State: "ABCD", RemainingLanes: updatequeue.NoLanes,
				Applied: 3, Outcome: OutcomeCommitted, Callbacks: []string{"b"},
			},
		}
		if diff := cmp.Diff(want, report.Passes); diff != "" {
			t.Errorf("unexpected passes (-want +got):\n%s", diff)
		}
		assert.Equal(t, "ABCD", report.State)
		assert.True(t, report.Mounted)
	})

	t.Run("capture and unmount", func(t *testing.T) {
		s, err := Load(filepath.Join("testdata", "capture.yaml"))
		require.NoError(t, err)

		report, err := Run(s)
		require.NoError(t, err)
		require.Len(t, report.Passes, 2)

		assert.Equal(t, OutcomeDiscarded, report.Passes[0].Outcome)
		assert.Equal(t, "xA", report.Passes[0].State)

		captured := report.Passes[1]
		assert.Equal(t, "xA!", captured.State)
		assert.True(t, captured.DidCapture)
		assert.Equal(t, []string{"boundary@root"}, captured.Callbacks)

		assert.Equal(t, "xA!", report.State)
		assert.False(t, report.Mounted)
		assert.Equal(t, updatequeue.NoLanes, report.Pending)
	})

	t.Run("superseded and in flight", func(t *testing.T) {
		report, err := Run(Scenario{
			Name: "supersede",
			Steps: []Step{
				{Action: ActionEnqueue, Lane: "idle", Payload: "A"},
				{Action: ActionEnqueue, Lane: "sync", Kind: "replace", Payload: "B"},
				{Action: ActionRender, Lanes: "sync"},
				{Action: ActionRender, Lanes: "sync|idle"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, OutcomeSuperseded, report.Passes[0].Outcome)
		assert.Equal(t, "B", report.Passes[0].State)
		assert.Equal(t, OutcomeInFlight, report.Passes[1].Outcome)
		assert.Equal(t, "B", report.Passes[1].State)
		assert.Equal(t, "", report.State)
		assert.Equal(t, updatequeue.SyncLane|updatequeue.IdleLane, report.Pending)
	})

	t.Run("props updater", func(t *testing.T) {
		report, err := Run(Scenario{
			Initial: "n=",
			Steps: []Step{
				{Action: ActionEnqueue, Lane: "sync", Kind: "props"},
				{Action: ActionRender, Lanes: "sync", Props: "1"},
				{Action: ActionCommit},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "n=1", report.State)
	})

	t.Run("errors", func(t *testing.T) {
		for name, tc := range map[string]struct {
			step Step
			err  error
		}{
			"unknown action": {Step{Action: "jump"}, ErrUnknownAction},
			"unknown kind":   {Step{Action: ActionEnqueue, Kind: "merge"}, ErrUnknownKind},
			"commit":         {Step{Action: ActionCommit}, ErrNoPass},
			"capture":        {Step{Action: ActionCapture}, ErrNoPass},
			"discard":        {Step{Action: ActionDiscard}, ErrNoPass},
		} {
			t.Run(name, func(t *testing.T) {
				report, err := Run(Scenario{Steps: []Step{tc.step}})
				assert.ErrorIs(t, err, tc.err)
				assert.NotNil(t, report)
			})
		}

		_, err := Run(Scenario{Steps: []Step{{Action: ActionRender, Lanes: "urgent"}}})
		assert.ErrorContains(t, err, "step 1 (render)")
	})
}

func TestReportRender(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "rebase.toml"))
	require.NoError(t, err)

	report, err := Run(s)
	require.NoError(t, err)

	out := report.Render()
	for _, want := range []string{"rebase", "remaining", `"AC"`, `"ABCD"`, "committed", `final "ABCD", pending none, mounted`} {
		assert.Contains(t, out, want)
	}
}
