package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AnatoleLucet/updatequeue"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownKind   = errors.New("unknown update kind")
	ErrNoPass        = errors.New("no pass in flight")
)

type Outcome string

const (
	OutcomeInFlight   Outcome = "in flight"
	OutcomeCommitted  Outcome = "committed"
	OutcomeDiscarded  Outcome = "discarded"
	OutcomeSuperseded Outcome = "superseded"
)

// PassReport is what one render pass produced.
type PassReport struct {
	Step           int
	Lanes          updatequeue.Lanes
	State          string
	RemainingLanes updatequeue.Lanes
	Applied        int
	Skipped        int
	ForceUpdate    bool
	DidCapture     bool
	Outcome        Outcome

	// labels of the callbacks run when the pass was committed, in order
	Callbacks []string
}

type Report struct {
	Name    string
	Passes  []*PassReport
	State   string
	Pending updatequeue.Lanes
	Mounted bool
}

type runner struct {
	component *updatequeue.Component[string]
	pass      *updatequeue.Pass[string]
	current   *PassReport
	report    *Report

	fired []string
}

// Run replays s against a fresh component built with opts.
func Run(s Scenario, opts ...updatequeue.Option) (*Report, error) {
	opts = append([]updatequeue.Option{
		updatequeue.WithMerge(func(prev, fragment string) string { return prev + fragment }),
		updatequeue.WithStrictMode(s.Strict),
	}, opts...)

	r := &runner{
		component: updatequeue.NewComponent(s.Initial, opts...),
		report:    &Report{Name: s.Name},
	}

	for i, step := range s.Steps {
		if err := r.step(i+1, step); err != nil {
			return r.finish(), fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
		}
	}

	return r.finish(), nil
}

func (r *runner) step(index int, step Step) error {
	switch step.Action {
	case ActionEnqueue:
		return r.enqueue(index, step)
	case ActionRender:
		return r.render(index, step)
	case ActionCapture:
		return r.capture(index, step)
	case ActionCommit:
		return r.commit(step.Instance)
	case ActionDiscard:
		if r.pass == nil {
			return ErrNoPass
		}
		r.close(OutcomeDiscarded)
		return nil
	case ActionUnmount:
		if r.pass != nil {
			r.close(OutcomeDiscarded)
		}
		r.component.Unmount()
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, step.Action)
	}
}

func (r *runner) enqueue(index int, step Step) error {
	lane := updatequeue.DefaultLane
	if strings.TrimSpace(step.Lane) != "" {
		var err error
		if lane, err = updatequeue.ParseLanes(step.Lane); err != nil {
			return err
		}
	}

	u := updatequeue.NewUpdate[string](int64(index), lane, nil)
	switch strings.ToLower(strings.TrimSpace(step.Kind)) {
	case "", "set":
		u.WithFragment(step.Payload)
	case "replace":
		u.WithKind(updatequeue.ReplaceState).WithFragment(step.Payload)
	case "force":
		u.WithKind(updatequeue.ForceUpdate)
	case "props":
		// appends the props of the pass that applies it
		u.WithUpdater(func(prev string, props any) (string, bool) {
			text, ok := props.(string)
			return text, ok && text != ""
		})
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, step.Kind)
	}
	r.withCallback(u, step.Callback)

	r.component.Enqueue(u)
	return nil
}

func (r *runner) render(index int, step Step) error {
	lanes, err := updatequeue.ParseLanes(step.Lanes)
	if err != nil {
		return err
	}

	if r.pass != nil {
		r.close(OutcomeSuperseded)
	}

	r.pass = r.component.Render(lanes, step.Props)
	r.current = &PassReport{Step: index, Lanes: lanes, Outcome: OutcomeInFlight}
	r.report.Passes = append(r.report.Passes, r.current)
	r.snapshot()

	if step.Discard {
		r.close(OutcomeDiscarded)
	}
	return nil
}

func (r *runner) capture(index int, step Step) error {
	if r.pass == nil {
		return ErrNoPass
	}

	u := updatequeue.NewUpdate[string](int64(index), r.pass.Lanes().Highest(), nil).
		WithKind(updatequeue.CaptureUpdate).
		WithFragment(step.Payload)
	r.withCallback(u, step.Callback)

	if err := r.pass.Capture(u); err != nil {
		return err
	}
	r.snapshot()
	return nil
}

func (r *runner) commit(instance string) error {
	if r.pass == nil {
		return ErrNoPass
	}

	pass, report := r.pass, r.current
	r.pass, r.current = nil, nil
	r.fired = nil

	err := pass.Commit(instance)
	report.Outcome = OutcomeCommitted
	report.Callbacks = r.fired
	return err
}

func (r *runner) withCallback(u *updatequeue.Update[string], label string) {
	if label == "" {
		return
	}
	u.WithInstanceCallback(func(instance any) {
		fired := label
		if s, _ := instance.(string); s != "" {
			fired += "@" + s
		}
		r.fired = append(r.fired, fired)
	})
}

func (r *runner) snapshot() {
	p, report := r.pass, r.current
	report.State = p.State()
	report.RemainingLanes = p.RemainingLanes()
	report.Applied = p.Applied()
	report.Skipped = p.Skipped()
	report.ForceUpdate = p.ForceUpdate()
	report.DidCapture = p.DidCapture()
}

func (r *runner) close(outcome Outcome) {
	r.pass.Discard()
	r.current.Outcome = outcome
	r.pass, r.current = nil, nil
}

func (r *runner) finish() *Report {
	r.report.State = r.component.State()
	r.report.Pending = r.component.PendingLanes()
	r.report.Mounted = r.component.Mounted()
	return r.report
}
