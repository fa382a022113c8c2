// Package updatequeue is an incremental, priority-aware update log for
// component state. Updates are enqueued with a lane, folded into state by
// render passes that only include some lanes, and rebased so that the final
// state is the same whatever order the lanes are rendered in.
package updatequeue

import (
	"github.com/AnatoleLucet/updatequeue/internal"
	"github.com/joeycumines/logiface"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Lanes is a priority bitmask, see internal.Lanes.
type Lanes = internal.Lanes

const (
	NoLanes        = internal.NoLanes
	NoLane         = internal.NoLane
	SyncLane       = internal.SyncLane
	InputLane      = internal.InputLane
	DefaultLane    = internal.DefaultLane
	TransitionLane = internal.TransitionLane
	RetryLane      = internal.RetryLane
	IdleLane       = internal.IdleLane
	OffscreenLane  = internal.OffscreenLane
)

// ParseLanes parses "sync|default" style lane lists.
func ParseLanes(s string) (Lanes, error) { return internal.ParseLanes(s) }

type Kind = internal.UpdateKind

const (
	SetState      = internal.SetState
	ReplaceState  = internal.ReplaceState
	ForceUpdate   = internal.ForceUpdate
	CaptureUpdate = internal.CaptureUpdate
)

// Scheduler is told which updates a pass applied and which lanes it left behind.
type Scheduler = internal.Scheduler

// ErrInvalidCallback is returned by Commit when a callback is not a function.
var ErrInvalidCallback = internal.ErrInvalidCallback

type CallbackError = internal.CallbackError

// Update is one requested state mutation.
type Update[S any] struct {
	update *internal.Update
}

// NewUpdate creates a SetState update without payload.
func NewUpdate[S any](eventTime int64, lane Lanes, suspenseConfig any) *Update[S] {
	return &Update[S]{internal.CreateUpdate(eventTime, lane, suspenseConfig)}
}

// WithKind changes what the update does when applied.
func (u *Update[S]) WithKind(kind Kind) *Update[S] {
	u.update.Kind = kind
	return u
}

// WithFragment sets a literal payload, merged over (or replacing) the state.
func (u *Update[S]) WithFragment(fragment S) *Update[S] {
	u.update.Payload = internal.Fragment(fragment)
	return u
}

// WithUpdater sets a payload computed from the previous state and the props.
// Returning ok == false leaves the state unchanged.
func (u *Update[S]) WithUpdater(fn func(prev S, props any) (next S, ok bool)) *Update[S] {
	u.update.Payload = internal.Updater(func(prev, props, _ any) (any, bool) {
		return fn(as[S](prev), props)
	})
	return u
}

// WithInstanceUpdater is WithUpdater also receiving the instance bound to the
// component, see Component.Bind.
func (u *Update[S]) WithInstanceUpdater(fn func(prev S, props, instance any) (next S, ok bool)) *Update[S] {
	u.update.Payload = internal.Updater(func(prev, props, instance any) (any, bool) {
		return fn(as[S](prev), props, instance)
	})
	return u
}

// WithCallback runs fn once, after the pass that applied the update is committed.
func (u *Update[S]) WithCallback(fn func()) *Update[S] {
	if fn == nil {
		u.update.SetCallback(nil)
	} else {
		u.update.SetCallback(fn)
	}
	return u
}

// WithInstanceCallback is WithCallback receiving the instance passed to Commit.
func (u *Update[S]) WithInstanceCallback(fn func(instance any)) *Update[S] {
	if fn == nil {
		u.update.SetCallback(nil)
	} else {
		u.update.SetCallback(fn)
	}
	return u
}

func (u *Update[S]) Lane() Lanes { return u.update.Lane }

func (u *Update[S]) Kind() Kind { return u.update.Kind }

func (u *Update[S]) EventTime() int64 { return u.update.EventTime }

func (u *Update[S]) SuspenseConfig() any { return u.update.SuspenseConfig }

// Option configures a Component.
type Option interface {
	apply(*internal.Config)
}

type optionFunc func(*internal.Config)

func (f optionFunc) apply(c *internal.Config) { f(c) }

// WithLogger logs queue activity, a nil logger disables logging.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return optionFunc(func(c *internal.Config) { c.Logger = logger })
}

// WithScheduler reports applied event times and skipped lanes to s.
func WithScheduler(s Scheduler) Option {
	return optionFunc(func(c *internal.Config) { c.Scheduler = s })
}

// WithMerge sets how a SetState fragment is folded over the previous state.
// By default map[string]any states are merged key by key and anything else is replaced.
func WithMerge[S any](merge func(prev, fragment S) S) Option {
	return optionFunc(func(c *internal.Config) {
		if merge == nil {
			c.Merge = nil
			return
		}
		c.Merge = func(prev, fragment any) any {
			return merge(as[S](prev), as[S](fragment))
		}
	})
}

// WithStrictMode invokes every updater twice and keeps the second result,
// which makes updaters with side effects visible.
func WithStrictMode(enabled bool) Option {
	return optionFunc(func(c *internal.Config) { c.StrictMode = enabled })
}

func resolveOptions(opts []Option) *internal.Config {
	config := &internal.Config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(config)
	}
	return config
}

// ResetForceUpdateFlag clears the force-update flag of the calling goroutine.
func ResetForceUpdateFlag() {
	internal.GetRuntime().ResetForceUpdate()
}

// ReadForceUpdateFlag reports whether the last pass run by the calling
// goroutine applied a ForceUpdate. Pass.ForceUpdate carries the same value.
func ReadForceUpdateFlag() bool {
	return internal.GetRuntime().HasForceUpdate()
}

// Release drops the per-goroutine state kept for the calling goroutine.
func Release() {
	internal.ReleaseRuntime()
}
