package internal

import (
	"fmt"
	"reflect"
)

type UpdateKind uint8

const (
	SetState UpdateKind = iota
	ReplaceState
	ForceUpdate
	CaptureUpdate
)

func (k UpdateKind) String() string {
	switch k {
	case SetState:
		return "set"
	case ReplaceState:
		return "replace"
	case ForceUpdate:
		return "force"
	case CaptureUpdate:
		return "capture"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// UpdaterFunc derives a state fragment from the previous state, the props and
// the component instance. Returning ok == false is the null fragment.
type UpdaterFunc func(prev, props, instance any) (next any, ok bool)

type payloadKind uint8

const (
	payloadNone payloadKind = iota
	payloadFragment
	payloadUpdater
)

// Payload is either a literal fragment or an updater function, fixed when the update is built.
type Payload struct {
	kind     payloadKind
	fragment any
	updater  UpdaterFunc
}

func Fragment(v any) Payload {
	return Payload{kind: payloadFragment, fragment: v}
}

func Updater(fn UpdaterFunc) Payload {
	if fn == nil {
		return Payload{}
	}
	return Payload{kind: payloadUpdater, updater: fn}
}

func (p Payload) IsZero() bool {
	return p.kind == payloadNone
}

// resolve returns the fragment for prev, ok is false for the null fragment.
func (p Payload) resolve(prev, props, instance any, strict bool) (any, bool) {
	switch p.kind {
	case payloadFragment:
		return p.fragment, !isNull(p.fragment)
	case payloadUpdater:
		if strict {
			// the first result is thrown away, an impure updater shows up as a diverging state
			p.updater(prev, props, instance)
		}
		next, ok := p.updater(prev, props, instance)
		return next, ok && !isNull(next)
	default:
		return nil, false
	}
}

// isNull reports a nil interface or a nil pointer, slice, map, chan or func
// stored in one.
func isNull(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// callbackCell is shared by an update and every clone made from it, so a
// callback cleared at commit can never fire again through a clone.
type callbackCell struct {
	fn any
}

type Update struct {
	EventTime      int64
	Lane           Lanes
	SuspenseConfig any

	Kind    UpdateKind
	Payload Payload

	callback *callbackCell

	// circular while in the pending ring, nil terminated once in a base list
	next *Update
}

func CreateUpdate(eventTime int64, lane Lanes, suspenseConfig any) *Update {
	return &Update{
		EventTime:      eventTime,
		Lane:           lane,
		SuspenseConfig: suspenseConfig,
		Kind:           SetState,
	}
}

// SetCallback attaches the function run after the update is committed.
// Anything other than func() or func(instance any) fails the commit with ErrInvalidCallback.
func (u *Update) SetCallback(fn any) {
	if fn == nil {
		u.callback = nil
		return
	}
	u.callback = &callbackCell{fn: fn}
}

func (u *Update) Callback() any {
	if u.callback == nil {
		return nil
	}
	return u.callback.fn
}

func (u *Update) HasCallback() bool {
	return u.callback != nil && u.callback.fn != nil
}

func (u *Update) Next() *Update {
	return u.next
}

func (u *Update) clone() *Update {
	return &Update{
		EventTime:      u.EventTime,
		Lane:           u.Lane,
		SuspenseConfig: u.SuspenseConfig,
		Kind:           u.Kind,
		Payload:        u.Payload,
		callback:       u.callback,
	}
}
