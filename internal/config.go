package internal

import (
	"maps"

	"github.com/joeycumines/logiface"
)

// Scheduler receives what a processing pass learned about the work it did and skipped.
type Scheduler interface {
	// MarkRenderEventTimeAndConfig is called for every update applied by a pass.
	MarkRenderEventTimeAndConfig(eventTime int64, suspenseConfig any)

	// MarkSkippedUpdateLanes is called once per pass with the lanes left unprocessed.
	MarkSkippedUpdateLanes(lanes Lanes)
}

// MergeFunc folds a partial state fragment over the previous state.
type MergeFunc func(prev, fragment any) any

// Config is shared by a queue and every clone of it.
type Config struct {
	Logger     *logiface.Logger[logiface.Event]
	Scheduler  Scheduler
	Merge      MergeFunc
	StrictMode bool
}

func (c *Config) logger() *logiface.Logger[logiface.Event] {
	if c == nil {
		return nil
	}
	return c.Logger
}

func (c *Config) scheduler() Scheduler {
	if c == nil {
		return nil
	}
	return c.Scheduler
}

func (c *Config) strict() bool {
	return c != nil && c.StrictMode
}

func (c *Config) merge(prev, fragment any) any {
	if c != nil && c.Merge != nil {
		return c.Merge(prev, fragment)
	}
	return ShallowMerge(prev, fragment)
}

// ShallowMerge copies the keys of a map[string]any fragment over prev into a new map.
// Any other state type is replaced by the fragment.
func ShallowMerge(prev, fragment any) any {
	next, ok := fragment.(map[string]any)
	if !ok {
		return fragment
	}
	if next == nil {
		return prev
	}

	base, _ := prev.(map[string]any)
	merged := make(map[string]any, len(base)+len(next))
	maps.Copy(merged, base)
	maps.Copy(merged, next)

	return merged
}
