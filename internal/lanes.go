package internal

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Lanes is a priority bitmask. A single bit is a lane, several bits a set of lanes.
type Lanes uint32

const (
	NoLanes Lanes = 0
	NoLane  Lanes = 0
)

const (
	SyncLane Lanes = 1 << iota
	InputLane
	DefaultLane
	TransitionLane
	RetryLane
	IdleLane
	OffscreenLane
)

var laneNames = map[Lanes]string{
	SyncLane:       "sync",
	InputLane:      "input",
	DefaultLane:    "default",
	TransitionLane: "transition",
	RetryLane:      "retry",
	IdleLane:       "idle",
	OffscreenLane:  "offscreen",
}

// IsSubsetOfLanes reports whether every bit of subset is present in set.
// NoLane is a subset of every set.
func IsSubsetOfLanes(set, subset Lanes) bool {
	return set&subset == subset
}

func MergeLanes(a, b Lanes) Lanes {
	return a | b
}

func (l Lanes) Includes(subset Lanes) bool {
	return IsSubsetOfLanes(l, subset)
}

func (l Lanes) Empty() bool {
	return l == NoLanes
}

// Highest returns the most urgent (lowest) lane of the set.
func (l Lanes) Highest() Lanes {
	return l & -l
}

func (l Lanes) String() string {
	if l == NoLanes {
		return "none"
	}

	parts := make([]string, 0, bits.OnesCount32(uint32(l)))
	for rest := l; rest != 0; {
		lane := rest.Highest()
		rest &^= lane

		if name, ok := laneNames[lane]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("lane%d", bits.TrailingZeros32(uint32(lane))))
		}
	}

	return strings.Join(parts, "|")
}

// ParseLanes parses the String form of Lanes ("sync|default", "none").
func ParseLanes(s string) (Lanes, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return NoLanes, nil
	}

	var lanes Lanes
outer:
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		for lane, name := range laneNames {
			if name == part {
				lanes |= lane
				continue outer
			}
		}

		digits, ok := strings.CutPrefix(part, "lane")
		n, err := strconv.Atoi(digits)
		if !ok || err != nil || n < 0 || n > 31 {
			return NoLanes, fmt.Errorf("unknown lane %q", part)
		}
		lanes |= 1 << n
	}

	return lanes, nil
}
