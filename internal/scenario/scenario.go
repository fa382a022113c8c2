// Package scenario replays a scripted sequence of enqueues and render passes
// against a text component and reports what every pass produced.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Scenario is a named script run against a component whose state is a string.
// A set update appends its payload, a replace update swaps the whole text.
type Scenario struct {
	Name    string `toml:"name" yaml:"name"`
	Initial string `toml:"initial" yaml:"initial"`
	Strict  bool   `toml:"strict" yaml:"strict"`
	Steps   []Step `toml:"steps" yaml:"steps"`
}

// Step is one scripted action. Which fields are read depends on Action:
//
//	enqueue  lane, kind, payload, callback
//	render   lanes, props, discard
//	capture  payload, callback
//	commit   instance
//	discard
//	unmount
type Step struct {
	Action   string `toml:"action" yaml:"action"`
	Lane     string `toml:"lane,omitempty" yaml:"lane,omitempty"`
	Lanes    string `toml:"lanes,omitempty" yaml:"lanes,omitempty"`
	Kind     string `toml:"kind,omitempty" yaml:"kind,omitempty"`
	Payload  string `toml:"payload,omitempty" yaml:"payload,omitempty"`
	Callback string `toml:"callback,omitempty" yaml:"callback,omitempty"`
	Props    string `toml:"props,omitempty" yaml:"props,omitempty"`
	Instance string `toml:"instance,omitempty" yaml:"instance,omitempty"`
	Discard  bool   `toml:"discard,omitempty" yaml:"discard,omitempty"`
}

const (
	ActionEnqueue = "enqueue"
	ActionRender  = "render"
	ActionCapture = "capture"
	ActionCommit  = "commit"
	ActionDiscard = "discard"
	ActionUnmount = "unmount"
)

var ErrUnknownFormat = errors.New("unknown scenario format")

// Load reads a scenario file, decoding it as TOML or YAML by extension.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	s, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Scenario{}, err
	}
	if strings.TrimSpace(s.Name) == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml").
func Parse(data []byte, ext string) (Scenario, error) {
	var (
		s   Scenario
		err error
	)

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		err = toml.Unmarshal(data, &s)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}

	for i := range s.Steps {
		s.Steps[i].Action = strings.ToLower(strings.TrimSpace(s.Steps[i].Action))
	}
	return s, nil
}
