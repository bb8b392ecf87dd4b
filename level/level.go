// Package level loads puzzle layouts from YAML
package level

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/liquid-sort/constants"
	"github.com/lixenwraith/liquid-sort/core"
)

// DefaultName is the built-in level used when no file is given
const DefaultName = "classic"

// ErrInvalidLevel wraps level validation failures
var ErrInvalidLevel = errors.New("invalid level")

// ErrUnknownLevel signals a built-in name that does not exist
var ErrUnknownLevel = errors.New("unknown level")

//go:embed levels/*.yaml
var builtin embed.FS

// Level is a puzzle layout: one bottom-to-top color list per container
type Level struct {
	Name       string         `yaml:"name"`
	Capacity   int            `yaml:"capacity,omitempty"`
	Containers [][]core.Color `yaml:"containers"`
}

// Parse decodes a level document, rejecting unknown fields
// A missing capacity takes defaultCapacity
func Parse(data []byte, defaultCapacity int) (Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var lvl Level
	if err := dec.Decode(&lvl); err != nil {
		return Level{}, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if lvl.Capacity == 0 {
		lvl.Capacity = defaultCapacity
	}
	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// LoadFile reads and validates a level file; an unnamed level is named after the file
func LoadFile(path string, defaultCapacity int) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(data, defaultCapacity)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", path, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return lvl, nil
}

// Builtin returns an embedded level by name
func Builtin(name string) (Level, error) {
	data, err := builtin.ReadFile("levels/" + name + ".yaml")
	if err != nil {
		return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
	return Parse(data, constants.DefaultCapacity)
}

// BuiltinNames lists the embedded levels in sorted order
func BuiltinNames() []string {
	entries, err := builtin.ReadDir("levels")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Validate checks the layout is playable: sizes fit and every color fills whole containers
func (l Level) Validate() error {
	if l.Capacity <= 0 {
		return fmt.Errorf("%w: capacity %d must be positive", ErrInvalidLevel, l.Capacity)
	}
	if n := len(l.Containers); n < 2 || n > constants.MaxContainers {
		return fmt.Errorf("%w: %d containers, want 2..%d", ErrInvalidLevel, n, constants.MaxContainers)
	}

	counts := make(map[core.Color]int)
	for i, stack := range l.Containers {
		if len(stack) > l.Capacity {
			return fmt.Errorf("%w: container %d holds %d, capacity %d", ErrInvalidLevel, i+1, len(stack), l.Capacity)
		}
		for _, c := range stack {
			if !c.Valid() {
				return fmt.Errorf("%w: container %d has invalid color %s", ErrInvalidLevel, i+1, c)
			}
			counts[c]++
		}
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w: no colors", ErrInvalidLevel)
	}

	colors := make([]core.Color, 0, len(counts))
	for c := range counts {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	for _, c := range colors {
		if counts[c]%l.Capacity != 0 {
			return fmt.Errorf("%w: %s has %d units, not a multiple of capacity %d", ErrInvalidLevel, c, counts[c], l.Capacity)
		}
	}
	return nil
}

// Initial returns a deep copy of the container colors
func (l Level) Initial() [][]core.Color {
	out := make([][]core.Color, len(l.Containers))
	for i, stack := range l.Containers {
		out[i] = append([]core.Color(nil), stack...)
	}
	return out
}

// Marshal encodes the level as YAML
func (l Level) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}
