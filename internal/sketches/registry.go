// Package sketches lists the sketches the spicy command can run.
package sketches

import (
	"fmt"
	"sort"

	"spicy/internal/sketch"
	"spicy/internal/sketches/dots"
	"spicy/internal/sketches/planets"
)

// Options are the command-level knobs passed to every sketch factory
type Options struct {
	AssetDir string
}

type Entry struct {
	Name     string
	Settings sketch.Settings
	Build    func(Options) sketch.Func
}

var registry = map[string]Entry{
	dots.Name: {
		Name:     dots.Name,
		Settings: dots.Settings,
		Build:    func(Options) sketch.Func { return dots.New },
	},
	planets.Name: {
		Name:     planets.Name,
		Settings: planets.Settings,
		Build: func(o Options) sketch.Func {
			return planets.Factory(o.AssetDir)
		},
	},
}

// Lookup returns the registered sketch called name
func Lookup(name string) (Entry, error) {
	e, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown sketch %q (available: %v)", name, Names())
	}
	return e, nil
}

// Names returns the registered sketch names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
