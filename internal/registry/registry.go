// Package registry provides a catalog of playable game modes.
// Modes register themselves in init() functions, allowing the CLI, menu,
// and scoreboard to enumerate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// ModeInfo contains metadata about a registered game mode.
type ModeInfo struct {
	ID      string // stable identifier used for CLI commands and storage
	Title   string // human-readable name
	Tagline string // one-line description shown in menus
}

var (
	modes = make(map[string]ModeInfo)
	mu    sync.RWMutex
)

// Register adds a mode to the catalog.
// Panics if a mode with the same ID is already registered.
func Register(info ModeInfo) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	modes[info.ID] = info
}

// List returns all registered modes, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, info := range modes {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the mode with the given ID.
func Lookup(id string) (ModeInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := modes[id]
	if !ok {
		return ModeInfo{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return info, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}

// Title returns the display title for a mode ID, or the ID itself if the
// mode is not registered.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if info, ok := modes[id]; ok {
		return info.Title
	}
	return id
}
