package postinstall

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Fixup)
	mu       sync.RWMutex
)

func Register(f Fixup) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[f.ID()]; exists {
		panic(fmt.Sprintf("fixup %s already registered", f.ID()))
	}
	registry[f.ID()] = f
}

func List() []Fixup {
	mu.RLock()
	defer mu.RUnlock()
	var fixups []Fixup
	for _, f := range registry {
		fixups = append(fixups, f)
	}
	sort.Slice(fixups, func(i, j int) bool {
		return fixups[i].ID() < fixups[j].ID()
	})
	return fixups
}

// Resolve selects fixups by comma-separated ID list; empty selects all.
func Resolve(selector string) ([]Fixup, error) {
	if selector == "" {
		return List(), nil
	}

	mu.RLock()
	defer mu.RUnlock()
	var selected []Fixup
	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		f, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("fixup not found: %s", id)
		}
		selected = append(selected, f)
	}
	return selected, nil
}
