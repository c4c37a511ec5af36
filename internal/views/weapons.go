// Package views turns catalog reads into terminal output. Each view owns one fetch controller.
package views

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
	"github.com/KirkDiggler/calamity-catalog/internal/fetch"
)

// SortBy orders the visible weapons
type SortBy string

// Sort orders
const (
	SortByName   SortBy = "name"
	SortByDamage SortBy = "damage"
)

// ParseSortBy accepts "" as name order
func ParseSortBy(value string) (SortBy, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "name":
		return SortByName, true
	case "damage":
		return SortByDamage, true
	}
	return "", false
}

// Filter narrows the loaded weapons locally. Zero values match everything.
type Filter struct {
	Class   calamity.WeaponClass
	Rarity  calamity.Rarity
	Element calamity.Element
	// Search is a case-insensitive substring of the name
	Search string
	SortBy SortBy
}

// Apply returns the matching weapons in sort order. The input slice is not modified.
func (f Filter) Apply(weapons []*calamity.Weapon) []*calamity.Weapon {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]*calamity.Weapon, 0, len(weapons))
	for _, w := range weapons {
		if w == nil {
			continue
		}
		if f.Class != "" && w.Class != f.Class {
			continue
		}
		if f.Rarity != "" && w.Rarity != f.Rarity {
			continue
		}
		if f.Element != "" && w.Element != f.Element {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(w.Name), search) {
			continue
		}
		out = append(out, w)
	}

	switch f.SortBy {
	case SortByDamage:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Stats.BaseDamage > out[j].Stats.BaseDamage
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

// WeaponsConfig configures a WeaponsView
type WeaponsConfig struct {
	// Load produces the weapon list, usually a catalog.Client list method
	Load   fetch.Producer[[]*calamity.Weapon]
	Fetch  *fetch.Config
	Filter Filter
}

// Validate validates the config
func (cfg *WeaponsConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Load == nil {
		vb.RequiredField("Load")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.Fetch == nil {
		cfg.Fetch = &fetch.Config{}
	}
	if cfg.Fetch.Name == "" {
		cfg.Fetch.Name = "weapons"
	}
	if cfg.Filter.SortBy == "" {
		cfg.Filter.SortBy = SortByName
	}
	return nil
}

// WeaponsView is the weapon list page
type WeaponsView struct {
	ctrl *fetch.Controller[[]*calamity.Weapon]

	mu     sync.RWMutex
	filter Filter
}

// NewWeaponsView starts loading unless the fetch config skips it
func NewWeaponsView(cfg *WeaponsConfig) (*WeaponsView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid weapons view config")
	}

	ctrl, err := fetch.New(cfg.Load, cfg.Fetch)
	if err != nil {
		return nil, err
	}
	return &WeaponsView{ctrl: ctrl, filter: cfg.Filter}, nil
}

// State is the raw fetch state
func (v *WeaponsView) State() fetch.State[[]*calamity.Weapon] {
	return v.ctrl.State()
}

// Wait blocks until the list has loaded or failed for good
func (v *WeaponsView) Wait(ctx context.Context) (fetch.State[[]*calamity.Weapon], error) {
	return v.ctrl.Wait(ctx)
}

// Subscribe registers fn for every state change; call the returned func to stop
func (v *WeaponsView) Subscribe(fn func(fetch.State[[]*calamity.Weapon])) func() {
	return v.ctrl.Subscribe(fn)
}

// Refetch reloads the list
func (v *WeaponsView) Refetch() {
	v.ctrl.Refetch()
}

// Close stops the view's controller
func (v *WeaponsView) Close() {
	v.ctrl.Close()
}

// Filter returns the active filter
func (v *WeaponsView) Filter() Filter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// SetFilter replaces the active filter without refetching
func (v *WeaponsView) SetFilter(f Filter) {
	if f.SortBy == "" {
		f.SortBy = SortByName
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = f
}

// Visible returns the loaded weapons that pass the filter; nil until the list has loaded
func (v *WeaponsView) Visible() []*calamity.Weapon {
	state := v.ctrl.State()
	if !state.HasValue {
		return nil
	}
	return v.Filter().Apply(state.Value)
}

// Suggest returns up to limit loaded names close to term, nearest first
func (v *WeaponsView) Suggest(term string, limit int) []string {
	state := v.ctrl.State()
	if !state.HasValue {
		return nil
	}
	return suggestNames(state.Value, term, limit)
}

type suggestion struct {
	name     string
	distance int
}

func suggestNames(weapons []*calamity.Weapon, term string, limit int) []string {
	compare := strings.ToLower(strings.TrimSpace(term))
	if compare == "" || limit <= 0 {
		return nil
	}
	threshold := levenshteinLimit(compare)

	seen := make(map[string]bool)
	var matches []suggestion
	for _, w := range weapons {
		if w == nil || seen[w.Name] {
			continue
		}
		seen[w.Name] = true

		name := strings.ToLower(w.Name)
		best := levenshtein.ComputeDistance(compare, name)
		// Compare against each word so "ark" can find "Ark of the Cosmos"
		for _, word := range strings.Fields(name) {
			if d := levenshtein.ComputeDistance(compare, word); d < best {
				best = d
			}
		}
		if best <= threshold {
			matches = append(matches, suggestion{name: w.Name, distance: best})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.name)
	}
	return names
}

func levenshteinLimit(term string) int {
	switch n := len(term); {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
