package devserver

import (
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// record is one stored weapon plus the fields only the server tracks
type record struct {
	id          int64
	rarityLevel int
	weapon      calamity.Weapon
}

// store is the in-memory catalog. Records handed out are copies.
type store struct {
	mu      sync.RWMutex
	records map[int64]*record
	nextID  int64
}

func newStore() *store {
	return &store{records: make(map[int64]*record), nextID: 1}
}

func (s *store) list(match func(*record) bool) []*record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*record, 0, len(s.records))
	for _, r := range s.records {
		if match == nil || match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *store) get(id int64) (*record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	cp := *r
	return &cp, true
}

func (s *store) create(d *catalog.Draft, now time.Time) *record {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &record{id: s.nextID}
	s.nextID++
	fill(r, d)
	r.weapon.CreatedAt = now
	r.weapon.UpdatedAt = now
	s.records[r.id] = r

	cp := *r
	return &cp
}

// update applies change to a draft of the stored weapon; validate may reject the result
func (s *store) update(id int64, change func(*catalog.Draft) error, now time.Time) (*record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return nil, false, nil
	}

	d := toDraft(r)
	if err := change(d); err != nil {
		return nil, true, err
	}
	fill(r, d)
	r.weapon.UpdatedAt = now

	cp := *r
	return &cp, true, nil
}

func (s *store) delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

func fill(r *record, d *catalog.Draft) {
	level := d.RarityLevel
	r.rarityLevel = level
	r.weapon = calamity.Weapon{
		ID:          formatID(r.id),
		Name:        d.Name,
		Description: d.Description,
		Class:       d.Class,
		Element:     d.Element,
		Rarity:      calamity.RarityFromLevel(level),
		RarityLevel: &level,
		Stats:       d.Stats,
		Price:       d.Price,
		Quality:     d.Quality,
		Abilities:   d.Abilities,
		ImageURL:    d.ImageURL,
		CreatedAt:   r.weapon.CreatedAt,
		UpdatedAt:   r.weapon.UpdatedAt,
	}
}

func toDraft(r *record) *catalog.Draft {
	w := r.weapon
	return &catalog.Draft{
		Name:        w.Name,
		Description: w.Description,
		Class:       w.Class,
		Element:     w.Element,
		RarityLevel: r.rarityLevel,
		Stats:       w.Stats,
		Price:       w.Price,
		Quality:     w.Quality,
		Abilities:   w.Abilities,
		ImageURL:    w.ImageURL,
	}
}
