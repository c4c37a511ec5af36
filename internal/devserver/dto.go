package devserver

import (
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// weaponDTO is the response body for one weapon, in the backend's record layout
type weaponDTO struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	WeaponClass    string  `json:"weaponClass"`
	Element        string  `json:"element"`
	BaseDamage     int     `json:"baseDamage"`
	CriticalChance int     `json:"criticalChance"`
	AttacksPerTurn float64 `json:"attacksPerTurn"`
	Range          int     `json:"range"`
	Rarity         int     `json:"rarity"`
	Price          int     `json:"price"`
	Quality        int     `json:"quality"`
	Abilities      string  `json:"abilities,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// createDTO is the POST body
type createDTO struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	WeaponClass    string  `json:"weaponClass"`
	Element        string  `json:"element"`
	BaseDamage     int     `json:"baseDamage"`
	CriticalChance int     `json:"criticalChance"`
	AttacksPerTurn float64 `json:"attacksPerTurn"`
	Range          int     `json:"range"`
	Rarity         int     `json:"rarity"`
	Price          int     `json:"price"`
	Quality        int     `json:"quality"`
	Abilities      string  `json:"abilities"`
	ImageURL       string  `json:"imageUrl"`
}

// updateDTO is the PUT body; absent keys leave the stored value alone
type updateDTO struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	WeaponClass    *string  `json:"weaponClass"`
	Element        *string  `json:"element"`
	BaseDamage     *int     `json:"baseDamage"`
	CriticalChance *int     `json:"criticalChance"`
	AttacksPerTurn *float64 `json:"attacksPerTurn"`
	Range          *int     `json:"range"`
	Rarity         *int     `json:"rarity"`
	Price          *int     `json:"price"`
	Quality        *int     `json:"quality"`
	Abilities      *string  `json:"abilities"`
	ImageURL       *string  `json:"imageUrl"`
}

type elementDTO struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Color       string `json:"color"`
	HasEffect   bool   `json:"hasEffect"`
	IsVanilla   bool   `json:"isVanilla"`
	IsCalamity  bool   `json:"isCalamity"`
	IsSupreme   bool   `json:"isSupreme"`
}

// errorBody matches the catalog API error payload
type errorBody struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

func toWeaponDTO(r *record) weaponDTO {
	w := r.weapon
	return weaponDTO{
		ID:             r.id,
		Name:           w.Name,
		Description:    w.Description,
		WeaponClass:    string(w.Class),
		Element:        string(w.Element),
		BaseDamage:     w.Stats.BaseDamage,
		CriticalChance: w.Stats.CriticalChance,
		AttacksPerTurn: w.Stats.AttacksPerTurn,
		Range:          w.Stats.Range,
		Rarity:         r.rarityLevel,
		Price:          w.Price,
		Quality:        w.Quality,
		Abilities:      w.Abilities,
		ImageURL:       w.ImageURL,
		CreatedAt:      w.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toWeaponDTOs(records []*record) []weaponDTO {
	out := make([]weaponDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toWeaponDTO(r))
	}
	return out
}

func toElementDTO(info calamity.ElementInfo) elementDTO {
	return elementDTO{
		Name:        string(info.Element),
		DisplayName: info.DisplayName,
		Description: info.Description,
		Color:       info.Color,
		HasEffect:   info.Element != calamity.ElementNeutral,
		IsVanilla:   info.Group == calamity.GroupVanilla,
		IsCalamity:  info.Group == calamity.GroupCalamity,
		IsSupreme:   info.Element.IsSupreme(),
	}
}

// draft normalizes class and element spellings and reuses the client-side create rules
func (d createDTO) draft() *catalog.Draft {
	return &catalog.Draft{
		Name:        d.Name,
		Description: d.Description,
		Class:       normalizeClass(d.WeaponClass),
		Element:     normalizeElement(d.Element),
		RarityLevel: d.Rarity,
		Stats: calamity.Stats{
			BaseDamage:     d.BaseDamage,
			CriticalChance: d.CriticalChance,
			AttacksPerTurn: d.AttacksPerTurn,
			Range:          d.Range,
		},
		Price:     d.Price,
		Quality:   d.Quality,
		Abilities: d.Abilities,
		ImageURL:  d.ImageURL,
	}
}

// apply overlays the present fields onto a draft of the stored weapon
func (u updateDTO) apply(d *catalog.Draft) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.WeaponClass != nil {
		d.Class = normalizeClass(*u.WeaponClass)
	}
	if u.Element != nil {
		d.Element = normalizeElement(*u.Element)
	}
	if u.BaseDamage != nil {
		d.Stats.BaseDamage = *u.BaseDamage
	}
	if u.CriticalChance != nil {
		d.Stats.CriticalChance = *u.CriticalChance
	}
	if u.AttacksPerTurn != nil {
		d.Stats.AttacksPerTurn = *u.AttacksPerTurn
	}
	if u.Range != nil {
		d.Stats.Range = *u.Range
	}
	if u.Rarity != nil {
		d.RarityLevel = *u.Rarity
	}
	if u.Price != nil {
		d.Price = *u.Price
	}
	if u.Quality != nil {
		d.Quality = *u.Quality
	}
	if u.Abilities != nil {
		d.Abilities = *u.Abilities
	}
	if u.ImageURL != nil {
		d.ImageURL = *u.ImageURL
	}
}

func normalizeClass(value string) calamity.WeaponClass {
	if class, ok := calamity.ParseWeaponClass(value); ok {
		return class
	}
	return calamity.WeaponClass(value)
}

func normalizeElement(value string) calamity.Element {
	if element, ok := calamity.ParseElement(value); ok {
		return element
	}
	return calamity.Element(value)
}
