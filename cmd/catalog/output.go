package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

type weaponJSON struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Class          string  `json:"class"`
	Element        string  `json:"element"`
	Rarity         string  `json:"rarity"`
	RarityLevel    *int    `json:"rarityLevel,omitempty"`
	BaseDamage     int     `json:"baseDamage"`
	CriticalChance int     `json:"criticalChance"`
	AttacksPerTurn float64 `json:"attacksPerTurn"`
	Range          int     `json:"range"`
	Knockback      float64 `json:"knockback,omitempty"`
	Price          int     `json:"price,omitempty"`
	Quality        int     `json:"quality,omitempty"`
	Abilities      string  `json:"abilities,omitempty"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

type elementJSON struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Group       string  `json:"group"`
	DamageBonus float64 `json:"damageBonus"`
}

func toWeaponJSON(w *calamity.Weapon) weaponJSON {
	return weaponJSON{
		ID:             w.ID,
		Name:           w.Name,
		Description:    w.Description,
		Class:          string(w.Class),
		Element:        string(w.Element),
		Rarity:         string(w.Rarity),
		RarityLevel:    w.RarityLevel,
		BaseDamage:     w.Stats.BaseDamage,
		CriticalChance: w.Stats.CriticalChance,
		AttacksPerTurn: w.Stats.AttacksPerTurn,
		Range:          w.Stats.Range,
		Knockback:      w.Stats.Knockback,
		Price:          w.Price,
		Quality:        w.Quality,
		Abilities:      w.Abilities,
		ImageURL:       w.ImageURL,
		CreatedAt:      formatTime(w.CreatedAt),
		UpdatedAt:      formatTime(w.UpdatedAt),
	}
}

func weaponsJSON(weapons []*calamity.Weapon) []weaponJSON {
	out := make([]weaponJSON, 0, len(weapons))
	for _, w := range weapons {
		out = append(out, toWeaponJSON(w))
	}
	return out
}

func elementsJSON(elements []calamity.ElementInfo) []elementJSON {
	out := make([]elementJSON, 0, len(elements))
	for _, info := range elements {
		out = append(out, elementJSON{
			Name:        string(info.Element),
			DisplayName: info.DisplayName,
			Description: info.Description,
			Color:       info.Color,
			Group:       string(info.Group),
			DamageBonus: info.Element.DamageBonus(),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
