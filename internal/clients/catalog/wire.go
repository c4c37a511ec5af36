package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// Schema names a revision of the weapon payload served by the catalog API
type Schema string

// Schemas
const (
	// SchemaAuto picks the adapter from the keys present in each payload
	SchemaAuto Schema = ""
	// SchemaCurrent has a string id, tier rarity and baseDamage/criticalChance/attacksPerTurn/range
	SchemaCurrent Schema = "current"
	// SchemaRecord has a numeric id, a -1..17 rarity level and price/quality/abilities
	SchemaRecord Schema = "record"
	// SchemaLegacy has damage/critChance/speed/knockback and carries the class under "element"
	SchemaLegacy Schema = "legacy"
)

// ParseSchema resolves a schema name; empty means auto-detect
func ParseSchema(value string) (Schema, bool) {
	switch s := Schema(strings.ToLower(strings.TrimSpace(value))); s {
	case SchemaAuto, SchemaCurrent, SchemaRecord, SchemaLegacy:
		return s, true
	case "auto":
		return SchemaAuto, true
	}
	return "", false
}

type currentWeapon struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	WeaponClass    string  `json:"weaponClass"`
	Element        string  `json:"element"`
	Rarity         string  `json:"rarity"`
	BaseDamage     int     `json:"baseDamage"`
	CriticalChance int     `json:"criticalChance"`
	AttacksPerTurn float64 `json:"attacksPerTurn"`
	Range          int     `json:"range"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

type recordWeapon struct {
	ID             json.RawMessage `json:"id,omitempty"`
	Name           string          `json:"name"`
	WeaponClass    string          `json:"weaponClass"`
	Element        string          `json:"element"`
	BaseDamage     int             `json:"baseDamage"`
	CriticalChance int             `json:"criticalChance"`
	AttacksPerTurn float64         `json:"attacksPerTurn"`
	Range          int             `json:"range"`
	Rarity         int             `json:"rarity"`
	Price          int             `json:"price"`
	Quality        int             `json:"quality"`
	Abilities      string          `json:"abilities,omitempty"`
	Description    string          `json:"description,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	UpdatedAt      string          `json:"updatedAt,omitempty"`
}

type legacyWeapon struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Element     string          `json:"element"`
	Rarity      string          `json:"rarity"`
	Damage      int             `json:"damage"`
	CritChance  int             `json:"critChance"`
	Speed       float64         `json:"speed"`
	Knockback   float64         `json:"knockback"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type elementInfoWire struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Color       string `json:"color"`
	HasEffect   bool   `json:"hasEffect"`
	IsVanilla   bool   `json:"isVanilla"`
	IsCalamity  bool   `json:"isCalamity"`
	IsSupreme   bool   `json:"isSupreme"`
}

// detectSchema inspects payload keys. Legacy stat names win, then numeric ids or record-only
// fields, otherwise the current layout.
func detectSchema(fields map[string]json.RawMessage) Schema {
	for _, key := range []string{"damage", "critChance", "speed", "knockback"} {
		if _, ok := fields[key]; ok {
			return SchemaLegacy
		}
	}
	if isJSONNumber(fields["id"]) || isJSONNumber(fields["rarity"]) {
		return SchemaRecord
	}
	for _, key := range []string{"price", "quality", "abilities"} {
		if _, ok := fields[key]; ok {
			return SchemaRecord
		}
	}
	return SchemaCurrent
}

func isJSONNumber(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	c := trimmed[0]
	return c == '-' || (c >= '0' && c <= '9')
}

// decodeWeapon adapts one payload into the canonical Weapon
func decodeWeapon(raw json.RawMessage, pinned Schema) (*calamity.Weapon, error) {
	schema := pinned
	if schema == SchemaAuto {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode weapon: %w", err)
		}
		schema = detectSchema(fields)
	}

	switch schema {
	case SchemaRecord:
		var w recordWeapon
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("decode record weapon: %w", err)
		}
		return w.toEntity(), nil
	case SchemaLegacy:
		var w legacyWeapon
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("decode legacy weapon: %w", err)
		}
		return w.toEntity(), nil
	default:
		var w currentWeapon
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("decode weapon: %w", err)
		}
		return w.toEntity(), nil
	}
}

// decodeWeaponList accepts a bare array or a {"content": [...]} / {"data": [...]} envelope
func decodeWeaponList(body []byte, pinned Schema) ([]*calamity.Weapon, error) {
	items, err := unwrapList(body)
	if err != nil {
		return nil, err
	}

	weapons := make([]*calamity.Weapon, 0, len(items))
	for i, item := range items {
		w, err := decodeWeapon(item, pinned)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		weapons = append(weapons, w)
	}
	return weapons, nil
}

func unwrapList(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Content []json.RawMessage `json:"content"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if envelope.Content != nil {
		return envelope.Content, nil
	}
	return envelope.Data, nil
}

func (w *currentWeapon) toEntity() *calamity.Weapon {
	class, _ := calamity.ParseWeaponClass(w.WeaponClass)
	element := parseElementOrNeutral(w.Element)
	rarity, _ := calamity.ParseRarity(w.Rarity)

	return &calamity.Weapon{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Class:       class,
		Element:     element,
		Rarity:      rarity,
		Stats: calamity.Stats{
			BaseDamage:     w.BaseDamage,
			CriticalChance: w.CriticalChance,
			AttacksPerTurn: w.AttacksPerTurn,
			Range:          w.Range,
		},
		ImageURL:  w.ImageURL,
		CreatedAt: parseTimestamp(w.CreatedAt),
		UpdatedAt: parseTimestamp(w.UpdatedAt),
	}
}

func (w *recordWeapon) toEntity() *calamity.Weapon {
	class, _ := calamity.ParseWeaponClass(w.WeaponClass)
	level := w.Rarity

	return &calamity.Weapon{
		ID:          opaqueID(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Class:       class,
		Element:     parseElementOrNeutral(w.Element),
		Rarity:      calamity.RarityFromLevel(level),
		RarityLevel: &level,
		Stats: calamity.Stats{
			BaseDamage:     w.BaseDamage,
			CriticalChance: w.CriticalChance,
			AttacksPerTurn: w.AttacksPerTurn,
			Range:          w.Range,
		},
		Price:     w.Price,
		Quality:   w.Quality,
		Abilities: w.Abilities,
		ImageURL:  w.ImageURL,
		CreatedAt: parseTimestamp(w.CreatedAt),
		UpdatedAt: parseTimestamp(w.UpdatedAt),
	}
}

// toEntity maps the legacy layout. Its "element" field held the weapon class in practice,
// so a class name there is read as the class and anything else as the element.
func (w *legacyWeapon) toEntity() *calamity.Weapon {
	weapon := &calamity.Weapon{
		ID:          opaqueID(w.ID),
		Name:        w.Name,
		Description: w.Description,
		Element:     calamity.ElementNeutral,
		Stats: calamity.Stats{
			BaseDamage:     w.Damage,
			CriticalChance: w.CritChance,
			AttacksPerTurn: w.Speed,
			Knockback:      w.Knockback,
		},
		ImageURL: w.ImageURL,
	}

	if class, ok := calamity.ParseWeaponClass(w.Element); ok {
		weapon.Class = class
	} else if element, ok := calamity.ParseElement(w.Element); ok {
		weapon.Element = element
	}
	weapon.Rarity, _ = calamity.ParseRarity(w.Rarity)

	return weapon
}

func elementFromWire(w elementInfoWire) calamity.ElementInfo {
	element := calamity.Element(strings.ToUpper(w.Name))
	info := calamity.ElementInfo{
		Element:     element,
		DisplayName: w.DisplayName,
		Description: w.Description,
		Color:       w.Color,
	}
	switch {
	case w.IsVanilla:
		info.Group = calamity.GroupVanilla
	case w.IsCalamity:
		info.Group = calamity.GroupCalamity
	case w.IsSupreme:
		info.Group = calamity.GroupSpecial
	default:
		info.Group = element.Info().Group
	}
	return info
}

func elementToWire(info calamity.ElementInfo) elementInfoWire {
	return elementInfoWire{
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

// encodeDraft renders a create body in the pinned schema; auto sends the record layout
func encodeDraft(d *Draft, schema Schema) any {
	switch schema {
	case SchemaCurrent:
		return currentWeapon{
			Name:           d.Name,
			Description:    d.Description,
			WeaponClass:    string(d.Class),
			Element:        string(d.Element),
			Rarity:         string(calamity.RarityFromLevel(d.RarityLevel)),
			BaseDamage:     d.Stats.BaseDamage,
			CriticalChance: d.Stats.CriticalChance,
			AttacksPerTurn: d.Stats.AttacksPerTurn,
			Range:          d.Stats.Range,
			ImageURL:       d.ImageURL,
		}
	case SchemaLegacy:
		return legacyWeapon{
			Name:        d.Name,
			Description: d.Description,
			Element:     legacyClassName(d.Class),
			Rarity:      string(calamity.RarityFromLevel(d.RarityLevel)),
			Damage:      d.Stats.BaseDamage,
			CritChance:  d.Stats.CriticalChance,
			Speed:       d.Stats.AttacksPerTurn,
			Knockback:   d.Stats.Knockback,
			ImageURL:    d.ImageURL,
		}
	default:
		return recordWeapon{
			Name:           d.Name,
			WeaponClass:    string(d.Class),
			Element:        string(d.Element),
			BaseDamage:     d.Stats.BaseDamage,
			CriticalChance: d.Stats.CriticalChance,
			AttacksPerTurn: d.Stats.AttacksPerTurn,
			Range:          d.Stats.Range,
			Rarity:         d.RarityLevel,
			Price:          d.Price,
			Quality:        d.Quality,
			Abilities:      d.Abilities,
			Description:    d.Description,
			ImageURL:       d.ImageURL,
		}
	}
}

// encodePatch renders only the present fields, using the pinned schema's key names
func encodePatch(p *Patch, schema Schema) map[string]any {
	body := make(map[string]any)
	set := func(key string, present bool, value any) {
		if present {
			body[key] = value
		}
	}

	set("name", p.Name != nil, deref(p.Name))
	set("description", p.Description != nil, deref(p.Description))
	set("imageUrl", p.ImageURL != nil, deref(p.ImageURL))

	switch schema {
	case SchemaLegacy:
		if p.Class != nil {
			body["element"] = legacyClassName(*p.Class)
		}
		if p.RarityLevel != nil {
			body["rarity"] = string(calamity.RarityFromLevel(*p.RarityLevel))
		}
		set("damage", p.BaseDamage != nil, deref(p.BaseDamage))
		set("critChance", p.CriticalChance != nil, deref(p.CriticalChance))
		set("speed", p.AttacksPerTurn != nil, deref(p.AttacksPerTurn))
		set("knockback", p.Knockback != nil, deref(p.Knockback))
		return body
	case SchemaCurrent:
		if p.RarityLevel != nil {
			body["rarity"] = string(calamity.RarityFromLevel(*p.RarityLevel))
		}
	default:
		set("rarity", p.RarityLevel != nil, deref(p.RarityLevel))
		set("price", p.Price != nil, deref(p.Price))
		set("quality", p.Quality != nil, deref(p.Quality))
		set("abilities", p.Abilities != nil, deref(p.Abilities))
	}

	if p.Class != nil {
		body["weaponClass"] = string(*p.Class)
	}
	if p.Element != nil {
		body["element"] = string(*p.Element)
	}
	set("baseDamage", p.BaseDamage != nil, deref(p.BaseDamage))
	set("criticalChance", p.CriticalChance != nil, deref(p.CriticalChance))
	set("attacksPerTurn", p.AttacksPerTurn != nil, deref(p.AttacksPerTurn))
	set("range", p.Range != nil, deref(p.Range))
	return body
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// legacyClassName spells classes the way the legacy layout did
func legacyClassName(c calamity.WeaponClass) string {
	switch c {
	case calamity.ClassMage:
		return "MAGIC"
	case calamity.ClassSummon:
		return "SUMMONER"
	default:
		return string(c)
	}
}

func parseElementOrNeutral(value string) calamity.Element {
	if element, ok := calamity.ParseElement(value); ok {
		return element
	}
	return calamity.ElementNeutral
}

// opaqueID keeps string ids as-is and renders numeric ids in decimal
func opaqueID(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil && n == math.Trunc(n) {
		return fmt.Sprintf("%.0f", n)
	}
	return string(trimmed)
}

// timestampLayouts covers RFC 3339 and zone-less server-local timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
