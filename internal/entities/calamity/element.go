package calamity

import (
	"strings"
)

// Element is the damage element of a weapon
type Element string

// Elements
const (
	ElementNeutral     Element = "NEUTRAL"
	ElementFire        Element = "FIRE"
	ElementIce         Element = "ICE"
	ElementLightning   Element = "LIGHTNING"
	ElementEarth       Element = "EARTH"
	ElementWater       Element = "WATER"
	ElementWind        Element = "WIND"
	ElementNature      Element = "NATURE"
	ElementHoly        Element = "HOLY"
	ElementBrimstone   Element = "BRIMSTONE"
	ElementHolyFlames  Element = "HOLY_FLAMES"
	ElementShadowflame Element = "SHADOWFLAME"
	ElementAstral      Element = "ASTRAL"
	ElementPlague      Element = "PLAGUE"
	ElementGodSlayer   Element = "GOD_SLAYER"
	ElementSulphuric   Element = "SULPHURIC"
	ElementShadow      Element = "SHADOW"
	ElementBlood       Element = "BLOOD"
	ElementCrystal     Element = "CRYSTAL"
	ElementArcane      Element = "ARCANE"
	ElementElemental   Element = "ELEMENTAL"
	ElementCosmic      Element = "COSMIC"
	ElementTemporal    Element = "TEMPORAL"
	ElementAbyssal     Element = "ABYSSAL"
	ElementToxic       Element = "TOXIC"
	ElementOmni        Element = "OMNI"
	ElementMagic       Element = "MAGIC"
)

// ElementGroup is the origin family of an element
type ElementGroup string

// Element groups
const (
	GroupNeutral  ElementGroup = "neutral"
	GroupVanilla  ElementGroup = "vanilla"
	GroupCalamity ElementGroup = "calamity"
	GroupSpecial  ElementGroup = "special"
)

// ElementInfo describes an element for display
type ElementInfo struct {
	Element     Element
	DisplayName string
	Description string
	Color       string
	Group       ElementGroup
}

// elementTable is ordered the way the catalog lists elements
var elementTable = []ElementInfo{
	{ElementNeutral, "Neutral", "No special element. Pure damage.", "#808080", GroupNeutral},
	{ElementFire, "Fire", "Burns the target for damage over time.", "#FF6B35", GroupVanilla},
	{ElementIce, "Ice", "Chills targets and slows their movement.", "#4DB8FF", GroupVanilla},
	{ElementLightning, "Lightning", "Electric discharge that can arc to nearby enemies.", "#FFD700", GroupVanilla},
	{ElementEarth, "Earth", "Heavy blows that reduce movement.", "#8B4513", GroupVanilla},
	{ElementWater, "Water", "Aquatic damage, stronger in wet environments.", "#1E90FF", GroupVanilla},
	{ElementWind, "Wind", "Faster projectiles and high knockback.", "#87CEEB", GroupVanilla},
	{ElementNature, "Nature", "Light regeneration and plant growth.", "#228B22", GroupVanilla},
	{ElementHoly, "Holy", "Divine damage, strong against dark and demonic foes.", "#FFD700", GroupVanilla},
	{ElementBrimstone, "Brimstone", "Sulphurous fire with intense burning.", "#FF4500", GroupCalamity},
	{ElementHolyFlames, "Holy Flames", "Divine flames that purge corruption.", "#FFD700", GroupCalamity},
	{ElementShadowflame, "Shadowflame", "Dark flames that lower enemy defense.", "#2F4F4F", GroupCalamity},
	{ElementAstral, "Astral", "Starborne power that partly ignores defense.", "#9932CC", GroupCalamity},
	{ElementPlague, "Plague", "Virulent poison that spreads between enemies.", "#32CD32", GroupCalamity},
	{ElementGodSlayer, "God Slayer", "Cataclysmic power able to slay gods.", "#DC143C", GroupCalamity},
	{ElementSulphuric, "Sulphuric", "Acid that corrodes armor.", "#ADFF2F", GroupCalamity},
	{ElementShadow, "Shadow", "Obscure damage tied to the corruption.", "#2F2F2F", GroupSpecial},
	{ElementBlood, "Blood", "Causes bleeding and steals life.", "#8B0000", GroupSpecial},
	{ElementCrystal, "Crystal", "Ricocheting crystals with piercing magic damage.", "#00CED1", GroupSpecial},
	{ElementArcane, "Arcane", "Pure arcane magic.", "#7B68EE", GroupSpecial},
	{ElementElemental, "Elemental", "Fire, ice and lightning combined.", "#FF69B4", GroupSpecial},
	{ElementCosmic, "Cosmic", "Universal power beyond the normal elements.", "#4169E1", GroupSpecial},
	{ElementTemporal, "Temporal", "Time distortion that slows enemies.", "#00BFFF", GroupCalamity},
	{ElementAbyssal, "Abyssal", "Crushing pressure from the depths.", "#191970", GroupCalamity},
	{ElementToxic, "Toxic", "Poison cloud that weakens defenses.", "#00FF00", GroupSpecial},
	{ElementOmni, "Omni", "Every element at once.", "#FF1493", GroupSpecial},
	{ElementMagic, "Magic", "General magic damage without a specific element.", "#9370DB", GroupVanilla},
}

var elementIndex = func() map[Element]ElementInfo {
	idx := make(map[Element]ElementInfo, len(elementTable))
	for _, info := range elementTable {
		idx[info.Element] = info
	}
	return idx
}()

// Elements lists every element in catalog order
func Elements() []ElementInfo {
	out := make([]ElementInfo, len(elementTable))
	copy(out, elementTable)
	return out
}

// ParseElement resolves an element name, case-insensitive
func ParseElement(value string) (Element, bool) {
	e := Element(normalizeKey(value))
	if _, ok := elementIndex[e]; ok {
		return e, true
	}
	return "", false
}

// Info returns the display data for the element. Unknown elements describe themselves as neutral.
func (e Element) Info() ElementInfo {
	if info, ok := elementIndex[e]; ok {
		return info
	}
	info := elementIndex[ElementNeutral]
	info.Element = e
	return info
}

// IsSupreme reports the elements that combine with everything
func (e Element) IsSupreme() bool {
	return e == ElementCosmic || e == ElementOmni || e == ElementGodSlayer
}

// DamageBonus is the damage multiplier granted by the element's group
func (e Element) DamageBonus() float64 {
	switch {
	case e.IsSupreme():
		return 2.5
	case e.Info().Group == GroupCalamity:
		return 1.5
	case e.Info().Group == GroupVanilla:
		return 1.2
	default:
		return 1.0
	}
}

// String returns the wire form of the element
func (e Element) String() string {
	return string(e)
}

func normalizeKey(value string) string {
	key := strings.ToUpper(strings.TrimSpace(value))
	key = strings.ReplaceAll(key, "-", "_")
	return strings.ReplaceAll(key, " ", "_")
}
