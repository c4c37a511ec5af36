package calamity

// Rarity is the display tier of a weapon
type Rarity string

// Rarity tiers, lowest first
const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Rarities lists every tier, lowest first
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Rarity level bounds reported by the in-game rarity scale
const (
	MinRarityLevel = -1
	MaxRarityLevel = 17
)

// ParseRarity resolves a tier name, case-insensitive
func ParseRarity(value string) (Rarity, bool) {
	key := normalizeKey(value)
	for _, r := range Rarities {
		if string(r) == key {
			return r, true
		}
	}
	return "", false
}

// RarityFromLevel buckets an in-game rarity level into a tier
func RarityFromLevel(level int) Rarity {
	switch {
	case level <= 1:
		return RarityCommon
	case level <= 3:
		return RarityUncommon
	case level <= 6:
		return RarityRare
	case level <= 10:
		return RarityEpic
	default:
		return RarityLegendary
	}
}

// Rank orders tiers; unknown tiers rank below common
func (r Rarity) Rank() int {
	for i, candidate := range Rarities {
		if candidate == r {
			return i
		}
	}
	return -1
}

// String returns the wire form of the tier
func (r Rarity) String() string {
	return string(r)
}
