package devserver

import (
	"github.com/KirkDiggler/calamity-catalog/internal/clients/catalog"
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

// Fixtures is the catalog a fresh dev server starts with
func Fixtures() []*catalog.Draft {
	return []*catalog.Draft{
		{
			Name:        "Murasama",
			Description: "A cursed blade that hungers for the blood of gods.",
			Class:       calamity.ClassMelee,
			Element:     calamity.ElementBlood,
			RarityLevel: 15,
			Stats:       calamity.Stats{BaseDamage: 160, CriticalChance: 18, AttacksPerTurn: 3, Range: 5, Knockback: 6.5},
			Price:       2400,
			Quality:     9,
			Abilities:   "Each hit heals for a fraction of the damage dealt.",
		},
		{
			Name:        "Exoblade",
			Description: "Forged from the remnants of the Exo Mechs.",
			Class:       calamity.ClassMelee,
			Element:     calamity.ElementCosmic,
			RarityLevel: 17,
			Stats:       calamity.Stats{BaseDamage: 190, CriticalChance: 19, AttacksPerTurn: 2, Range: 10, Knockback: 9},
			Price:       5000,
			Quality:     10,
			Abilities:   "Dashing strikes reset the swing.",
		},
		{
			Name:        "Heavenly Gale",
			Description: "A longbow that looses storms of arrows.",
			Class:       calamity.ClassRanged,
			Element:     calamity.ElementWind,
			RarityLevel: 16,
			Stats:       calamity.Stats{BaseDamage: 95, CriticalChance: 17, AttacksPerTurn: 3, Range: 60, Knockback: 2},
			Price:       3800,
			Quality:     9,
		},
		{
			Name:        "Eternity",
			Description: "A tome that rewrites the fate of whatever it targets.",
			Class:       calamity.ClassMage,
			Element:     calamity.ElementTemporal,
			RarityLevel: 16,
			Stats:       calamity.Stats{BaseDamage: 120, CriticalChance: 18, AttacksPerTurn: 1, Range: 40},
			Price:       4200,
			Quality:     10,
		},
		{
			Name:        "Cosmic Immaterializer",
			Description: "Summons a phantom that fires cosmic bolts.",
			Class:       calamity.ClassSummon,
			Element:     calamity.ElementAstral,
			RarityLevel: 16,
			Stats:       calamity.Stats{BaseDamage: 80, CriticalChance: 16, AttacksPerTurn: 2, Range: 30, Knockback: 1},
			Price:       3600,
			Quality:     8,
		},
		{
			Name:        "Celestus",
			Description: "A scythe thrown in a wide arc.",
			Class:       calamity.ClassRogue,
			Element:     calamity.ElementShadow,
			RarityLevel: 15,
			Stats:       calamity.Stats{BaseDamage: 110, CriticalChance: 17, AttacksPerTurn: 2, Range: 25, Knockback: 4},
			Price:       3000,
			Quality:     8,
		},
		{
			Name:        "Brimstone Sword",
			Description: "Sears targets with brimstone fire.",
			Class:       calamity.ClassMelee,
			Element:     calamity.ElementBrimstone,
			RarityLevel: 5,
			Stats:       calamity.Stats{BaseDamage: 30, CriticalChance: 12, AttacksPerTurn: 1, Range: 4, Knockback: 5},
			Price:       200,
			Quality:     4,
		},
		{
			Name:        "Wulfrum Blade",
			Description: "A scrap-metal sword for new adventurers.",
			Class:       calamity.ClassMelee,
			Element:     calamity.ElementNeutral,
			RarityLevel: 1,
			Stats:       calamity.Stats{BaseDamage: 8, CriticalChance: 4, AttacksPerTurn: 1, Range: 3, Knockback: 4},
			Price:       10,
			Quality:     1,
		},
	}
}
