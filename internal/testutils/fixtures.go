package testutils

import (
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/testutils/builders"
)

// Weapon names used by the shared fixtures
const (
	WeaponExoblade       = "Exoblade"
	WeaponArkOfTheCosmos = "Ark of the Cosmos"
	WeaponHeavenlyGale   = "Heavenly Gale"
	WeaponBrimstoneSword = "brimstone sword"
	WeaponEternity       = "Eternity"
)

// CreateTestWeapons returns a small mixed catalog with ids "1".."5".
// Names differ in case on purpose so sorting tests see mixed input.
func CreateTestWeapons() []*calamity.Weapon {
	return []*calamity.Weapon{
		builders.NewWeaponBuilder().WithID("1").WithName(WeaponExoblade).
			WithClass(calamity.ClassMelee).WithElement(calamity.ElementCosmic).WithRarity(calamity.RarityLegendary).
			WithDamage(180).WithCrit(19).WithAttacks(2).Build(),
		builders.NewWeaponBuilder().WithID("2").WithName(WeaponArkOfTheCosmos).
			WithClass(calamity.ClassMelee).WithElement(calamity.ElementCosmic).WithRarity(calamity.RarityEpic).
			WithDamage(150).WithCrit(18).WithAttacks(1).Build(),
		builders.NewWeaponBuilder().WithID("3").WithName(WeaponHeavenlyGale).
			WithClass(calamity.ClassRanged).WithElement(calamity.ElementWind).WithRarity(calamity.RarityLegendary).
			WithDamage(95).WithCrit(17).WithAttacks(3).WithRange(60).Build(),
		builders.NewWeaponBuilder().WithID("4").WithName(WeaponBrimstoneSword).
			WithClass(calamity.ClassMelee).WithElement(calamity.ElementBrimstone).WithRarity(calamity.RarityUncommon).
			WithDamage(30).WithCrit(20).WithAttacks(1).Build(),
		builders.NewWeaponBuilder().WithID("5").WithName(WeaponEternity).
			WithClass(calamity.ClassMage).WithElement(calamity.ElementCosmic).WithRarity(calamity.RarityLegendary).
			WithDamage(120).WithCrit(18).WithAttacks(1).WithRange(40).Build(),
	}
}
