package catalog

import (
	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

// Draft is a new weapon submitted to the catalog
type Draft struct {
	Name        string
	Description string
	Class       calamity.WeaponClass
	Element     calamity.Element
	// RarityLevel is the in-game -1..17 rarity; the tier is derived from it
	RarityLevel int
	Stats       calamity.Stats
	Price       int
	Quality     int
	Abilities   string
	ImageURL    string
}

// Validate checks the draft against the catalog's create constraints
func (d *Draft) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("Name", d.Name, vb)
	if _, ok := calamity.ParseWeaponClass(string(d.Class)); !ok {
		vb.InvalidField("Class", "unknown weapon class "+string(d.Class))
	}
	if _, ok := calamity.ParseElement(string(d.Element)); !ok {
		vb.InvalidField("Element", "unknown element "+string(d.Element))
	}
	errors.ValidateRange("RarityLevel", d.RarityLevel, calamity.MinRarityLevel, calamity.MaxRarityLevel, vb)
	if d.Stats.BaseDamage < 1 {
		vb.Field("BaseDamage", "must be at least 1")
	}
	errors.ValidateRange("CriticalChance", d.Stats.CriticalChance, 1, 20, vb)
	if d.Stats.AttacksPerTurn < 1 {
		vb.Field("AttacksPerTurn", "must be at least 1")
	}
	errors.ValidateNonNegative("Range", d.Stats.Range, vb)
	errors.ValidateNonNegative("Price", d.Price, vb)
	errors.ValidateRange("Quality", d.Quality, 0, 10, vb)

	return vb.Build()
}

// Patch is a partial update; nil fields are left unchanged
type Patch struct {
	Name           *string
	Description    *string
	Class          *calamity.WeaponClass
	Element        *calamity.Element
	RarityLevel    *int
	BaseDamage     *int
	CriticalChance *int
	AttacksPerTurn *float64
	Range          *int
	Knockback      *float64
	Price          *int
	Quality        *int
	Abilities      *string
	ImageURL       *string
}

// IsEmpty reports whether the patch changes nothing
func (p *Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Class == nil && p.Element == nil &&
		p.RarityLevel == nil && p.BaseDamage == nil && p.CriticalChance == nil &&
		p.AttacksPerTurn == nil && p.Range == nil && p.Knockback == nil && p.Price == nil &&
		p.Quality == nil && p.Abilities == nil && p.ImageURL == nil
}

// Validate checks the fields that are present
func (p *Patch) Validate() error {
	vb := errors.NewValidationBuilder()

	if p.Name != nil {
		errors.ValidateRequired("Name", *p.Name, vb)
	}
	if p.Class != nil {
		if _, ok := calamity.ParseWeaponClass(string(*p.Class)); !ok {
			vb.InvalidField("Class", "unknown weapon class "+string(*p.Class))
		}
	}
	if p.Element != nil {
		if _, ok := calamity.ParseElement(string(*p.Element)); !ok {
			vb.InvalidField("Element", "unknown element "+string(*p.Element))
		}
	}
	if p.RarityLevel != nil {
		errors.ValidateRange("RarityLevel", *p.RarityLevel, calamity.MinRarityLevel, calamity.MaxRarityLevel, vb)
	}
	if p.BaseDamage != nil && *p.BaseDamage < 1 {
		vb.Field("BaseDamage", "must be at least 1")
	}
	if p.CriticalChance != nil {
		errors.ValidateRange("CriticalChance", *p.CriticalChance, 1, 20, vb)
	}
	if p.AttacksPerTurn != nil && *p.AttacksPerTurn < 1 {
		vb.Field("AttacksPerTurn", "must be at least 1")
	}
	if p.Range != nil {
		errors.ValidateNonNegative("Range", *p.Range, vb)
	}
	if p.Price != nil {
		errors.ValidateNonNegative("Price", *p.Price, vb)
	}
	if p.Quality != nil {
		errors.ValidateRange("Quality", *p.Quality, 0, 10, vb)
	}

	return vb.Build()
}
