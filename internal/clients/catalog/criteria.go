package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

// Query keys understood by the filter endpoint
const (
	keyCategory   = "category"
	keyElement    = "element"
	keyRarity     = "rarity"
	keyNamePrefix = "namePrefix"
	keyMinStat    = "minStat"
	keyMaxStat    = "maxStat"
)

// Criteria narrows the filter endpoint. Zero-valued fields are absent and never sent.
type Criteria struct {
	Category   calamity.WeaponClass
	Element    calamity.Element
	Rarity     calamity.Rarity
	NamePrefix string
	MinStat    *int
	MaxStat    *int
}

// IntPtr is a convenience for building Criteria literals
func IntPtr(v int) *int {
	return &v
}

// Values encodes the present fields as query parameters
func (c Criteria) Values() url.Values {
	values := url.Values{}
	if c.Category != "" {
		values.Set(keyCategory, string(c.Category))
	}
	if c.Element != "" {
		values.Set(keyElement, string(c.Element))
	}
	if c.Rarity != "" {
		values.Set(keyRarity, string(c.Rarity))
	}
	if c.NamePrefix != "" {
		values.Set(keyNamePrefix, c.NamePrefix)
	}
	if c.MinStat != nil {
		values.Set(keyMinStat, strconv.Itoa(*c.MinStat))
	}
	if c.MaxStat != nil {
		values.Set(keyMaxStat, strconv.Itoa(*c.MaxStat))
	}
	return values
}

// ParseCriteria decodes query parameters produced by Values. Unknown keys are ignored.
func ParseCriteria(values url.Values) (Criteria, error) {
	var c Criteria
	vb := errors.NewValidationBuilder()

	if raw := values.Get(keyCategory); raw != "" {
		class, ok := calamity.ParseWeaponClass(raw)
		if !ok {
			vb.InvalidField(keyCategory, "unknown weapon class "+raw)
		}
		c.Category = class
	}
	if raw := values.Get(keyElement); raw != "" {
		element, ok := calamity.ParseElement(raw)
		if !ok {
			vb.InvalidField(keyElement, "unknown element "+raw)
		}
		c.Element = element
	}
	if raw := values.Get(keyRarity); raw != "" {
		rarity, ok := calamity.ParseRarity(raw)
		if !ok {
			vb.InvalidField(keyRarity, "unknown rarity "+raw)
		}
		c.Rarity = rarity
	}
	c.NamePrefix = values.Get(keyNamePrefix)
	c.MinStat = parseOptionalInt(keyMinStat, values, vb)
	c.MaxStat = parseOptionalInt(keyMaxStat, values, vb)

	if c.MinStat != nil && c.MaxStat != nil && *c.MinStat > *c.MaxStat {
		vb.Fieldf(keyMinStat, "must not exceed %s", keyMaxStat)
	}

	if err := vb.Build(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// IsEmpty reports whether no field is present
func (c Criteria) IsEmpty() bool {
	return len(c.Values()) == 0
}

// Matches applies the criteria locally, the same way the filter endpoint does
func (c Criteria) Matches(w *calamity.Weapon) bool {
	if w == nil {
		return false
	}
	if c.Category != "" && w.Class != c.Category {
		return false
	}
	if c.Element != "" && w.Element != c.Element {
		return false
	}
	if c.Rarity != "" && w.Rarity != c.Rarity {
		return false
	}
	if c.NamePrefix != "" && !strings.HasPrefix(strings.ToLower(w.Name), strings.ToLower(c.NamePrefix)) {
		return false
	}
	if c.MinStat != nil && w.Stats.BaseDamage < *c.MinStat {
		return false
	}
	if c.MaxStat != nil && w.Stats.BaseDamage > *c.MaxStat {
		return false
	}
	return true
}

func parseOptionalInt(key string, values url.Values, vb *errors.ValidationBuilder) *int {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		vb.Fieldf(key, "must be an integer, got %q", raw)
		return nil
	}
	return &n
}
