package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/calamity-catalog/internal/entities/calamity"
)

func TestDetectSchema(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    Schema
	}{
		{name: "current", payload: `{"id":"a","rarity":"RARE","baseDamage":1}`, want: SchemaCurrent},
		{name: "numeric id", payload: `{"id":5,"baseDamage":1}`, want: SchemaRecord},
		{name: "numeric rarity", payload: `{"id":"5","rarity":-1}`, want: SchemaRecord},
		{name: "record-only field", payload: `{"id":"5","price":10}`, want: SchemaRecord},
		{name: "legacy stats", payload: `{"id":5,"damage":10,"price":1}`, want: SchemaLegacy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var fields map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &fields))
			assert.Equal(t, tc.want, detectSchema(fields))
		})
	}
}

func TestOpaqueID(t *testing.T) {
	assert.Equal(t, "abc", opaqueID(json.RawMessage(`"abc"`)))
	assert.Equal(t, "12", opaqueID(json.RawMessage(`12`)))
	assert.Equal(t, "", opaqueID(nil))
	assert.Equal(t, "", opaqueID(json.RawMessage(`null`)))
}

func TestParseSchema(t *testing.T) {
	for _, name := range []string{"", "auto", "Current", "record", "LEGACY"} {
		_, ok := ParseSchema(name)
		assert.True(t, ok, name)
	}
	_, ok := ParseSchema("v2")
	assert.False(t, ok)
}

func TestEncodePatch_Schemas(t *testing.T) {
	level := 12
	class := calamity.ClassMage
	damage := 30
	patch := &Patch{RarityLevel: &level, Class: &class, BaseDamage: &damage}

	assert.Equal(t, map[string]any{
		"rarity":      12,
		"weaponClass": "MAGE",
		"baseDamage":  30,
	}, encodePatch(patch, SchemaRecord))

	assert.Equal(t, map[string]any{
		"rarity":      "LEGENDARY",
		"weaponClass": "MAGE",
		"baseDamage":  30,
	}, encodePatch(patch, SchemaCurrent))

	assert.Equal(t, map[string]any{
		"rarity":  "LEGENDARY",
		"element": "MAGIC",
		"damage":  30,
	}, encodePatch(patch, SchemaLegacy))
}
