package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/calamity-catalog/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("req")
	assert.Equal(t, "req_1", gen.Generate())
	assert.Equal(t, "req_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	id := idgen.NewUUID("req").Generate()
	require.True(t, strings.HasPrefix(id, "req_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "req_"))
	assert.NoError(t, err)

	assert.NotEqual(t, idgen.NewUUID("").Generate(), idgen.NewUUID("").Generate())
}
