package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("espresso")
	require.NoError(t, err)
	assert.NotEqual(t, "espresso", h)
	assert.True(t, CheckPassword(h, "espresso"))
	assert.False(t, CheckPassword(h, "latte"))
	assert.False(t, CheckPassword("not-a-hash", "espresso"))
}
