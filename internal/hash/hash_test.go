package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	assert.NotEqual(t, "Sup3rSecret", h)
	assert.True(t, strings.HasPrefix(h, "$2"))

	assert.True(t, CheckPassword(h, "Sup3rSecret"))
	assert.False(t, CheckPassword(h, "sup3rsecret"))
	assert.False(t, CheckPassword(h, ""))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	b, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-hash", "Sup3rSecret"))
	assert.False(t, CheckPassword("", "Sup3rSecret"))
}
