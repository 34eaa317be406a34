package slotstore_test

import (
	"testing"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_ParseRoundTrip(t *testing.T) {
	key := slotstore.KeyOf("scores")

	parsed, err := slotstore.ParseKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestParseKey_Invalid(t *testing.T) {
	_, err := slotstore.ParseKey("not hex")
	require.Error(t, err)

	_, err = slotstore.ParseKey("abcd")
	require.Error(t, err)
}

func TestKeyOf_Deterministic(t *testing.T) {
	assert.Equal(t, slotstore.KeyOf("a"), slotstore.KeyOf("a"))
	assert.NotEqual(t, slotstore.KeyOf("a"), slotstore.KeyOf("b"))
}
