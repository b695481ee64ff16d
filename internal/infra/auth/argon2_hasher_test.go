package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_Hash(t *testing.T) {
	hasher := NewArgon2Hasher()

	password := "correct horse battery staple"
	encoded, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
	assert.NotContains(t, encoded, password)

	// The record is self-describing
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.Contains(t, encoded, "m=")
	assert.Contains(t, encoded, "t=")
	assert.Contains(t, encoded, "p=")

	// Verify the record can be checked
	assert.True(t, hasher.Check(password, encoded))
}

func TestArgon2Hasher_HashIsSalted(t *testing.T) {
	hasher := NewArgon2Hasher()
	password := "correct horse battery staple"

	first, err := hasher.Hash(password)
	require.NoError(t, err)
	second, err := hasher.Hash(password)
	require.NoError(t, err)

	// Fresh salt per call: same password, different records, both valid.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestArgon2Hasher_Check(t *testing.T) {
	hasher := NewArgon2Hasher()
	password := "correct horse battery staple"

	encoded, err := hasher.Hash(password)
	require.NoError(t, err)

	// Correct password
	assert.True(t, hasher.Check(password, encoded))

	// Wrong password
	assert.False(t, hasher.Check("wrong horse battery staple", encoded))

	// Empty password
	assert.False(t, hasher.Check("", encoded))
}

func TestArgon2Hasher_CheckMalformedRecords(t *testing.T) {
	hasher := NewArgon2Hasher()

	// Malformed records verify false, they never panic or error out.
	malformed := []string{
		"",
		"not a record",
		"$argon2id$",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=banana$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$",
	}

	for _, record := range malformed {
		assert.False(t, hasher.Check("anything", record), "record should not verify: %q", record)
	}
}

func TestArgon2Hasher_WithCustomParams(t *testing.T) {
	// Small parameters keep the test fast; records stay self-describing.
	hasher := NewArgon2HasherWithParams(8*1024, 1, 1)

	password := "correct horse battery staple"
	encoded, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.Contains(t, encoded, "m=8192,t=1,p=1")
	assert.True(t, hasher.Check(password, encoded))

	// A hasher with different parameters still verifies the record,
	// because parameters are read from the record itself.
	other := NewArgon2Hasher()
	assert.True(t, other.Check(password, encoded))
}
