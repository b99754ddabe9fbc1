package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCompanyCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateCompanyCode()
		require.NoError(t, err)
		assert.Len(t, code, companyCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(companyCodeAlphabet, r), "unexpected character %q", r)
		}
		seen[code] = struct{}{}
	}
	// Collisions in 100 draws over a 32^12 space mean the generator is broken
	assert.Len(t, seen, 100)
}

func TestSecureRandomBytes(t *testing.T) {
	first, err := SecureRandomBytes(16)
	require.NoError(t, err)
	assert.Len(t, first, 16)

	second, err := SecureRandomBytes(16)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = SecureRandomBytes(0)
	assert.Error(t, err)
}

func TestMaskCompanyCode(t *testing.T) {
	assert.Equal(t, "", MaskCompanyCode(""))
	assert.Equal(t, "••••", MaskCompanyCode("AB12"))
	assert.Equal(t, "••••••••H7K2", MaskCompanyCode("XQ9F3TZ8H7K2"))
}

func TestStaffPINRoundTrip(t *testing.T) {
	hash, err := HashStaffPIN("4821")
	require.NoError(t, err)
	assert.NotEqual(t, "4821", hash)

	assert.True(t, CheckStaffPIN("4821", hash))
	assert.False(t, CheckStaffPIN("0000", hash))
}
