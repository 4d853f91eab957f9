package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bob Smith's Organization", "bob-smiths-organization"},
		{"Acme Pools", "acme-pools"},
		{"  Trim Me  ", "trim-me"},
		{"Multi   Space", "multi-space"},
		{"Already-Slugged", "already-slugged"},
		{"Ends With Punctuation!", "ends-with-punctuation"},
		{"1234 Numbers OK", "1234-numbers-ok"},
		{"日本語のみ", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestRandomSuffix(t *testing.T) {
	a, err := RandomSuffix()
	require.NoError(t, err)
	require.Len(t, a, 6)

	b, err := RandomSuffix()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestIsBcryptHash(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.True(t, IsBcryptHash(hash))
	require.True(t, CheckPasswordHash(hash, "secret"))
	require.False(t, CheckPasswordHash(hash, "other"))

	require.False(t, IsBcryptHash("plaintext"))
	require.False(t, IsBcryptHash(""))
}
