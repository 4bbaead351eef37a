package cryptox

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)
	upperHex = regexp.MustCompile(`^[0-9A-F]{8}$`)
)

func TestGenerateHexToken(t *testing.T) {
	for _, size := range []int{1, 4, 16, 32} {
		tok, err := GenerateHexToken(size)
		require.NoError(t, err)
		require.Len(t, tok, size*2)
		require.Regexp(t, lowerHex, tok)
	}
}

func TestGenerateHexToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		tok, err := GenerateHexToken(size)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}

func TestGenerateResetToken(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		tok, err := GenerateResetToken()
		require.NoError(t, err)
		require.Len(t, tok, 64)
		require.NotContains(t, seen, tok)
		seen[tok] = struct{}{}
	}
}

func TestGenerateAccessCode(t *testing.T) {
	for range 50 {
		code, err := GenerateAccessCode()
		require.NoError(t, err)
		require.Regexp(t, upperHex, code)
	}
}

func TestAccessCodesEqual(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		stored    string
		want      bool
	}{
		{"exact", "A1B2C3D4", "A1B2C3D4", true},
		{"lowercase submitted", "a1b2c3d4", "A1B2C3D4", true},
		{"surrounding whitespace", "  a1b2c3d4\n", "A1B2C3D4", true},
		{"different code", "A1B2C3D5", "A1B2C3D4", false},
		{"prefix only", "A1B2", "A1B2C3D4", false},
		{"empty", "", "A1B2C3D4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AccessCodesEqual(tt.submitted, tt.stored))
		})
	}
}

func TestFingerprintToken(t *testing.T) {
	tok, err := GenerateResetToken()
	require.NoError(t, err)

	fp := FingerprintToken(tok)
	require.Len(t, fp, 43)
	require.Equal(t, fp, FingerprintToken(tok), "fingerprint must be deterministic")
	require.NotEqual(t, fp, FingerprintToken(strings.ToUpper(tok)))
	require.NotContains(t, fp, tok)
}
