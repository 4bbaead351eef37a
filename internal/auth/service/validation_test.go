package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"eight chars all classes", "Abcdef1!", true},
		{"long passphrase", "Correct-Horse-Battery-9", true},
		{"space counts as symbol", "Abc def1", true},
		{"no uppercase or symbol", "abcdefg1", false},
		{"seven chars all classes", "Abcde1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsStrongPassword(tt.password), "password %q", tt.password)
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	for _, s := range []string{"a@b.co", "first.last+tag@sub.example.org"} {
		require.True(t, IsValidEmail(s), s)
	}
	for _, s := range []string{"", "plain", "a@b", "a b@c.de", "@b.co", "a@.co x"} {
		require.False(t, IsValidEmail(s), s)
	}
	require.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
