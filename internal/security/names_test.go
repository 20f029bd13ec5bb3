package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameValidatorWindows(t *testing.T) {
	v := NewNameValidator("windows")

	tests := []struct {
		name  string
		input string
		legal bool
	}{
		{"plain csv", "passwords.csv", true},
		{"max length", strings.Repeat("a", 255), true},
		{"reserved device", "CON", false},
		{"reserved lowercase", "con", false},
		{"reserved com port", "COM7", false},
		{"reserved lpt port", "lpt9", false},
		{"pipe", "a|b", false},
		{"backslash", `a\b`, false},
		{"slash", "a/b", false},
		{"colon", "c:vault", false},
		{"quote", `a"b`, false},
		{"apostrophe", "a'b", false},
		{"question mark", "what?", false},
		{"star", "*.csv", false},
		{"angle brackets", "<vault>", false},
		{"too long", strings.Repeat("a", 256), false},
		{"empty", "", false},
		{"trailing dot", "vault.", false},
		{"reserved name as prefix", "CONFIG.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.legal, v.IsLegal(tt.input))
			if !tt.legal {
				assert.ErrorIs(t, v.Validate(tt.input), ErrInvalidName)
			}
		})
	}
}

func TestNameValidatorUnix(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		t.Run(goos, func(t *testing.T) {
			v := NewNameValidator(goos)

			assert.True(t, v.IsLegal("passwords.csv"))
			assert.True(t, v.IsLegal("a|b"))
			assert.True(t, v.IsLegal("CON"))
			assert.True(t, v.IsLegal(strings.Repeat("a", 255)))

			assert.False(t, v.IsLegal(""))
			assert.False(t, v.IsLegal("a/b"))
			assert.False(t, v.IsLegal("a\x00b"))
			assert.False(t, v.IsLegal("NUL"))
			assert.False(t, v.IsLegal("nul"))
			assert.False(t, v.IsLegal(strings.Repeat("a", 256)))
		})
	}
}

func TestNameValidatorLengthUnits(t *testing.T) {
	// é is two bytes in UTF-8 and one UTF-16 unit
	for _, goos := range []string{"linux", "darwin"} {
		v := NewNameValidator(goos)
		assert.True(t, v.IsLegal(strings.Repeat("é", 127)+"a"), goos)
		assert.False(t, v.IsLegal(strings.Repeat("é", 128)), goos)
	}

	windows := NewNameValidator("windows")
	assert.True(t, windows.IsLegal(strings.Repeat("é", 255)))
	assert.False(t, windows.IsLegal(strings.Repeat("é", 256)))
	// outside the BMP a rune takes two UTF-16 units
	assert.False(t, windows.IsLegal(strings.Repeat("𝄞", 128)))
}

func TestNameValidatorDarwinColon(t *testing.T) {
	assert.False(t, NewNameValidator("darwin").IsLegal("a:b"))
	assert.True(t, NewNameValidator("linux").IsLegal("a:b"))
}

func TestNameValidatorUnknownPlatformIsPermissive(t *testing.T) {
	v := NewNameValidator("plan9")

	assert.True(t, v.IsLegal(""))
	assert.True(t, v.IsLegal("CON"))
	assert.True(t, v.IsLegal(strings.Repeat("a", 1000)))
	assert.Equal(t, "plan9", v.Platform())
}
