package security

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"unicode/utf16"
)

// MaxNameLength is the longest file name accepted on any platform, in
// UTF-16 code units on Windows and in bytes elsewhere
const MaxNameLength = 255

var ErrInvalidName = errors.New("invalid file name")

// Rule families
type family int

const (
	familyUnknown family = iota
	familyWindows
	familyDarwin
	familyUnix
)

const windowsIllegalChars = `\/<>:"'|?*`

var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// NameValidator checks file names against one platform's rule table
type NameValidator struct {
	goos   string
	family family
}

// NewNameValidator returns a validator for the given GOOS value.
// Platforms without a rule table accept every name.
func NewNameValidator(goos string) *NameValidator {
	v := &NameValidator{goos: goos}
	switch goos {
	case "windows":
		v.family = familyWindows
	case "darwin", "ios":
		v.family = familyDarwin
	case "linux", "android", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos", "aix":
		v.family = familyUnix
	}
	return v
}

// DefaultNameValidator returns a validator for the running platform
func DefaultNameValidator() *NameValidator {
	return NewNameValidator(runtime.GOOS)
}

// Platform returns the GOOS value the rules were selected for
func (v *NameValidator) Platform() string {
	return v.goos
}

func (v *NameValidator) nameLength(name string) int {
	if v.family == familyWindows {
		return len(utf16.Encode([]rune(name)))
	}
	return len(name)
}

func (v *NameValidator) lengthUnit() string {
	if v.family == familyWindows {
		return "UTF-16 units"
	}
	return "bytes"
}

// IsLegal reports whether name is acceptable as a file name
func (v *NameValidator) IsLegal(name string) bool {
	return v.Validate(name) == nil
}

// Validate returns an error wrapping ErrInvalidName describing the first rule name breaks
func (v *NameValidator) Validate(name string) error {
	if v.family == familyUnknown {
		return nil
	}

	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if v.nameLength(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d %s", ErrInvalidName, MaxNameLength, v.lengthUnit())
	}

	switch v.family {
	case familyWindows:
		if i := strings.IndexAny(name, windowsIllegalChars); i >= 0 {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, name[i])
		}
		if windowsReserved[strings.ToUpper(name)] {
			return fmt.Errorf("%w: %q is a reserved device name", ErrInvalidName, name)
		}
		if strings.HasSuffix(name, ".") {
			return fmt.Errorf("%w: %q ends with a dot", ErrInvalidName, name)
		}
	case familyDarwin, familyUnix:
		illegal := "/\x00"
		if v.family == familyDarwin {
			illegal += ":"
		}
		if i := strings.IndexAny(name, illegal); i >= 0 {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, name[i])
		}
		if strings.ToUpper(name) == "NUL" {
			return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
		}
	}

	return nil
}
