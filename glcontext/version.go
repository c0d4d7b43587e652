package glcontext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PazerOP/imgui-desktop/platform"
)

// Version is a GL context version. The zero value is an unknown version.
type Version struct {
	Major int
	Minor int
}

// IsValid reports whether v names a real GL version.
func (v Version) IsValid() bool {
	return v.Major > 0 && v.Minor >= 0
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	case v.Minor < o.Minor:
		return -1
	case v.Minor > o.Minor:
		return 1
	}
	return 0
}

func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// AtLeast reports whether v is major.minor or newer.
func (v Version) AtLeast(major, minor int) bool {
	return v.Compare(Version{major, minor}) >= 0
}

func (v Version) String() string {
	if !v.IsValid() {
		return "unknown"
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion parses "major" or "major.minor".
func ParseVersion(s string) (Version, error) {
	majStr, minStr, hasMinor := strings.Cut(strings.TrimSpace(s), ".")
	major, err := strconv.Atoi(majStr)
	if err != nil {
		return Version{}, fmt.Errorf("invalid GL version %q: %w", s, err)
	}
	minor := 0
	if hasMinor {
		if minor, err = strconv.Atoi(minStr); err != nil {
			return Version{}, fmt.Errorf("invalid GL version %q: %w", s, err)
		}
	}
	v := Version{major, minor}
	if !v.IsValid() {
		return Version{}, fmt.Errorf("invalid GL version %q", s)
	}
	return v, nil
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	pv, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = pv
	return nil
}

// Attempt is one configuration tried while creating the shared context.
type Attempt struct {
	Version           Version            `toml:"version"`
	Profile           platform.GLProfile `toml:"profile"`
	ForwardCompatible bool               `toml:"forward_compatible"`
}

func (a Attempt) String() string {
	s := a.Version.String() + " " + a.Profile.String()
	if a.ForwardCompatible {
		s += " (forward compatible)"
	}
	return s
}

// Attributes returns the window attribute hints for a.
func (a Attempt) Attributes() platform.GLAttributes {
	return platform.GLAttributes{
		Major:             a.Version.Major,
		Minor:             a.Version.Minor,
		Profile:           a.Profile,
		ForwardCompatible: a.ForwardCompatible,
		DoubleBuffer:      true,
		DepthBits:         24,
		StencilBits:       8,
	}
}

// DefaultAttempts is the descending preference list used when none is
// configured.
func DefaultAttempts() []Attempt {
	return []Attempt{
		{Version: Version{4, 5}, Profile: platform.ProfileCore},
		{Version: Version{4, 1}, Profile: platform.ProfileCore, ForwardCompatible: true},
		{Version: Version{3, 3}, Profile: platform.ProfileCore},
		{Version: Version{3, 2}, Profile: platform.ProfileCore, ForwardCompatible: true},
		{Version: Version{2, 1}, Profile: platform.ProfileCompatibility},
		{Version: Version{2, 0}, Profile: platform.ProfileCompatibility},
	}
}
