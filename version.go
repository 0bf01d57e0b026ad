package catalystdetect

import (
	"strings"

	xstrings "github.com/frantjc/x/strings"
	"golang.org/x/mod/semver"
)

var (
	// Version is set at build time with -ldflags.
	Version = "0.1.0"
	// Prerelease is set at build time with -ldflags.
	Prerelease = ""
)

// SemVer returns the canonical semantic version of catalystdetect,
// e.g. "v0.1.0" or "v0.1.0-rc.1".
func SemVer() string {
	v := Version
	if Prerelease != "" {
		v += "-" + strings.TrimPrefix(Prerelease, "-")
	}

	if canonical := semver.Canonical(xstrings.EnsurePrefix(v, "v")); canonical != "" {
		return canonical
	}

	return "v0.0.0-unknown"
}
