package catalystdetect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/frantjc/catalystdetect/internal/catalystregexp"
	"github.com/frantjc/catalystdetect/macos"
	xos "github.com/frantjc/x/os"
)

const (
	// IOSSupportMarker is the path fragment that every library
	// under the iOS support system directory carries.
	IOSSupportMarker = "/System/iOSSupport/"
	// IconExt is appended to CFBundleIconFile when it lacks it.
	IconExt = ".icns"
	// UnknownAppName is the display name of a bundle
	// whose manifest names neither a display name nor an executable.
	UnknownAppName = "Unknown App"
)

// ExitCodeUsage is the exit code for paths that are not application bundles.
const ExitCodeUsage = 2

// InfoPlistPath returns the path to the manifest of the bundle at bundlePath.
func InfoPlistPath(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents", macos.InfoPlistName)
}

// ExecutablePath returns the path to the executable named
// executableName inside of the bundle at bundlePath.
func ExecutablePath(bundlePath, executableName string) string {
	return filepath.Join(bundlePath, "Contents", "MacOS", executableName)
}

// IconPath returns the path to the icon named iconName inside of the
// bundle at bundlePath, appending IconExt if iconName does not end with it.
// It does not check that the icon exists.
func IconPath(bundlePath, iconName string) string {
	if !strings.HasSuffix(iconName, IconExt) {
		iconName += IconExt
	}

	return filepath.Join(bundlePath, "Contents", "Resources", iconName)
}

// ValidateBundlePath checks that name looks like an application bundle.
func ValidateBundlePath(name string) error {
	if !catalystregexp.IsApp(name) {
		return xos.NewExitCodeError(fmt.Errorf("%s is not an application bundle", name), ExitCodeUsage)
	}

	return nil
}
