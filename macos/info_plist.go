package macos

import (
	"io"
	"os"

	"howett.net/plist"
)

const (
	InfoPlistName = "Info.plist"

	KeyExecutable  = "CFBundleExecutable"
	KeyDisplayName = "CFBundleDisplayName"
	KeyIconFile    = "CFBundleIconFile"
)

// Info is the subset of a macOS application bundle's
// Info.plist that is worth reporting about it.
type Info struct {
	BuildMachineOSBuild        string   `plist:"BuildMachineOSBuild"`
	CFBundleDisplayName        string   `plist:"CFBundleDisplayName"`
	CFBundleExecutable         string   `plist:"CFBundleExecutable"`
	CFBundleIconFile           string   `plist:"CFBundleIconFile"`
	CFBundleIconName           string   `plist:"CFBundleIconName"`
	CFBundleIdentifier         string   `plist:"CFBundleIdentifier"`
	CFBundleName               string   `plist:"CFBundleName"`
	CFBundlePackageType        string   `plist:"CFBundlePackageType"`
	CFBundleShortVersionString string   `plist:"CFBundleShortVersionString"`
	CFBundleSupportedPlatforms []string `plist:"CFBundleSupportedPlatforms"`
	CFBundleVersion            string   `plist:"CFBundleVersion"`
	LSMinimumSystemVersion     string   `plist:"LSMinimumSystemVersion"`
	UIDeviceFamily             []int    `plist:"UIDeviceFamily"`
}

// DecodeInfo decodes an Info.plist in any of the
// XML, binary or OpenStep property list formats.
func DecodeInfo(r io.ReadSeeker) (*Info, error) {
	info := &Info{}
	return info, plist.NewDecoder(r).Decode(info)
}

// ReadInfo opens and decodes the Info.plist at name.
func ReadInfo(name string) (*Info, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeInfo(f)
}
