package macos

import (
	"context"
	"os"
	"strings"

	"howett.net/plist"
)

// PlistManifestReader reads values out of property lists
// by parsing them in-process.
type PlistManifestReader struct{}

// ReadString returns the string value of key in the property list at name.
// Anything that keeps a non-empty string from being found is reported as absent.
func (PlistManifestReader) ReadString(ctx context.Context, name, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	f, err := os.Open(name)
	if err != nil {
		return "", false, nil
	}
	defer f.Close()

	dict := map[string]any{}
	if err = plist.NewDecoder(f).Decode(&dict); err != nil {
		return "", false, nil
	}

	value, ok := dict[key].(string)
	if !ok {
		return "", false, nil
	}

	value = strings.TrimSpace(value)

	return value, value != "", nil
}
