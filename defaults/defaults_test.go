package defaults

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// fakeDefaults writes a script that reports typ and prints value
// for key and fails for any other key.
func fakeDefaults(t *testing.T, key, typ, value string) Command {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	name := filepath.Join(t.TempDir(), "defaults")
	if err := os.WriteFile(name, []byte(`#!/bin/sh
if [ "$3" = "`+key+`" ]; then
	case "$1" in
	read-type)
		echo 'Type is `+typ+`'
		exit 0
		;;
	read)
		printf '%s\n' '`+value+`'
		exit 0
		;;
	esac
fi
echo "The domain/default pair of ($2, $3) does not exist" >&2
exit 1
`), 0o755); err != nil {
		t.Fatal(err)
	}

	return Command(name)
}

func TestCommandReadString(t *testing.T) {
	var (
		ctx = context.Background()
		cmd = fakeDefaults(t, "CFBundleExecutable", "string", "  MyApp  ")
	)

	value, ok, err := cmd.ReadString(ctx, "Info.plist", "CFBundleExecutable")
	if err != nil {
		t.Fatal(err)
	}

	if !ok || value != "MyApp" {
		t.Errorf("expected (%q, true), got (%q, %t)", "MyApp", value, ok)
	}

	if _, ok, err = cmd.ReadString(ctx, "Info.plist", "CFBundleDisplayName"); ok || err != nil {
		t.Errorf("expected missing key to be absent, got (%t, %v)", ok, err)
	}
}

func TestCommandReadStringEmpty(t *testing.T) {
	if _, ok, err := fakeDefaults(t, "CFBundleDisplayName", "string", " ").ReadString(context.Background(), "Info.plist", "CFBundleDisplayName"); ok || err != nil {
		t.Errorf("expected blank value to be absent, got (%t, %v)", ok, err)
	}
}

func TestCommandReadStringNotFound(t *testing.T) {
	if _, ok, err := Command(filepath.Join(t.TempDir(), "defaults")).ReadString(context.Background(), "Info.plist", "CFBundleExecutable"); ok || err != nil {
		t.Errorf("expected missing defaults to be absent, got (%t, %v)", ok, err)
	}
}

func TestCommandReadStringCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := fakeDefaults(t, "CFBundleExecutable", "string", "MyApp").ReadString(ctx, "Info.plist", "CFBundleExecutable"); err != context.Canceled {
		t.Errorf("expected %v, got %v", context.Canceled, err)
	}
}

func TestCommandReadStringNotString(t *testing.T) {
	for typ, value := range map[string]string{
		"boolean":    "1",
		"array":      "(\n    MacOSX\n)",
		"dictionary": "{\n}",
	} {
		if got, ok, err := fakeDefaults(t, "LSUIElement", typ, value).ReadString(context.Background(), "Info.plist", "LSUIElement"); ok || err != nil {
			t.Errorf("%s: expected non-string value to be absent, got (%q, %t, %v)", typ, got, ok, err)
		}
	}
}

func TestCommandReadType(t *testing.T) {
	typ, err := fakeDefaults(t, "LSUIElement", "boolean", "1").ReadType(context.Background(), "Info.plist", "LSUIElement")
	if err != nil {
		t.Fatal(err)
	}

	if typ != "boolean" {
		t.Errorf("expected %q, got %q", "boolean", typ)
	}
}
