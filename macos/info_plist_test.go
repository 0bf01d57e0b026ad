package macos

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"testing"
)

var (
	//go:embed Info.test.plist
	data []byte
)

func TestDecodeInfo(t *testing.T) {
	info, err := DecodeInfo(bytes.NewReader(data))
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	if info.CFBundleExecutable != "Swift Playgrounds" {
		t.Errorf("unexpected CFBundleExecutable %q", info.CFBundleExecutable)
	}

	if info.CFBundleIconFile != "AppIcon" {
		t.Errorf("unexpected CFBundleIconFile %q", info.CFBundleIconFile)
	}

	if len(info.UIDeviceFamily) != 2 || info.UIDeviceFamily[1] != 6 {
		t.Errorf("unexpected UIDeviceFamily %v", info.UIDeviceFamily)
	}
}

func TestReadInfo(t *testing.T) {
	if _, err := ReadInfo(filepath.Join(t.TempDir(), InfoPlistName)); err == nil {
		t.Error("expected error for a missing Info.plist")
	}

	name := filepath.Join(t.TempDir(), InfoPlistName)
	if err := os.WriteFile(name, data, 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := ReadInfo(name)
	if err != nil {
		t.Fatal(err)
	}

	if info.CFBundleIdentifier != "com.apple.PlaygroundsMac" {
		t.Errorf("unexpected CFBundleIdentifier %q", info.CFBundleIdentifier)
	}
}
