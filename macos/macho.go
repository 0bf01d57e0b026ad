package macos

import (
	"context"
	"debug/macho"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	xslice "github.com/frantjc/x/slice"
)

// Load commands that name a shared library, in addition to macho.LoadCmdDylib.
const (
	LoadCmdLoadWeakDylib   macho.LoadCmd = 0x80000018
	LoadCmdReexportDylib   macho.LoadCmd = 0x8000001f
	LoadCmdLazyLoadDylib   macho.LoadCmd = 0x20
	LoadCmdLoadUpwardDylib macho.LoadCmd = 0x80000023
)

// MachOInspector lists linked libraries by reading
// the load commands of a Mach-O file in-process.
type MachOInspector struct{}

// LinkedLibraries returns the libraries named by the dylib load commands
// (LC_LOAD_DYLIB, LC_LOAD_WEAK_DYLIB, LC_REEXPORT_DYLIB, LC_LAZY_LOAD_DYLIB
// and LC_LOAD_UPWARD_DYLIB) of the Mach-O file at name, in load order.
// For universal binaries, every architecture's libraries are returned
// in slice order with duplicates removed.
func (MachOInspector) LinkedLibraries(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var magic [4]byte
	if _, err = io.ReadFull(f, magic[:]); err != nil {
		return nil, fmt.Errorf("read magic of %s: %w", name, err)
	}

	if binary.BigEndian.Uint32(magic[:]) != macho.MagicFat {
		mf, err := macho.NewFile(f)
		if err != nil {
			return nil, fmt.Errorf("open mach-o %s: %w", name, err)
		}

		return linkedLibraries(mf, nil), nil
	}

	ff, err := macho.NewFatFile(f)
	if err != nil {
		return nil, fmt.Errorf("open universal mach-o %s: %w", name, err)
	}

	libs := []string{}
	for _, arch := range ff.Arches {
		libs = linkedLibraries(arch.File, libs)
	}

	return libs, nil
}

// linkedLibraries appends the libraries named by f's dylib
// load commands to libs, skipping ones already in it.
func linkedLibraries(f *macho.File, libs []string) []string {
	for _, load := range f.Loads {
		raw := load.Raw()
		if len(raw) < 12 {
			continue
		}

		switch macho.LoadCmd(f.ByteOrder.Uint32(raw)) {
		case macho.LoadCmdDylib, LoadCmdLoadWeakDylib, LoadCmdReexportDylib, LoadCmdLazyLoadDylib, LoadCmdLoadUpwardDylib:
		default:
			continue
		}

		// Same layout as macho.DylibCmd: the name is a
		// NUL-terminated string at the offset in bytes 8-12.
		offset := f.ByteOrder.Uint32(raw[8:12])
		if offset >= uint32(len(raw)) {
			continue
		}

		lib := raw[offset:]
		for i, b := range lib {
			if b == 0 {
				lib = lib[:i]
				break
			}
		}

		if s := string(lib); s != "" && !xslice.Includes(libs, s) {
			libs = append(libs, s)
		}
	}

	return libs
}
