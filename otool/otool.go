package otool

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	xslice "github.com/frantjc/x/slice"
)

// LinkedLibraries finds `otool` on the PATH and runs LinkedLibraries against it.
// See Command.LinkedLibraries.
func LinkedLibraries(ctx context.Context, name string) ([]string, error) {
	return Command("otool").LinkedLibraries(ctx, name)
}

// Command represents the path to an `otool` executable.
type Command string

func (c Command) String() string {
	if c == "" {
		return "otool"
	}

	return string(c)
}

// LinkedLibraries executes `otool -L` against the executable at name and
// returns the shared libraries it lists. If `otool` fails after printing
// some libraries, those are returned alongside the error.
func (c Command) LinkedLibraries(ctx context.Context, name string) ([]string, error) {
	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), "-L", name)
	)

	cmd.Stdout = buf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		libs, _ := ParseLinkedLibraries(buf)
		return libs, err
	}

	return ParseLinkedLibraries(buf)
}

// ParseLinkedLibraries parses the output of `otool -L`. Indented lines
// name a library, followed by its version annotation, which is dropped.
// Unindented lines are headers naming the file or an architecture slice of it.
// Libraries repeated across architecture slices are only returned once.
func ParseLinkedLibraries(r io.Reader) ([]string, error) {
	var (
		libs    = []string{}
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || !strings.ContainsAny(line[:1], " \t") {
			continue
		}

		lib := strings.TrimSpace(line)
		if i := strings.LastIndex(lib, " ("); i >= 0 && strings.HasSuffix(lib, ")") {
			lib = lib[:i]
		}

		if lib != "" && !xslice.Includes(libs, lib) {
			libs = append(libs, lib)
		}
	}

	return libs, scanner.Err()
}
