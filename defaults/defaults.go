package defaults

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
)

// Read finds `defaults` on the PATH and runs Read against it.
// See Command.Read.
func Read(ctx context.Context, name, key string) (string, error) {
	return Command("defaults").Read(ctx, name, key)
}

// Command represents the path to a `defaults` executable.
type Command string

func (c Command) String() string {
	if c == "" {
		return "defaults"
	}

	return string(c)
}

// Read executes `defaults read` against the property list at name
// and returns the value of key with surrounding whitespace trimmed.
func (c Command) Read(ctx context.Context, name, key string) (string, error) {
	return c.run(ctx, "read", name, key)
}

// ReadType executes `defaults read-type` against the property list at name
// and returns the type of the value of key, e.g. "string" or "boolean".
func (c Command) ReadType(ctx context.Context, name, key string) (string, error) {
	out, err := c.run(ctx, "read-type", name, key)
	if err != nil {
		return "", err
	}

	return strings.TrimPrefix(out, "Type is "), nil
}

// run executes `defaults <verb> <name> <key>` and returns its trimmed stdout.
// `defaults` only reads property lists by absolute path,
// so name is made absolute first.
func (c Command) run(ctx context.Context, verb, name, key string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}

	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), verb, abs, key)
	)

	cmd.Stdout = buf

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

// ReadString runs ReadType and then Read, reporting a failed read, a value
// that is not a string and an empty value as absent, as `defaults read`
// would otherwise print booleans as 1 or 0 and arrays or dictionaries in
// their OpenStep form. The only error it returns is that of ctx once it is done.
func (c Command) ReadString(ctx context.Context, name, key string) (string, bool, error) {
	typ, err := c.ReadType(ctx, name, key)
	if err != nil || typ != "string" {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}

		return "", false, nil
	}

	value, err := c.Read(ctx, name, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}

		return "", false, nil
	}

	return value, value != "", nil
}
