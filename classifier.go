package catalystdetect

import (
	"context"
	_ "crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/frantjc/catalystdetect/defaults"
	"github.com/frantjc/catalystdetect/macos"
	"github.com/frantjc/catalystdetect/otool"
	xslice "github.com/frantjc/x/slice"
	"github.com/opencontainers/go-digest"
)

// ManifestReader reads string values out of a property list.
//
// A missing file, a missing key, a non-string value and a value that is
// empty after trimming whitespace are all reported as absent, i.e. ok is
// false and err is nil. err is non-nil only when ctx is done.
type ManifestReader interface {
	ReadString(ctx context.Context, name, key string) (value string, ok bool, err error)
}

// LinkageInspector lists the shared libraries that the executable at name
// is linked against, in load order.
type LinkageInspector interface {
	LinkedLibraries(ctx context.Context, name string) ([]string, error)
}

var (
	_ ManifestReader   = macos.PlistManifestReader{}
	_ ManifestReader   = defaults.Command("")
	_ LinkageInspector = macos.MachOInspector{}
	_ LinkageInspector = otool.Command("")
)

// DefaultTimeout bounds each call that a Classifier makes
// to its ManifestReader and LinkageInspector.
const DefaultTimeout = time.Second * 10

// Classifier decides whether bundles are built with Mac Catalyst.
// The zero value uses the native macos strategies and DefaultTimeout.
type Classifier struct {
	Manifest ManifestReader
	Linkage  LinkageInspector
	// Timeout bounds each call to Manifest and Linkage.
	// Zero means DefaultTimeout, negative means no bound.
	Timeout time.Duration
	// Digest makes Classify compute the digest of the executable.
	Digest bool
}

// Classify classifies the bundle at bundlePath with the zero Classifier.
func Classify(ctx context.Context, bundlePath string) *Result {
	return new(Classifier).Classify(ctx, bundlePath)
}

func (c *Classifier) manifest() ManifestReader {
	if c.Manifest == nil {
		return macos.PlistManifestReader{}
	}

	return c.Manifest
}

func (c *Classifier) linkage() LinkageInspector {
	if c.Linkage == nil {
		return macos.MachOInspector{}
	}

	return c.Linkage
}

func (c *Classifier) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	switch {
	case c.Timeout == 0:
		return context.WithTimeout(ctx, DefaultTimeout)
	case c.Timeout > 0:
		return context.WithTimeout(ctx, c.Timeout)
	}

	return context.WithCancel(ctx)
}

func (c *Classifier) readString(ctx context.Context, name, key string) (string, bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.manifest().ReadString(ctx, name, key)
}

func (c *Classifier) linkedLibraries(ctx context.Context, name string) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return c.linkage().LinkedLibraries(ctx, name)
}

// IsCatalyst reports whether any of libs lives under IOSSupportMarker.
func IsCatalyst(libs []string) bool {
	return xslice.Some(libs, func(lib string, _ int) bool {
		return strings.Contains(lib, IOSSupportMarker)
	})
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// Classify reads the manifest of the bundle at bundlePath, inspects its
// executable and returns the resulting classification. It always returns
// a Result; every failure is reported as StatusUnresolvable.
// It is safe to call concurrently.
func (c *Classifier) Classify(ctx context.Context, bundlePath string) *Result {
	var (
		log       = LoggerFrom(ctx).WithValues("bundle", bundlePath)
		infoPlist = InfoPlistPath(bundlePath)
		res       = &Result{Status: StatusUnresolvable}
	)

	executableName, ok, err := c.readString(ctx, infoPlist, macos.KeyExecutable)
	switch {
	case err != nil:
		res.Reason = fmt.Sprintf("read %s from manifest: %v", macos.KeyExecutable, err)
	case !ok:
		res.Reason = "executable not found in manifest"
	}

	// Display name and icon are best-effort, so errors only mean absent.
	displayName, _, _ := c.readString(ctx, infoPlist, macos.KeyDisplayName)
	res.DisplayName = xslice.Coalesce(displayName, executableName, UnknownAppName)

	if iconName, ok, _ := c.readString(ctx, infoPlist, macos.KeyIconFile); ok {
		res.IconPath = IconPath(bundlePath, iconName)
	}

	if res.Reason != "" {
		log.V(1).Info("unresolvable", "reason", res.Reason)
		res.Message = res.Status.Message()
		return res
	}

	res.ExecutablePath = ExecutablePath(bundlePath, executableName)
	log = log.WithValues("executable", res.ExecutablePath)

	libs, err := c.linkedLibraries(ctx, res.ExecutablePath)
	switch {
	case isContextErr(err):
		res.Reason = fmt.Sprintf("inspect linkage of %s: %v", res.ExecutablePath, err)
		res.ExecutablePath = ""
		log.V(1).Info("unresolvable", "reason", res.Reason)
		res.Message = res.Status.Message()
		return res
	case err != nil:
		// Indistinguishable from a genuine negative to callers that only look at Status.
		res.Diagnostic = err.Error()
		log.V(1).Info("linkage inspection failed", "err", err)
	}

	res.LinkedLibraries = libs
	if IsCatalyst(libs) {
		res.Status = StatusCatalyst
	} else {
		res.Status = StatusNotCatalyst
	}

	if c.Digest {
		if d, err := digestFile(res.ExecutablePath); err == nil {
			res.ExecutableDigest = d.String()
		} else {
			log.V(1).Info("digest failed", "err", err)
		}
	}

	log.V(1).Info("classified", "status", res.Status, "libraries", len(libs))
	res.Message = res.Status.Message()

	return res
}

func digestFile(name string) (digest.Digest, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return digest.FromReader(f)
}
