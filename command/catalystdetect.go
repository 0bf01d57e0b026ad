package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/frantjc/catalystdetect"
	"github.com/frantjc/catalystdetect/defaults"
	"github.com/frantjc/catalystdetect/macos"
	"github.com/frantjc/catalystdetect/otool"
	xos "github.com/frantjc/x/os"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"

	ManifestReaderPlist    = "plist"
	ManifestReaderDefaults = "defaults"

	InspectorAuto  = "auto"
	InspectorOtool = "otool"
	InspectorMachO = "macho"
)

// NewCatalystDetect returns the root command for
// catalystdetect which acts as its CLI entrypoint.
func NewCatalystDetect() *cobra.Command {
	var (
		v   = viper.New()
		cmd = &cobra.Command{
			Use:   "catalystdetect path/to/Some.app",
			Short: "Tell whether a macOS application is built with Mac Catalyst",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx        = cmd.Context()
					log        = catalystdetect.LoggerFrom(ctx)
					bundlePath = filepath.Clean(args[0])
				)

				if err := catalystdetect.ValidateBundlePath(args[0]); err != nil {
					return err
				}

				output := v.GetString("output")
				switch output {
				case OutputText, OutputJSON, OutputYAML:
				default:
					return xos.NewExitCodeError(fmt.Errorf("unknown output %q", output), catalystdetect.ExitCodeUsage)
				}

				manifest, err := newManifestReader(v.GetString("manifest-reader"), v.GetString("defaults"))
				if err != nil {
					return err
				}

				linkage, err := newLinkageInspector(v.GetString("inspector"), v.GetString("otool"))
				if err != nil {
					return err
				}

				classifier := &catalystdetect.Classifier{
					Manifest: manifest,
					Linkage:  linkage,
					Timeout:  v.GetDuration("timeout"),
					Digest:   v.GetBool("digest"),
				}

				log.Info("classifying " + bundlePath)
				if info, err := macos.ReadInfo(catalystdetect.InfoPlistPath(bundlePath)); err == nil {
					log.Info("read manifest", "identifier", info.CFBundleIdentifier, "version", info.CFBundleShortVersionString, "platforms", info.CFBundleSupportedPlatforms)
				} else {
					log.V(1).Info("read manifest", "err", err)
				}

				res := classifier.Classify(ctx, bundlePath)

				if err := encode(cmd.OutOrStdout(), output, res); err != nil {
					return err
				}

				if res.Status == catalystdetect.StatusUnresolvable && v.GetBool("fail-unresolvable") {
					return xos.NewExitCodeError(fmt.Errorf("%s: %s", bundlePath, res.Reason), 1)
				}

				return nil
			},
		}
	)

	cmd.Flags().StringP("output", "o", OutputText, "output format, one of text, json or yaml")
	cmd.Flags().Duration("timeout", catalystdetect.DefaultTimeout, "bound on each manifest read and linkage inspection, negative for none")
	cmd.Flags().String("manifest-reader", ManifestReaderPlist, "how to read Info.plist, one of plist or defaults")
	cmd.Flags().String("inspector", InspectorAuto, "how to list linked libraries, one of auto, otool or macho")
	cmd.Flags().String("otool", "otool", "path to otool")
	cmd.Flags().String("defaults", "defaults", "path to defaults")
	cmd.Flags().Bool("fail-unresolvable", false, "exit non-zero when the executable cannot be found")
	cmd.Flags().Bool("digest", false, "report the digest of the executable")

	v.SetEnvPrefix("CATALYSTDETECT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())

	return SetCommon(cmd, catalystdetect.SemVer())
}

func newManifestReader(kind, defaultsPath string) (catalystdetect.ManifestReader, error) {
	switch kind {
	case ManifestReaderPlist:
		return macos.PlistManifestReader{}, nil
	case ManifestReaderDefaults:
		return defaults.Command(defaultsPath), nil
	}

	return nil, xos.NewExitCodeError(fmt.Errorf("unknown manifest reader %q", kind), catalystdetect.ExitCodeUsage)
}

func newLinkageInspector(kind, otoolPath string) (catalystdetect.LinkageInspector, error) {
	switch kind {
	case InspectorAuto:
		if name, err := exec.LookPath(otoolPath); err == nil {
			return otool.Command(name), nil
		}

		return macos.MachOInspector{}, nil
	case InspectorOtool:
		return otool.Command(otoolPath), nil
	case InspectorMachO:
		return macos.MachOInspector{}, nil
	}

	return nil, xos.NewExitCodeError(fmt.Errorf("unknown inspector %q", kind), catalystdetect.ExitCodeUsage)
}

func encode(w io.Writer, output string, res *catalystdetect.Result) error {
	switch output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(res)
	case OutputText:
		if _, err := fmt.Fprintln(w, "Name:", res.DisplayName); err != nil {
			return err
		}

		if res.IconPath != "" {
			if _, err := fmt.Fprintln(w, "Icon:", res.IconPath); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintln(w, res.Message)
		return err
	}

	return xos.NewExitCodeError(fmt.Errorf("unknown output %q", output), catalystdetect.ExitCodeUsage)
}
