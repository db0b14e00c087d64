package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/altprint-cli/internal/decode"
	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
	"github.com/AnyUserName/altprint-cli/internal/profile"
)

var (
	fingerprintProfile string
	fingerprintIndent  bool
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <image>",
	Short: "Print the fingerprint of a single image as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runFingerprint,
}

func init() {
	fingerprintCmd.Flags().StringVarP(&fingerprintProfile, "profile", "p", profile.Default, "fingerprint profile ("+strings.Join(profile.Names(), ", ")+")")
	fingerprintCmd.Flags().BoolVar(&fingerprintIndent, "indent", false, "pretty-print the JSON")
	addParamFlags(fingerprintCmd)
	rootCmd.AddCommand(fingerprintCmd)
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	prof := resolveProfile(fingerprintProfile)
	fp, err := fingerprintFile(cmd, args[0], prof.Params)
	if err != nil {
		return err
	}
	return writeJSON(cmd, fp, fingerprintIndent)
}

// fingerprintFile decodes path and fingerprints it with params.
func fingerprintFile(cmd *cobra.Command, path string, params fingerprint.Params) (fingerprint.Fingerprint, error) {
	b, err := fingerprint.NewBuilder(params)
	if err != nil {
		return fingerprint.Fingerprint{}, err
	}
	img, err := decode.File(path)
	if err != nil {
		return fingerprint.Fingerprint{}, err
	}
	logVerbose("%s: %dx%d", path, img.Bounds().Dx(), img.Bounds().Dy())

	fp, err := b.Build(cmd.Context(), img)
	if err != nil {
		return fingerprint.Fingerprint{}, fmt.Errorf("%s: %w", path, err)
	}
	return fp, nil
}

func writeJSON(cmd *cobra.Command, v any, indent bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
