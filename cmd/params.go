package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/altprint-cli/internal/profile"
)

var (
	paramDescriptorEdge int
	paramTrimSize       int
	paramDigestEdge     int
)

// addParamFlags registers the per-run overrides of a profile's sizes.
func addParamFlags(c *cobra.Command) {
	c.Flags().IntVar(&paramDescriptorEdge, "descriptor-edge", 0, "override resample edge for the DCT (0 = profile)")
	c.Flags().IntVar(&paramTrimSize, "trim", 0, "override low-frequency trim size (0 = profile)")
	c.Flags().IntVar(&paramDigestEdge, "digest-edge", 0, "override resample edge for the digest (0 = profile)")
}

// resolveProfile looks up name and applies any overrides from flags.
func resolveProfile(name string) profile.Profile {
	p := profile.Get(name).WithOverrides(paramDescriptorEdge, paramTrimSize, paramDigestEdge)
	if !p.Interop {
		fmt.Fprintf(os.Stderr, "[altprint] warning: profile %s %+v is not accepted by the alt-text library\n",
			p.Name, p.Params)
	}
	return p
}
