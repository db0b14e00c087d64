package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/altprint-cli/internal/manifest"
	"github.com/AnyUserName/altprint-cli/internal/pipeline"
	"github.com/AnyUserName/altprint-cli/internal/profile"
)

var (
	buildOutDir  string
	buildProfile string
	buildWorkers int
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Fingerprint every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
computes each image's fingerprint, and writes altprint.manifest.json.

Byte-identical files are fingerprinted once and marked duplicate_of.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./altprint_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", profile.Default, "fingerprint profile ("+strings.Join(profile.Names(), ", ")+")")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	addParamFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := resolveProfile(buildProfile)
	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (%+v, interop=%v)", prof.Name, prof.Params, prof.Interop)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p, err := pipeline.New(pipeline.Config{
		InputDir: absInput,
		Profile:  prof,
		Workers:  buildWorkers,
		Verbose:  verbose,
	})
	if err != nil {
		return err
	}

	m, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(cmd, m, manifestPath, time.Since(start))
	return nil
}

func printBuildReport(cmd *cobra.Command, m *manifest.Manifest, path string, elapsed time.Duration) {
	out := cmd.OutOrStdout()
	s := m.Stats

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  altprint build complete")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Assets:      %d\n", s.TotalAssets)
	fmt.Fprintf(out, "  Digests:     %d unique\n", s.UniqueDigests)
	if s.Duplicates > 0 {
		fmt.Fprintf(out, "  Duplicates:  %d byte-identical files\n", s.Duplicates)
	}
	if s.Failed > 0 {
		fmt.Fprintf(out, "  Failed:      %d\n", s.Failed)
	}
	fmt.Fprintf(out, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(out, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Fprintf(out, "  Workers:     %d\n", m.BuildInfo.Workers)
	}
	if !m.Interop {
		fmt.Fprintf(out, "  Note:        profile %q is not accepted by the alt-text library\n", m.Profile)
	}
	fmt.Fprintln(out)

	// Digests shared by more than one distinct file: same pixels after
	// normalization, different bytes.
	groups := map[string][]string{}
	for key, a := range m.Assets {
		if a.DuplicateOf == "" {
			groups[a.Fingerprint.SHA256] = append(groups[a.Fingerprint.SHA256], key)
		}
	}
	var shared []string
	for d, keys := range groups {
		if len(keys) > 1 {
			sort.Strings(keys)
			shared = append(shared, d)
		}
	}
	sort.Strings(shared)
	if len(shared) > 0 {
		fmt.Fprintf(out, "  Same normalized pixels (%d groups):\n", len(shared))
		for _, d := range shared {
			fmt.Fprintf(out, "    %s…  %v\n", d[:12], groups[d])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "  Manifest:    %s\n", path)
	fmt.Fprintln(out)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
