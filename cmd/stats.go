package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/corona10/goimagehash"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/altprint-cli/internal/manifest"
)

var statsMaxPHash int

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a fingerprint manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsMaxPHash, "max-phash", 6, "pHash distance at which two assets count as near-duplicates")
	rootCmd.AddCommand(statsCmd)
}

// manifestPath accepts either a manifest file or a directory holding one.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, manifest.FileName), nil
	}
	return path, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

func printStats(out io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(out, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(out, "  Profile:          %s (edge %d, trim %d, digest edge %d)\n",
		m.Profile, m.Params.DescriptorEdge, m.Params.TrimSize, m.Params.DigestEdge)
	fmt.Fprintf(out, "  Interoperable:    %v\n", m.Interop)
	if m.BuildInfo != nil {
		fmt.Fprintf(out, "  Workers:          %d\n", m.BuildInfo.Workers)
	}
	fmt.Fprintln(out)

	s := m.Stats
	fmt.Fprintf(out, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(out, "  Unique digests:   %d\n", s.UniqueDigests)
	fmt.Fprintf(out, "  Duplicates:       %d\n", s.Duplicates)
	fmt.Fprintf(out, "  Failed:           %d\n", s.Failed)
	fmt.Fprintf(out, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintln(out)

	// Per-format breakdown.
	formatStats := map[string]int{}
	for _, a := range m.Assets {
		formatStats[a.Original.Format]++
	}
	var formats []string
	for f := range formatStats {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	fmt.Fprintln(out, "  Format breakdown:")
	for _, f := range formats {
		fmt.Fprintf(out, "    %-6s  %4d files\n", f, formatStats[f])
	}
	fmt.Fprintln(out)

	pairs := nearDuplicates(m, statsMaxPHash)
	fmt.Fprintf(out, "  Near-duplicates (pHash ≤ %d): %d pairs\n", statsMaxPHash, len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(out, "    %s ~ %s (%d)\n", p.a, p.b, p.dist)
	}
	fmt.Fprintln(out)
}

type pair struct {
	a, b string
	dist int
}

// nearDuplicates lists distinct-content asset pairs whose pHashes are within
// maxDist. Assets without a pHash, and byte-identical copies, are skipped.
func nearDuplicates(m *manifest.Manifest, maxDist int) []pair {
	type entry struct {
		key  string
		hash *goimagehash.ImageHash
	}
	var entries []entry
	for key, a := range m.Assets {
		if a.PHash == "" || a.DuplicateOf != "" {
			continue
		}
		h, err := goimagehash.ImageHashFromString(a.PHash)
		if err != nil {
			logVerbose("asset %q: bad phash %q: %v", key, a.PHash, err)
			continue
		}
		entries = append(entries, entry{key, h})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	var out []pair
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			d, err := entries[i].hash.Distance(entries[j].hash)
			if err == nil && d <= maxDist {
				out = append(out, pair{entries[i].key, entries[j].key, d})
			}
		}
	}
	return out
}
