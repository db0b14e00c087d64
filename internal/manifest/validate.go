package manifest

import (
	"fmt"
	"sort"
)

// Validate checks the manifest for structural problems and returns one
// message per problem, sorted by asset key.
func Validate(m *Manifest) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if err := m.Params.Validate(); err != nil {
		errs = append(errs, err.Error())
		return errs
	}

	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		a := m.Assets[key]
		if a.Original.Width <= 0 || a.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, a.Original.Width, a.Original.Height))
		}
		if a.ContentKey == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing content key", key))
		}
		if err := a.Fingerprint.Check(m.Params); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		}
		if a.DuplicateOf != "" {
			orig, ok := m.Assets[a.DuplicateOf]
			switch {
			case !ok:
				errs = append(errs, fmt.Sprintf("asset %q: duplicate_of unknown asset %q", key, a.DuplicateOf))
			case orig.ContentKey != a.ContentKey:
				errs = append(errs, fmt.Sprintf("asset %q: duplicate_of %q but content keys differ", key, a.DuplicateOf))
			}
		}
	}

	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}
	return errs
}
