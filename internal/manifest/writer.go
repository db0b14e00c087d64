package manifest

import (
	"encoding/json"
	"os"
	"time"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
)

// New creates an empty manifest with defaults.
func New(profileName string, params fingerprint.Params, interop bool) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Params:      params,
		Interop:     interop,
		Assets:      make(map[string]Asset),
	}
}

// ComputeStats recalculates aggregate statistics from assets. Failed is
// owned by the pipeline and left untouched.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalAssets = len(m.Assets)
	digests := make(map[string]bool, len(m.Assets))
	for _, a := range m.Assets {
		s.TotalInputBytes += a.Original.Size
		digests[a.Fingerprint.SHA256] = true
		if a.DuplicateOf != "" {
			s.Duplicates++
		}
	}
	s.UniqueDigests = len(digests)
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest. Unknown fields are ignored.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
