package manifest

import "github.com/AnyUserName/altprint-cli/internal/fingerprint"

// FileName is the manifest written into the output directory.
const FileName = "altprint.manifest.json"

// Manifest is the top-level output of an altprint build.
type Manifest struct {
	Version     int                `json:"version"`
	GeneratedAt string             `json:"generated_at"`
	Profile     string             `json:"profile"`
	Params      fingerprint.Params `json:"params"`
	Interop     bool               `json:"interop"` // fingerprints usable with the alt-text library
	BuildInfo   *BuildInfo         `json:"build_info,omitempty"`
	Assets      map[string]Asset   `json:"assets"`
	Stats       Stats              `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers int `json:"workers"`
}

// Asset describes a single source image and its fingerprint.
type Asset struct {
	Original    OriginalInfo            `json:"original"`
	ContentKey  string                  `json:"content_key"`            // xxhash64 of the source bytes
	Fingerprint fingerprint.Fingerprint `json:"fingerprint"`            // wire shape: {sha256, dct}
	PHash       string                  `json:"phash,omitempty"`        // 64-bit goimagehash pHash, "p:<hex>"
	DuplicateOf string                  `json:"duplicate_of,omitempty"` // key of a byte-identical asset
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes int64 `json:"total_input_bytes"`
	TotalAssets     int   `json:"total_assets"`
	UniqueDigests   int   `json:"unique_digests"`
	Duplicates      int   `json:"duplicates,omitempty"` // byte-identical sources reused
	Failed          int   `json:"failed,omitempty"`     // sources that could not be fingerprinted
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
