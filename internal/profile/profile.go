package profile

import "github.com/AnyUserName/altprint-cli/internal/fingerprint"

// Default is the profile whose fingerprints the alt-text library accepts.
const Default = "alt-text-org"

// Profile names a set of fingerprint parameters.
type Profile struct {
	Name   string
	Params fingerprint.Params
	// Interop reports whether the remote library can match these fingerprints.
	Interop bool
}

// Built-in profiles.
var profiles = map[string]Profile{
	Default: {
		Name:    Default,
		Params:  fingerprint.DefaultParams,
		Interop: true,
	},
	"fine": {
		Name: "fine",
		Params: fingerprint.Params{
			DescriptorEdge: 64,
			TrimSize:       16,
			DigestEdge:     100,
		},
	},
}

// Get returns a profile by name. Falls back to alt-text-org if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[Default]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles, default first.
func Names() []string {
	return []string{Default, "fine"}
}

// WithOverrides returns p with any positive override applied. Overriding
// anything marks the profile as no longer interoperable.
func (p Profile) WithOverrides(descriptorEdge, trimSize, digestEdge int) Profile {
	set := func(dst *int, v int) {
		if v > 0 && v != *dst {
			*dst = v
			p.Interop = false
		}
	}
	set(&p.Params.DescriptorEdge, descriptorEdge)
	set(&p.Params.TrimSize, trimSize)
	set(&p.Params.DigestEdge, digestEdge)
	return p
}
