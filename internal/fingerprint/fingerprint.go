// Package fingerprint turns a decoded image into the pair of identifiers an
// alt-text library matches on: a SHA-256 digest of a 100×100 greyscale
// reduction for exact matches, and a zigzag-ordered block of low-frequency
// DCT coefficients of a 32×32 reduction for similarity matches.
//
// Everything here is a pure function of its input. Build may be called from
// any number of goroutines.
package fingerprint

import (
	"context"
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/AnyUserName/altprint-cli/internal/dct"
)

// Fingerprint is the unit exchanged with the remote matching service.
// Field names are part of the wire format.
type Fingerprint struct {
	SHA256 string    `json:"sha256"`
	DCT    []float64 `json:"dct"`
}

// Params sets the resample edges and trim size. Only DefaultParams produces
// fingerprints the alt-text library understands.
type Params struct {
	DescriptorEdge int `json:"descriptor_edge"`
	TrimSize       int `json:"trim_size"`
	DigestEdge     int `json:"digest_edge"`
}

// DefaultParams: 32×32 DCT trimmed to 8×8 (64 values), 100×100 digest.
var DefaultParams = Params{DescriptorEdge: 32, TrimSize: 8, DigestEdge: 100}

// DescriptorLen is the number of values in a descriptor built with p.
func (p Params) DescriptorLen() int { return p.TrimSize * p.TrimSize }

// Validate rejects sizes the pipeline cannot run with.
func (p Params) Validate() error {
	switch {
	case p.DescriptorEdge <= 0 || p.DigestEdge <= 0 || p.TrimSize <= 0:
		return errors.Errorf("params: sizes must be positive: %+v", p)
	case p.TrimSize > p.DescriptorEdge:
		return errors.Errorf("params: trim %d exceeds descriptor edge %d", p.TrimSize, p.DescriptorEdge)
	}
	return nil
}

// Builder runs both branches of the pipeline with a fixed set of Params.
type Builder struct {
	params Params
}

// NewBuilder returns a Builder for p.
func NewBuilder(p Params) (*Builder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Builder{params: p}, nil
}

// Params returns the builder's parameters.
func (b *Builder) Params() Params { return b.params }

var defaultBuilder = &Builder{params: DefaultParams}

// Build fingerprints img with DefaultParams.
func Build(img image.Image) (Fingerprint, error) {
	return defaultBuilder.Build(context.Background(), img)
}

// Build computes the descriptor and digest of img. The two branches resample
// independently and run concurrently; ctx only guards against starting work
// after cancellation since neither branch blocks.
func (b *Builder) Build(ctx context.Context, img image.Image) (Fingerprint, error) {
	if img == nil {
		return Fingerprint{}, errors.Wrap(ErrInvalidImage, "nil image")
	}
	if r := img.Bounds(); r.Dx() <= 0 || r.Dy() <= 0 {
		return Fingerprint{}, errors.Wrapf(ErrInvalidImage, "zero-sized image %dx%d", r.Dx(), r.Dy())
	}

	var fp Fingerprint
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, err := b.Descriptor(img)
		fp.DCT = d
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := b.Digest(img)
		fp.SHA256 = s
		return err
	})
	if err := g.Wait(); err != nil {
		return Fingerprint{}, err
	}
	return fp, nil
}

// Descriptor runs resample → greyscale → DCT → trim → zigzag.
func (b *Builder) Descriptor(img image.Image) ([]float64, error) {
	small, err := Resample(img, b.params.DescriptorEdge)
	if err != nil {
		return nil, err
	}
	grey, err := Greyscale(small)
	if err != nil {
		return nil, err
	}
	freq, err := dct.Transform(grey)
	if err != nil {
		return nil, invalidf(err, "transform")
	}
	low, err := dct.TopLeft(freq, b.params.TrimSize)
	if err != nil {
		return nil, invalidf(err, "trim")
	}
	return dct.Zigzag(low), nil
}

// Digest runs resample → greyscale → SHA-256.
func (b *Builder) Digest(img image.Image) (string, error) {
	small, err := Resample(img, b.params.DigestEdge)
	if err != nil {
		return "", err
	}
	grey, err := Greyscale(small)
	if err != nil {
		return "", err
	}
	return Digest(grey)
}

// Distance is the Euclidean distance between two descriptors.
func Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Errorf("descriptor lengths differ: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Check validates a fingerprint received from elsewhere, e.g. a manifest.
func (fp Fingerprint) Check(p Params) error {
	if len(fp.SHA256) != 64 {
		return errors.Errorf("sha256 must be 64 hex chars, got %d", len(fp.SHA256))
	}
	for _, c := range fp.SHA256 {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return errors.Errorf("sha256 has non-hex character %q", c)
		}
	}
	if len(fp.DCT) != p.DescriptorLen() {
		return errors.Errorf("dct must have %d values, got %d", p.DescriptorLen(), len(fp.DCT))
	}
	for i, v := range fp.DCT {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("dct[%d] is not finite", i)
		}
	}
	return nil
}
