package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/corona10/goimagehash"
	"github.com/patrickmn/go-cache"

	"github.com/AnyUserName/altprint-cli/internal/decode"
	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
	"github.com/AnyUserName/altprint-cli/internal/hasher"
	"github.com/AnyUserName/altprint-cli/internal/manifest"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// computed is the part of an asset that depends only on the source bytes.
// Byte-identical files share one.
type computed struct {
	done   chan struct{}
	width  int
	height int
	fp     fingerprint.Fingerprint
	phash  string
	err    error
}

// processImage handles a single source image: read, key, decode, fingerprint.
func (p *Pipeline) processImage(ctx context.Context, src Source) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	contentKey := hasher.ContentKey(data)

	c := p.lookup(ctx, contentKey, data)
	if c.err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, c.err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  c.width,
			Height: c.height,
			Format: src.Format,
			Size:   src.Size,
		},
		ContentKey:  contentKey,
		Fingerprint: c.fp,
		PHash:       c.phash,
	}
	return result
}

// lookup returns the computed fingerprint for contentKey, computing it from
// data if no other worker has claimed the key yet.
func (p *Pipeline) lookup(ctx context.Context, contentKey string, data []byte) *computed {
	c := &computed{done: make(chan struct{})}
	if err := p.cache.Add(contentKey, c, cache.NoExpiration); err != nil {
		v, _ := p.cache.Get(contentKey)
		other := v.(*computed)
		<-other.done
		return other
	}
	defer close(c.done)

	img, err := decode.Bytes(data)
	if err != nil {
		c.err = err
		return c
	}
	c.width, c.height = img.Bounds().Dx(), img.Bounds().Dy()

	c.fp, c.err = p.builder.Build(ctx, img)
	if c.err != nil {
		if ctx.Err() != nil {
			// Cancellation says nothing about the bytes; let a later run retry.
			p.cache.Delete(contentKey)
		}
		return c
	}

	// The pHash is auxiliary; a failure only drops the column.
	if h, err := goimagehash.PerceptionHash(img); err == nil {
		c.phash = h.ToString()
	} else {
		p.logf("warn: phash %s: %v", contentKey, err)
	}
	return c
}
