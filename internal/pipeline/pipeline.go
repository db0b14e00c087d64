package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
	"github.com/AnyUserName/altprint-cli/internal/manifest"
	"github.com/AnyUserName/altprint-cli/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir string
	Profile  profile.Profile
	Workers  int
	Verbose  bool
}

// Pipeline fingerprints every image under a directory.
type Pipeline struct {
	cfg     Config
	builder *fingerprint.Builder
	cache   *cache.Cache // content key → *computed
}

// New creates a configured pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	b, err := fingerprint.NewBuilder(cfg.Profile.Params)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", cfg.Profile.Name, err)
	}
	return &Pipeline{
		cfg:     cfg,
		builder: b,
		cache:   cache.New(cache.NoExpiration, 0),
	}, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[altprint] "+format+"\n", args...)
	}
}

// Run executes the full build pipeline and returns the manifest.
// Cancelling ctx stops scheduling new images and returns ctx.Err().
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images, params %+v", len(sources), p.builder.Params())

	// Step 2: Fingerprint images in parallel.
	results := make([]processResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p.logf("processing: %s", src.Key)
			results[i] = p.processImage(gctx, src)
			if results[i].err == nil {
				p.logf("done: %s (%s)", src.Key, results[i].asset.Fingerprint.SHA256[:12])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name, p.cfg.Profile.Params, p.cfg.Profile.Interop)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}
	markDuplicates(m)

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[altprint] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to fingerprint", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[altprint] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{Workers: p.cfg.Workers}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	return m, nil
}

// markDuplicates points every asset at the first key (in sort order) that
// has the same content key, so the result does not depend on scheduling.
func markDuplicates(m *manifest.Manifest) {
	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	first := make(map[string]string, len(keys))
	for _, k := range keys {
		a := m.Assets[k]
		if orig, ok := first[a.ContentKey]; ok {
			a.DuplicateOf = orig
			m.Assets[k] = a
			continue
		}
		first[a.ContentKey] = k
	}
}
