package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/altprint-cli/internal/fingerprint"
	"github.com/AnyUserName/altprint-cli/internal/manifest"
	"github.com/AnyUserName/altprint-cli/internal/profile"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// writeFixtures lays out:
//
//	banner.png           gradient
//	cards/banner-copy.png byte-identical to banner.png
//	photo.jpg            gradient as JPEG
//	broken.png           not an image
//	.hidden/skip.png     hidden dir, ignored
//	notes.txt            not an image extension, ignored
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cards"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	banner := filepath.Join(dir, "banner.png")
	require.NoError(t, imaging.Save(gradient(120, 80), banner))
	data, err := os.ReadFile(banner)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cards", "banner-copy.png"), data, 0o644))

	require.NoError(t, imaging.Save(gradient(64, 64), filepath.Join(dir, "photo.jpg")))
	require.NoError(t, imaging.Save(gradient(8, 8), filepath.Join(dir, ".hidden", "skip.png")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	return dir
}

func TestScanImages(t *testing.T) {
	dir := writeFixtures(t)
	sources, err := ScanImages(dir)
	require.NoError(t, err)

	var keys []string
	for _, s := range sources {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"banner", "broken", "cards/banner-copy", "photo"}, keys)
	assert.Equal(t, "jpeg", sources[3].Format)
	assert.Equal(t, "cards/banner-copy.png", sources[2].RelPath)
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a/b.JPG"))
	assert.True(t, IsImageFile("x.tif"))
	assert.False(t, IsImageFile("x.txt"))
	assert.False(t, IsImageFile("png"))
}

func TestRun(t *testing.T) {
	dir := writeFixtures(t)
	p, err := New(Config{InputDir: dir, Profile: profile.Get(profile.Default), Workers: 2})
	require.NoError(t, err)

	m, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, m.Assets, 3)
	assert.Equal(t, 1, m.Stats.Failed)
	assert.Equal(t, 1, m.Stats.Duplicates)
	assert.True(t, m.Interop)

	banner := m.Assets["banner"]
	copyAsset := m.Assets["cards/banner-copy"]
	assert.Equal(t, "", banner.DuplicateOf)
	assert.Equal(t, "banner", copyAsset.DuplicateOf)
	assert.Equal(t, banner.Fingerprint, copyAsset.Fingerprint)
	assert.Equal(t, banner.ContentKey, copyAsset.ContentKey)
	assert.Equal(t, 120, banner.Original.Width)
	assert.Equal(t, 80, banner.Original.Height)
	assert.NotEmpty(t, banner.PHash)

	// Pipeline output matches a direct build of the same decoded pixels.
	img, err := imaging.Open(filepath.Join(dir, "banner.png"))
	require.NoError(t, err)
	want, err := fingerprint.Build(img)
	require.NoError(t, err)
	assert.Equal(t, want, banner.Fingerprint)

	assert.Empty(t, manifest.Validate(m))
}

func TestRunAllFailed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("x"), 0o644))
	p, err := New(Config{InputDir: dir, Profile: profile.Get(profile.Default)})
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.ErrorContains(t, err, "all 1 images failed")
}

func TestRunEmptyDir(t *testing.T) {
	p, err := New(Config{InputDir: t.TempDir(), Profile: profile.Get(profile.Default)})
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.ErrorContains(t, err, "no images found")
}

func TestRunCancelled(t *testing.T) {
	dir := writeFixtures(t)
	p, err := New(Config{InputDir: dir, Profile: profile.Get(profile.Default), Workers: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLookupDoesNotCacheCancellation(t *testing.T) {
	p, err := New(Config{Profile: profile.Get(profile.Default), Workers: 1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, gradient(40, 30), imaging.PNG))
	data := buf.Bytes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := p.lookup(ctx, "k1", data)
	assert.ErrorIs(t, c.err, context.Canceled)

	c = p.lookup(context.Background(), "k1", data)
	require.NoError(t, c.err)
	assert.Equal(t, 40, c.width)
	assert.Len(t, c.fp.DCT, 64)
}

func TestRunAfterCancelledRun(t *testing.T) {
	dir := writeFixtures(t)
	p, err := New(Config{InputDir: dir, Profile: profile.Get(profile.Default), Workers: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, m)

	m, err = p.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.Assets, 3)
}

func TestNewRejectsBadProfile(t *testing.T) {
	prof := profile.Get(profile.Default).WithOverrides(4, 8, 0)
	_, err := New(Config{InputDir: t.TempDir(), Profile: prof})
	assert.Error(t, err)
}
