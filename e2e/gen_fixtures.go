//go:build ignore

// gen_fixtures creates a small image set for the altprint smoke test: one
// scene in several encodings and sizes (which must fingerprint as similar),
// a byte-identical copy, an unrelated image and a transparent logo.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "variants"), 0o755); err != nil {
		panic(err)
	}

	scene := sunset(640, 400)
	save(filepath.Join(dir, "sunset.png"), scene)

	// Same scene, re-encoded and resized.
	save(filepath.Join(dir, "variants", "sunset-q60.jpg"), scene, imaging.JPEGQuality(60))
	save(filepath.Join(dir, "variants", "sunset-320.png"), imaging.Resize(scene, 320, 200, imaging.Lanczos))
	save(filepath.Join(dir, "variants", "sunset-square.jpg"), imaging.Resize(scene, 256, 256, imaging.Box))

	// Byte-identical copy.
	data, err := os.ReadFile(filepath.Join(dir, "sunset.png"))
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "variants", "sunset-copy.png"), data, 0o644); err != nil {
		panic(err)
	}

	save(filepath.Join(dir, "checker.png"), checker(300, 300, 30))
	save(filepath.Join(dir, "logo.png"), alphaGradient(100, 100))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 fixtures in %s\n", dir)
}

// sunset is a sky gradient with a bright disc low in the frame.
func sunset(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy, r := float64(w)*0.6, float64(h)*0.7, float64(h)*0.15
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fy := float64(y) / float64(h)
			c := color.NRGBA{
				R: uint8(80 + 170*fy),
				G: uint8(60 + 80*fy),
				B: uint8(160 - 120*fy),
				A: 255,
			}
			if math.Hypot(float64(x)-cx, float64(y)-cy) < r {
				c = color.NRGBA{R: 255, G: 220, B: 120, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func checker(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(20)
			if (x/cell+y/cell)%2 == 0 {
				v = 235
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func save(path string, img image.Image, opts ...imaging.EncodeOption) {
	if err := imaging.Save(img, path, opts...); err != nil {
		panic(err)
	}
}
