package cursorfx

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestProceduralPetalRGBA(t *testing.T) {
	img := proceduralPetalRGBA(32)

	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}

	// Opaque-ish center, fully transparent corner.
	if a := img.RGBAAt(16, 16).A; a == 0 {
		t.Error("center pixel should be visible")
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner pixel should be transparent, alpha = %d", a)
	}
}

func TestLoadSpriteRGBA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "petal.png")
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.Set(x, y, image.White)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadSpriteRGBA(path, 64)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("sprite not rescaled, bounds %v", img.Bounds())
	}
}

func TestLoadSpriteRGBA_MissingFile(t *testing.T) {
	if _, err := LoadSpriteRGBA("/does/not/exist.png", 64); err == nil {
		t.Error("expected an error for a missing sprite")
	}
}

func TestPetalSpriteRGBA_FallsBack(t *testing.T) {
	cfg := PetalConfig{SpritePath: "/does/not/exist.png", SpriteSize: 48}
	img := petalSpriteRGBA(cfg, NewNopLogger())
	if img == nil || img.Bounds().Dx() != 48 {
		t.Error("fallback sprite missing or wrong size")
	}
}
