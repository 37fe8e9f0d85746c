package cursorfx

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// petalPalette is the per-variant tint table; the Color field on a petal
// indexes into it modulo its length.
var petalPalette = [][4]float32{
	{0.98, 0.68, 0.80, 0.95},
	{0.95, 0.55, 0.70, 0.95},
	{0.99, 0.80, 0.88, 0.92},
	{0.90, 0.45, 0.62, 0.95},
}

// LoadSpriteRGBA decodes a PNG sprite and rescales it to a size x size RGBA
// image suitable for texture upload.
func LoadSpriteRGBA(path string, size int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite %s: %w", path, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// proceduralPetalRGBA draws a soft elliptical petal used when no sprite is
// configured. Alpha falls off quadratically toward the edge.
func proceduralPetalRGBA(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Ellipse squashed on x for a petal-ish silhouette.
			dx := (float64(x) - c) / (c * 0.7)
			dy := (float64(y) - c) / c
			d2 := dx*dx + dy*dy
			if d2 >= 1 {
				continue
			}
			a := (1 - d2) * (1 - d2)
			off := img.PixOffset(x, y)
			img.Pix[off+0] = 255
			img.Pix[off+1] = 255
			img.Pix[off+2] = 255
			img.Pix[off+3] = uint8(a * 255)
		}
	}
	return img
}

// petalSpriteRGBA resolves the configured sprite, falling back to the
// procedural one on any load failure.
func petalSpriteRGBA(cfg PetalConfig, log Logger) *image.RGBA {
	if cfg.SpritePath == "" {
		return proceduralPetalRGBA(cfg.SpriteSize)
	}
	img, err := LoadSpriteRGBA(cfg.SpritePath, cfg.SpriteSize)
	if err != nil {
		log.Warnf("petal sprite: %v, using procedural fallback", err)
		return proceduralPetalRGBA(cfg.SpriteSize)
	}
	return img
}
