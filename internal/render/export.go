package render

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"

	"github.com/san-kum/qjulia/internal/taa"
)

// WritePNG encodes a resolved target as a PNG file.
func WritePNG(path string, t *taa.Target) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, ToImage(t)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GIFBuilder accumulates frames for an animated GIF export.
type GIFBuilder struct {
	frames []*image.Paletted
	delays []int
}

// Add quantizes a frame onto the standard palette. delay is in
// hundredths of a second, per the GIF format.
func (g *GIFBuilder) Add(t *taa.Target, delay int) {
	src := ToImage(t)
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, src.Bounds(), src, image.Point{})
	g.frames = append(g.frames, dst)
	g.delays = append(g.delays, delay)
}

// Frames reports how many frames were added.
func (g *GIFBuilder) Frames() int { return len(g.frames) }

// Save writes the looping animation.
func (g *GIFBuilder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	anim := gif.GIF{Image: g.frames, Delay: g.delays, LoopCount: 0}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
