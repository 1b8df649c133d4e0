/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preview renders a compiled program to a PNG so authors can check
// placement without loading the shader. The font is basicfont's 7x13 face,
// so glyph shapes differ from the in-game font; positions, colors, sizes and
// the darkening are reproduced.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"glsltext/internal/glsl"
	"glsltext/internal/storage"
)

// LineHeight is the vertical advance per printed line at size 2, matching
// the spacing Footnote() assumes.
const LineHeight = 15

// Options controls the canvas. Zero values take defaults.
type Options struct {
	Width      int        // default 854
	Height     int        // default 480
	Background color.RGBA // default mid grey, the darken() input
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 854
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	if o.Background == (color.RGBA{}) {
		o.Background = color.RGBA{R: 96, G: 110, B: 128, A: 255}
	}
	return o
}

// Render draws every section of prog onto a new canvas.
func Render(prog *glsl.Program, opt Options) (*image.RGBA, error) {
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	opt = opt.withDefaults()
	dst := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))

	bg := opt.Background
	if prog.Darken != nil {
		bg = darken(bg, *prog.Darken)
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, sec := range prog.Sections {
		drawSection(dst, sec)
	}
	return dst, nil
}

// EncodePNG renders prog and returns the PNG bytes.
func EncodePNG(prog *glsl.Program, opt Options) ([]byte, error) {
	img, err := Render(prog, opt)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG renders prog to path.
func WritePNG(path string, prog *glsl.Program, opt Options) error {
	b, err := EncodePNG(prog, opt)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(path, b)
}

// darken mirrors mix(color.rgb, vec3(0.0), level).
func darken(c color.RGBA, level float64) color.RGBA {
	f := 1 - level
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * f)),
		G: uint8(math.Round(float64(c.G) * f)),
		B: uint8(math.Round(float64(c.B) * f)),
		A: c.A,
	}
}

func toRGBA(c glsl.RGB) color.RGBA {
	ch := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: 255}
}

// drawSection renders each text line at 1x into a scratch image and scales
// it by size/2 onto dst.
func drawSection(dst *image.RGBA, sec glsl.Section) {
	face := basicfont.Face7x13
	scale := float64(sec.Size) / 2
	if scale <= 0 {
		return
	}
	ascent := face.Metrics().Ascent.Ceil()
	cellH := face.Metrics().Height.Ceil()
	for i, ln := range sec.Lines {
		if ln.Blank || ln.Text == "" {
			continue
		}
		d := &font.Drawer{Face: face}
		w := d.MeasureString(ln.Text).Ceil()
		if w <= 0 {
			continue
		}
		scratch := image.NewRGBA(image.Rect(0, 0, w, cellH))
		d.Dst = scratch
		d.Src = image.NewUniform(toRGBA(ln.Color))
		d.Dot = fixed.P(0, ascent)
		d.DrawString(ln.Text)

		top := float64(sec.Y) + float64(i)*LineHeight*scale
		r := image.Rect(
			sec.X,
			int(math.Round(top)),
			sec.X+int(math.Round(float64(w)*scale)),
			int(math.Round(top+float64(cellH)*scale)),
		)
		draw.NearestNeighbor.Scale(dst, r, scratch, scratch.Bounds(), draw.Over, nil)
	}
}
