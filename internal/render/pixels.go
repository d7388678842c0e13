package render

import (
	"image/color"
	"math"
)

// Background is the colour of cells outside every region.
var Background = color.RGBA{R: 16, G: 16, B: 24, A: 255}

// fillPaletteRGBA converts cell labels into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Labels past
// the end of the palette wrap around, skipping entry 0.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last && last > 0 {
			idx = (idx-1)%last + 1
		} else if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// RegionPalette returns n+1 colours: Background followed by n hues spread
// around the colour wheel by the golden angle.
func RegionPalette(n int) []color.RGBA {
	out := make([]color.RGBA, 0, n+1)
	out = append(out, Background)
	const golden = 0.618033988749895
	h := 0.0
	for i := 0; i < n; i++ {
		out = append(out, hsv(h, 0.65, 0.95))
		h = math.Mod(h+golden, 1)
	}
	return out
}

// hsv converts hue, saturation and value in [0,1] to an opaque colour.
func hsv(h, s, v float64) color.RGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: uint8(r*255 + 0.5), G: uint8(g*255 + 0.5), B: uint8(b*255 + 0.5), A: 255}
}
