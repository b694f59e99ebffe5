package bmfont

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face adapts a Font and its page images to golang.org/x/image/font.Face,
// so a decoded descriptor plugs straight into font.Drawer and the other
// x/image text machinery. The adapter only reads the atlas rectangles
// and metrics the descriptor stores; it rasterizes nothing itself.
//
// pages[i] is the image for Pages[i], decoded and supplied by the
// caller. A nil entry (or a short slice) makes Glyph report ok=false
// for chars on that page; metrics, advances, bounds and kerning still
// work without any page images at all.
//
// A Face never mutates its Font, so it is safe for concurrent use.
type Face struct {
	font  *Font
	pages []image.Image
}

var _ font.Face = (*Face)(nil)

// NewFace wraps a font and its page images as a font.Face. Pass nil
// pages for measurement-only use.
func NewFace(f *Font, pages []image.Image) *Face {
	return &Face{font: f, pages: pages}
}

// charFor resolves the glyph record for a rune. When the font is not
// unicode-encoded and the rune itself has no record, the rune is
// encoded through the info charset and looked up again as a legacy code
// unit.
func (a *Face) charFor(r rune) (Char, bool) {
	if c, ok := a.font.findChar(r); ok {
		return c, true
	}
	if a.font.Info.Unicode() {
		return Char{}, false
	}
	enc, ok := a.font.Info.Encoding()
	if !ok {
		return Char{}, false
	}
	raw, err := enc.NewEncoder().Bytes([]byte(string(r)))
	if err != nil {
		return Char{}, false
	}
	var id rune
	switch len(raw) {
	case 1:
		id = rune(raw[0])
	case 2:
		id = rune(raw[0])<<8 | rune(raw[1])
	default:
		return Char{}, false
	}
	return a.font.findChar(id)
}

// Close implements font.Face. It is a no-op.
func (a *Face) Close() error { return nil }

// Glyph implements font.Face. The dot sits on the baseline, so the
// glyph rectangle is placed Common.Base above it before the char's own
// offsets apply; the mask is the char's page image and maskp the
// glyph's top-left corner within it.
func (a *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	c, ok := a.charFor(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	if int(c.Page) >= len(a.pages) || a.pages[c.Page] == nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Floor() + int(c.XOffset)
	y := dot.Y.Floor() - int(a.font.Common.Base) + int(c.YOffset)
	dr = image.Rect(x, y, x+int(c.Width), y+int(c.Height))
	return dr, a.pages[c.Page], image.Pt(int(c.X), int(c.Y)), fixed.I(int(c.XAdvance)), true
}

// GlyphBounds implements font.Face.
func (a *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	c, ok := a.charFor(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	minX := int(c.XOffset)
	minY := int(c.YOffset) - int(a.font.Common.Base)
	bounds = fixed.R(minX, minY, minX+int(c.Width), minY+int(c.Height))
	return bounds, fixed.I(int(c.XAdvance)), true
}

// GlyphAdvance implements font.Face.
func (a *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	c, ok := a.charFor(r)
	if !ok {
		return 0, false
	}
	return fixed.I(int(c.XAdvance)), true
}

// Kern implements font.Face. Pairs are resolved through the same
// charset translation as glyphs, so legacy-encoded fonts kern
// correctly.
func (a *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	c0, ok := a.charFor(r0)
	if !ok {
		return 0
	}
	c1, ok := a.charFor(r1)
	if !ok {
		return 0
	}
	return fixed.I(int(a.font.FindKerning(c0.ID, c1.ID)))
}

// Metrics implements font.Face. Ascent is the common block's base (the
// distance from the line top to the baseline) and descent the rest of
// the line height. The descriptor stores no x-height or cap height, so
// both report the ascent, as bitmap faces conventionally do.
func (a *Face) Metrics() font.Metrics {
	ascent := fixed.I(int(a.font.Common.Base))
	return font.Metrics{
		Height:     fixed.I(int(a.font.Common.LineHeight)),
		Ascent:     ascent,
		Descent:    fixed.I(int(a.font.Common.LineHeight) - int(a.font.Common.Base)),
		XHeight:    ascent,
		CapHeight:  ascent,
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}
