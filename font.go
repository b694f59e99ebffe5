package bmfont

// Format identifies the on-disk encoding of a font descriptor.
type Format uint8

const (
	// FormatBinary is the compact binary encoding (BMF signature).
	FormatBinary Format = iota

	// FormatText is the line-oriented key=value encoding.
	FormatText

	// FormatXML is the XML encoding. It is detected so callers get a
	// precise error, but no decoder exists for it.
	FormatXML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Info block bit-field masks. The text form re-derives these flags on
// encode; the binary form stores the byte as-is.
const (
	// InfoBold is set when the font was generated from a bold face.
	InfoBold uint8 = 0x10

	// InfoItalic is set when the font was generated from an italic face.
	InfoItalic uint8 = 0x20

	// InfoUnicode is set when char ids are Unicode code points rather
	// than indices into the charset named by Info.CharSet.
	InfoUnicode uint8 = 0x40

	// InfoSmooth is set when smoothing was applied to the glyph bitmaps.
	InfoSmooth uint8 = 0x80
)

// Common block bit-field masks.
const (
	// CommonPacked is set when each texture channel holds distinct
	// glyph data instead of all channels repeating the same glyphs.
	CommonPacked uint8 = 0x01
)

// Info carries the generator settings the font was exported with.
// It corresponds to the binary info block and the text "info" line.
type Info struct {
	// FontSize is the size the font was generated at. Negative values
	// mean the size refers to the character height instead of the em.
	FontSize int16

	// BitField packs the bold, italic, unicode and smooth flags; see
	// the Info* mask constants.
	BitField uint8

	// CharSet is the OEM charset identifier used when the unicode flag
	// is clear. The text form has no numeric slot for it, so text
	// decoding always leaves it zero. See CharsetEncoding.
	CharSet uint8

	// StretchH is the horizontal stretch applied, in percent (100 = none).
	StretchH uint16

	// AA is the supersampling level used (1 = none).
	AA uint8

	// Padding is the padding baked around each glyph, in the order
	// top, right, bottom, left.
	Padding [4]uint8

	// Spacing is the spacing between glyphs on the texture, horizontal
	// then vertical.
	Spacing [2]uint8

	// Outline is the outline thickness in pixels.
	Outline uint8

	// Name is the display name of the source font face.
	Name string
}

// Bold reports whether the bold flag is set.
func (i Info) Bold() bool { return i.BitField&InfoBold != 0 }

// Italic reports whether the italic flag is set.
func (i Info) Italic() bool { return i.BitField&InfoItalic != 0 }

// Unicode reports whether char ids are Unicode code points.
func (i Info) Unicode() bool { return i.BitField&InfoUnicode != 0 }

// Smooth reports whether the smoothing flag is set.
func (i Info) Smooth() bool { return i.BitField&InfoSmooth != 0 }

// Common carries the rendering parameters shared by all glyphs.
// It corresponds to the binary common block and the text "common" line.
type Common struct {
	// LineHeight is the vertical distance between two lines of text,
	// in pixels.
	LineHeight uint16

	// Base is the distance from the top of the line to the baseline,
	// in pixels.
	Base uint16

	// ScaleW, ScaleH are the texture page dimensions in pixels.
	ScaleW uint16
	ScaleH uint16

	// Pages is the declared number of texture pages.
	Pages uint16

	// BitField packs the packed flag; see CommonPacked.
	BitField uint8

	// AlphaChnl, RedChnl, GreenChnl and BlueChnl describe what each
	// texture channel holds.
	AlphaChnl ChannelContent
	RedChnl   ChannelContent
	GreenChnl ChannelContent
	BlueChnl  ChannelContent
}

// Packed reports whether the packed flag is set.
func (c Common) Packed() bool { return c.BitField&CommonPacked != 0 }

// ChannelContent describes what a texture channel holds.
type ChannelContent uint8

const (
	// ChannelGlyph means the channel holds glyph coverage.
	ChannelGlyph ChannelContent = iota

	// ChannelOutline means the channel holds outline coverage.
	ChannelOutline

	// ChannelGlyphAndOutline means the channel holds glyph and outline
	// coverage combined.
	ChannelGlyphAndOutline

	// ChannelZero means the channel is always zero.
	ChannelZero

	// ChannelOne means the channel is always one.
	ChannelOne
)

// String returns the channel content name.
func (c ChannelContent) String() string {
	switch c {
	case ChannelGlyph:
		return "glyph"
	case ChannelOutline:
		return "outline"
	case ChannelGlyphAndOutline:
		return "glyphAndOutline"
	case ChannelZero:
		return "zero"
	case ChannelOne:
		return "one"
	default:
		return "unknown"
	}
}

// Channels is the bit mask naming the texture channels a glyph uses.
type Channels uint8

const (
	// ChannelBlue marks the blue channel.
	ChannelBlue Channels = 1 << iota

	// ChannelGreen marks the green channel.
	ChannelGreen

	// ChannelRed marks the red channel.
	ChannelRed

	// ChannelAlpha marks the alpha channel.
	ChannelAlpha

	// ChannelAll marks all four channels.
	ChannelAll Channels = ChannelBlue | ChannelGreen | ChannelRed | ChannelAlpha
)

// String returns the |-separated names of the set channels, "none" for
// the empty mask and "all" when every channel is set.
func (c Channels) String() string {
	if c == 0 {
		return "none"
	}
	if c == ChannelAll {
		return "all"
	}
	var s string
	if c&ChannelBlue != 0 {
		s += "blue|"
	}
	if c&ChannelGreen != 0 {
		s += "green|"
	}
	if c&ChannelRed != 0 {
		s += "red|"
	}
	if c&ChannelAlpha != 0 {
		s += "alpha|"
	}
	if c&^ChannelAll != 0 {
		s += "unknown|"
	}
	return s[:len(s)-1]
}

// Char is one glyph's placement and metrics.
type Char struct {
	// ID is the Unicode code point the glyph represents (or a charset
	// code when the font's unicode flag is clear).
	ID rune

	// X, Y are the glyph's top-left corner on its texture page.
	X, Y uint16

	// Width, Height are the glyph rectangle dimensions in pixels.
	Width, Height uint16

	// XOffset, YOffset displace the glyph from the cursor position
	// (YOffset is measured from the top of the line).
	XOffset, YOffset int16

	// XAdvance is how far the cursor moves after this glyph.
	XAdvance int16

	// Page is the index of the texture page holding the glyph.
	Page uint8

	// Chnl is the channel mask the glyph's data lives in.
	Chnl Channels
}

// Kerning adjusts the horizontal position of Second when it directly
// follows First.
type Kerning struct {
	// First, Second are the code points of the adjacent pair.
	First, Second rune

	// Amount is the adjustment in pixels, usually negative.
	Amount int16
}

// Font is the decoded form of a BMFont descriptor. A Font produced by
// Decode is never mutated by this package afterwards; it is a plain
// value safe to share between goroutines once built. Callers may also
// populate a Font by hand and pass it straight to the encoders.
type Font struct {
	// Format records which encoding the font was decoded from. It has
	// no effect on encoding.
	Format Format

	// FileVersion is the binary format version tag (3 for every file
	// the binary decoder accepts). Fonts decoded from text keep zero,
	// since the text form carries no version.
	FileVersion uint8

	// Info is the generator metadata block.
	Info Info

	// Common is the shared rendering block.
	Common Common

	// Pages maps page id to texture file name.
	Pages []string

	// Chars holds the glyph records in declaration order. Duplicate
	// ids are allowed; lookups return the first match.
	Chars []Char

	// Kernings holds the kerning pairs in declaration order.
	Kernings []Kerning
}

func (f *Font) findChar(id rune) (Char, bool) {
	for i := range f.Chars {
		if f.Chars[i].ID == id {
			return f.Chars[i], true
		}
	}
	return Char{}, false
}

// FindChar returns the first glyph record for the given code point, or
// the zero Char when the font has none (recognizable by its zero ID;
// use HasChar to distinguish a genuine id-zero glyph).
func (f *Font) FindChar(id rune) Char {
	c, _ := f.findChar(id)
	return c
}

// HasChar reports whether the font has a glyph record for the given
// code point.
func (f *Font) HasChar(id rune) bool {
	_, ok := f.findChar(id)
	return ok
}

// FindKerning returns the adjustment to apply when second directly
// follows first, or 0 when the pair has no entry. Zero is the correct
// default: absence simply means no adjustment.
func (f *Font) FindKerning(first, second rune) int16 {
	for i := range f.Kernings {
		if f.Kernings[i].First == first && f.Kernings[i].Second == second {
			return f.Kernings[i].Amount
		}
	}
	return 0
}
