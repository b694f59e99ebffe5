// Package bmfont reads and writes AngelCode BMFont font descriptors.
//
// # Overview
//
// bmfont is a pure Go codec for the descriptor files produced by the
// AngelCode Bitmap Font Generator and compatible tools. It decodes both
// the binary block form (.fnt starting with "BMF") and the text
// key=value form into one Font model, and encodes that model back to
// either form. The XML form is detected but not decoded.
//
// # Quick Start
//
//	import "github.com/gogpu/bmfont"
//
//	// Decode a descriptor; the format is detected from the bytes.
//	f, err := bmfont.DecodeFile("arial.fnt", 0)
//	if err != nil {
//	    return err
//	}
//
//	// Look up glyph placement on the texture atlas.
//	c := f.FindChar('A')
//	fmt.Println(f.Pages[c.Page], c.X, c.Y, c.Width, c.Height)
//
//	// Convert between forms.
//	data, _ := f.MarshalBinary()
//
// # Formats
//
// The binary form is "BMF", a version byte, then tagged blocks
// (info, common, pages, chars, kernings), each a tag byte and a
// little-endian uint32 payload length. The text form is one line per
// tag with key=value arguments. Decoding either yields the same Font;
// encoding is available to both regardless of the source form.
//
// # Rendering
//
// The package stores atlas geometry, it does not rasterize. To draw
// with the x/image machinery, load the page images yourself and wrap
// the font in a Face:
//
//	face := bmfont.NewFace(f, pages)
//	d := font.Drawer{Dst: dst, Src: src, Face: face}
//	d.DrawString("hello")
//
// # Logging
//
// bmfont is silent by default. Install a logger with SetLogger to see
// decode summaries and warnings about tolerated irregularities.
package bmfont

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
