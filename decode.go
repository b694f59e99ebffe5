package bmfont

import (
	"io/fs"
	"os"
)

// DecodeFlags selects parts of the descriptor to discard while
// decoding. Skipped blocks are consumed without being interpreted, so
// decoding succeeds even when a skipped block's payload is malformed.
// The zero value decodes everything.
type DecodeFlags uint8

const (
	// SkipInfo discards the info block.
	SkipInfo DecodeFlags = 1 << iota

	// SkipCommon discards the common block.
	SkipCommon

	// SkipKerning discards all kerning pairs.
	SkipKerning

	// SkipPages discards the page name table.
	SkipPages

	// SkipMeta discards the info and common blocks.
	SkipMeta = SkipInfo | SkipCommon

	// SkipNonChar discards everything except the glyph records.
	SkipNonChar = SkipMeta | SkipKerning | SkipPages
)

// Decode parses a font descriptor in either the binary or the text
// encoding, autodetecting which one data holds. The input must be fully
// materialized; Decode never reads beyond the given slice and does not
// retain it. XML input is detected but not decodable and returns
// ErrXMLUnsupported, and zero-byte input returns ErrEmptyInput rather
// than an empty text-form font.
func Decode(data []byte, flags DecodeFlags) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	switch Detect(data) {
	case FormatBinary:
		return decodeBinary(data, flags)
	case FormatXML:
		return nil, ErrXMLUnsupported
	default:
		return decodeText(data, flags)
	}
}

// DecodeFile reads the named file and decodes it with Decode.
func DecodeFile(path string, flags DecodeFlags) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, flags)
}

// DecodeFS reads the named file from fsys and decodes it with Decode.
// Handy with embedded descriptors:
//
//	//go:embed assets/*.fnt
//	var assets embed.FS
//
//	font, err := bmfont.DecodeFS(assets, "assets/hud.fnt", 0)
func DecodeFS(fsys fs.FS, name string, flags DecodeFlags) (*Font, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return Decode(data, flags)
}

// setPage stores a page file name at the given id, growing the page
// table when the id lies beyond it. Page ids arriving out of range of
// the declared count are accepted (descriptors in the wild skip and
// exceed ids); the growth is logged since it usually signals a
// descriptor whose common block disagrees with its page entries.
func (f *Font) setPage(id int, name string) {
	if id >= len(f.Pages) {
		if f.Common.Pages > 0 {
			Logger().Warn("bmfont: page id exceeds declared page count",
				"id", id, "declared", f.Common.Pages)
		}
		grown := make([]string, id+1)
		copy(grown, f.Pages)
		f.Pages = grown
	}
	f.Pages[id] = name
}
