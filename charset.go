package bmfont

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Windows/GDI charset ids as stored in Info.CharSet when the unicode
// flag is clear. The values are the wingdi.h *_CHARSET constants that
// generators write.
const (
	CharsetANSI        uint8 = 0
	CharsetDefault     uint8 = 1
	CharsetSymbol      uint8 = 2
	CharsetMac         uint8 = 77
	CharsetShiftJIS    uint8 = 128
	CharsetHangul      uint8 = 129
	CharsetJohab       uint8 = 130
	CharsetGB2312      uint8 = 134
	CharsetChineseBig5 uint8 = 136
	CharsetGreek       uint8 = 161
	CharsetTurkish     uint8 = 162
	CharsetVietnamese  uint8 = 163
	CharsetHebrew      uint8 = 177
	CharsetArabic      uint8 = 178
	CharsetBaltic      uint8 = 186
	CharsetRussian     uint8 = 204
	CharsetThai        uint8 = 222
	CharsetEastEurope  uint8 = 238
	CharsetOEM         uint8 = 255
)

// CharsetEncoding returns the character encoding named by a GDI charset
// id. It reports false for ids with no usable mapping: Default and
// Symbol have no defined repertoire, and Johab has no decoder here.
func CharsetEncoding(id uint8) (encoding.Encoding, bool) {
	switch id {
	case CharsetANSI:
		return charmap.Windows1252, true
	case CharsetMac:
		return charmap.Macintosh, true
	case CharsetShiftJIS:
		return japanese.ShiftJIS, true
	case CharsetHangul:
		return korean.EUCKR, true
	case CharsetGB2312:
		return simplifiedchinese.GBK, true
	case CharsetChineseBig5:
		return traditionalchinese.Big5, true
	case CharsetGreek:
		return charmap.Windows1253, true
	case CharsetTurkish:
		return charmap.Windows1254, true
	case CharsetVietnamese:
		return charmap.Windows1258, true
	case CharsetHebrew:
		return charmap.Windows1255, true
	case CharsetArabic:
		return charmap.Windows1256, true
	case CharsetBaltic:
		return charmap.Windows1257, true
	case CharsetRussian:
		return charmap.Windows1251, true
	case CharsetThai:
		return charmap.Windows874, true
	case CharsetEastEurope:
		return charmap.Windows1250, true
	case CharsetOEM:
		return charmap.CodePage437, true
	default:
		return nil, false
	}
}

// Encoding returns the character encoding of the font's char ids. A
// font with the unicode flag set has no charset encoding: its ids are
// already Unicode code points.
func (i Info) Encoding() (encoding.Encoding, bool) {
	if i.Unicode() {
		return nil, false
	}
	return CharsetEncoding(i.CharSet)
}

// CharsetRune decodes one legacy code unit into the rune it denotes.
// Char ids in a font whose unicode flag is clear are code units of the
// info charset rather than Unicode code points: one byte for the
// single-byte charsets, two bytes (lead<<8 | trail) for the East Asian
// double-byte charsets. Ids outside the charset's repertoire, and ids
// under a charset with no mapping, report false.
func CharsetRune(charset uint8, id rune) (rune, bool) {
	enc, ok := CharsetEncoding(charset)
	if !ok || id < 0 {
		return 0, false
	}
	var raw []byte
	switch {
	case id <= 0xFF:
		raw = []byte{byte(id)}
	case id <= 0xFFFF:
		raw = []byte{byte(id >> 8), byte(id)}
	default:
		return 0, false
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return 0, false
	}
	r, size := utf8.DecodeRune(decoded)
	if r == utf8.RuneError || size != len(decoded) {
		return 0, false
	}
	return r, true
}
