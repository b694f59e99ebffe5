package bmfont

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// maxCountHint caps the capacity reserved from a chars or kernings
// count line. Counts are hints from untrusted input; entries beyond the
// cap still append normally.
const maxCountHint = 1 << 20

// decodeText decodes the text key=value form. Lines are processed in
// file order, so a descriptor that declares counts after its entries
// still decodes; blank lines are skipped. Unknown tags and unknown keys
// within a recognized tag are structural errors, since silently
// dropping either would lose data on re-encode.
func decodeText(data []byte, flags DecodeFlags) (*Font, error) {
	f := &Font{Format: FormatText}
	// Matches strings.Lines iteration: each line keeps its trailing
	// newline, and a final line without one is still yielded.
	for s := string(data); len(s) > 0; {
		var line string
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			line, s = s[:i+1], s[i+1:]
		} else {
			line, s = s, ""
		}
		tag, args, err := splitLine(line)
		if err != nil {
			return nil, err
		}
		if tag == "" {
			continue
		}
		if err := decodeLine(f, tag, args, flags); err != nil {
			return nil, err
		}
	}
	Logger().Debug("bmfont: decoded text font",
		"name", f.Info.Name,
		"pages", len(f.Pages),
		"chars", len(f.Chars),
		"kernings", len(f.Kernings))
	return f, nil
}

func decodeLine(f *Font, tag string, args []argument, flags DecodeFlags) error {
	switch tag {
	case "info":
		if flags&SkipInfo != 0 {
			return nil
		}
		return decodeInfoLine(f, args)
	case "common":
		if flags&SkipCommon != 0 {
			return nil
		}
		return decodeCommonLine(f, args, flags)
	case "page":
		if flags&SkipPages != 0 {
			return nil
		}
		return decodePageLine(f, args)
	case "chars":
		return decodeCharsLine(f, args)
	case "char":
		return decodeCharLine(f, args)
	case "kernings":
		if flags&SkipKerning != 0 {
			return nil
		}
		return decodeKerningsLine(f, args)
	case "kerning":
		if flags&SkipKerning != 0 {
			return nil
		}
		return decodeKerningLine(f, args)
	default:
		return textErr(tag, "", "", "unknown tag")
	}
}

// decodeInfoLine fills Info from an info line. Boolean keys only ever
// set their bit: a 0 leaves the field as constructed, so repeated info
// lines accumulate rather than toggle. The charset key is recognized
// but not stored; the text form carries a charset name where the binary
// form has a one-byte id, and there is no faithful mapping between them.
func decodeInfoLine(f *Font, args []argument) error {
	for _, a := range args {
		switch a.key {
		case "face":
			f.Info.Name = a.value
		case "size":
			n, err := parseFieldInt("info", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Info.FontSize = int16(n)
		case "bold":
			if a.value == "1" {
				f.Info.BitField |= InfoBold
			}
		case "italic":
			if a.value == "1" {
				f.Info.BitField |= InfoItalic
			}
		case "charset":
		case "unicode":
			if a.value == "1" {
				f.Info.BitField |= InfoUnicode
			}
		case "stretchH":
			n, err := parseFieldUint("info", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Info.StretchH = uint16(n)
		case "smooth":
			if a.value == "1" {
				f.Info.BitField |= InfoSmooth
			}
		case "aa":
			n, err := parseFieldUint("info", a.key, a.value, 8)
			if err != nil {
				return err
			}
			f.Info.AA = uint8(n)
		case "padding":
			if err := parseByteList("info", a.key, a.value, f.Info.Padding[:]); err != nil {
				return err
			}
		case "spacing":
			if err := parseByteList("info", a.key, a.value, f.Info.Spacing[:]); err != nil {
				return err
			}
		case "outline":
			n, err := parseFieldUint("info", a.key, a.value, 8)
			if err != nil {
				return err
			}
			f.Info.Outline = uint8(n)
		default:
			return textErr("info", a.key, a.value, "unknown argument")
		}
	}
	return nil
}

func decodeCommonLine(f *Font, args []argument, flags DecodeFlags) error {
	for _, a := range args {
		switch a.key {
		case "lineHeight":
			n, err := parseFieldUint("common", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Common.LineHeight = uint16(n)
		case "base":
			n, err := parseFieldUint("common", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Common.Base = uint16(n)
		case "scaleW":
			n, err := parseFieldUint("common", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Common.ScaleW = uint16(n)
		case "scaleH":
			n, err := parseFieldUint("common", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Common.ScaleH = uint16(n)
		case "pages":
			n, err := parseFieldUint("common", a.key, a.value, 16)
			if err != nil {
				return err
			}
			f.Common.Pages = uint16(n)
			if flags&SkipPages == 0 {
				pages := make([]string, f.Common.Pages)
				copy(pages, f.Pages)
				f.Pages = pages
			}
		case "packed":
			if a.value == "1" {
				f.Common.BitField |= CommonPacked
			}
		case "alphaChnl":
			n, err := parseFieldUint("common", a.key, a.value, 8)
			if err != nil {
				return err
			}
			f.Common.AlphaChnl = ChannelContent(n)
		case "redChnl":
			n, err := parseFieldUint("common", a.key, a.value, 8)
			if err != nil {
				return err
			}
			f.Common.RedChnl = ChannelContent(n)
		case "greenChnl":
			n, err := parseFieldUint("common", a.key, a.value, 8)
			if err != nil {
				return err
			}
			f.Common.GreenChnl = ChannelContent(n)
		case "blueChnl":
			n, err := parseFieldUint("common", a.key, a.value, 8)
			if err != nil {
				return err
			}
			f.Common.BlueChnl = ChannelContent(n)
		default:
			return textErr("common", a.key, a.value, "unknown argument")
		}
	}
	return nil
}

func decodePageLine(f *Font, args []argument) error {
	id := 0
	file := ""
	for _, a := range args {
		switch a.key {
		case "id":
			n, err := parseFieldUint("page", a.key, a.value, 16)
			if err != nil {
				return err
			}
			id = int(n)
		case "file":
			file = a.value
		default:
			return textErr("page", a.key, a.value, "unknown argument")
		}
	}
	f.setPage(id, file)
	return nil
}

func decodeCharsLine(f *Font, args []argument) error {
	for _, a := range args {
		switch a.key {
		case "count":
			n, err := parseFieldUint("chars", a.key, a.value, 32)
			if err != nil {
				return err
			}
			f.Chars = slices.Grow(f.Chars, int(min(n, maxCountHint)))
		default:
			return textErr("chars", a.key, a.value, "unknown argument")
		}
	}
	return nil
}

func decodeCharLine(f *Font, args []argument) error {
	var c Char
	for _, a := range args {
		switch a.key {
		case "id":
			r, err := parseCodePoint("char", a.key, a.value)
			if err != nil {
				return err
			}
			c.ID = r
		case "x":
			n, err := parseFieldUint("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.X = uint16(n)
		case "y":
			n, err := parseFieldUint("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.Y = uint16(n)
		case "width":
			n, err := parseFieldUint("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.Width = uint16(n)
		case "height":
			n, err := parseFieldUint("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.Height = uint16(n)
		case "xoffset":
			n, err := parseFieldInt("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.XOffset = int16(n)
		case "yoffset":
			n, err := parseFieldInt("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.YOffset = int16(n)
		case "xadvance":
			n, err := parseFieldInt("char", a.key, a.value, 16)
			if err != nil {
				return err
			}
			c.XAdvance = int16(n)
		case "page":
			n, err := parseFieldUint("char", a.key, a.value, 8)
			if err != nil {
				return err
			}
			c.Page = uint8(n)
		case "chnl":
			n, err := parseFieldUint("char", a.key, a.value, 8)
			if err != nil {
				return err
			}
			c.Chnl = Channels(n)
		default:
			return textErr("char", a.key, a.value, "unknown argument")
		}
	}
	f.Chars = append(f.Chars, c)
	return nil
}

func decodeKerningsLine(f *Font, args []argument) error {
	for _, a := range args {
		switch a.key {
		case "count":
			n, err := parseFieldUint("kernings", a.key, a.value, 32)
			if err != nil {
				return err
			}
			f.Kernings = slices.Grow(f.Kernings, int(min(n, maxCountHint)))
		default:
			return textErr("kernings", a.key, a.value, "unknown argument")
		}
	}
	return nil
}

func decodeKerningLine(f *Font, args []argument) error {
	var k Kerning
	for _, a := range args {
		switch a.key {
		case "first":
			r, err := parseCodePoint("kerning", a.key, a.value)
			if err != nil {
				return err
			}
			k.First = r
		case "second":
			r, err := parseCodePoint("kerning", a.key, a.value)
			if err != nil {
				return err
			}
			k.Second = r
		case "amount":
			n, err := parseFieldInt("kerning", a.key, a.value, 16)
			if err != nil {
				return err
			}
			k.Amount = int16(n)
		default:
			return textErr("kerning", a.key, a.value, "unknown argument")
		}
	}
	f.Kernings = append(f.Kernings, k)
	return nil
}

func parseFieldUint(tag, key, value string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return 0, textErr(tag, key, value, "invalid unsigned integer")
	}
	return n, nil
}

func parseFieldInt(tag, key, value string, bits int) (int64, error) {
	n, err := strconv.ParseInt(value, 10, bits)
	if err != nil {
		return 0, textErr(tag, key, value, "invalid integer")
	}
	return n, nil
}

// parseCodePoint accepts both renditions of a 32-bit code point seen in
// the wild: exporters write the missing-glyph entry as id=-1 or as
// id=4294967295 depending on their integer handling.
func parseCodePoint(tag, key, value string) (rune, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < math.MinInt32 || n > math.MaxUint32 {
		return 0, textErr(tag, key, value, "invalid code point")
	}
	return rune(uint32(n)), nil
}

// parseByteList fills dst from a comma-separated list, requiring
// exactly len(dst) entries.
func parseByteList(tag, key, value string, dst []uint8) error {
	parts := strings.Split(value, ",")
	if len(parts) != len(dst) {
		return textErr(tag, key, value, fmt.Sprintf("expected %d comma-separated values", len(dst)))
	}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return textErr(tag, key, value, "invalid unsigned integer in list")
		}
		dst[i] = uint8(n)
	}
	return nil
}
