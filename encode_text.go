package bmfont

import (
	"slices"
	"strconv"
)

// MarshalText implements encoding.TextMarshaler. The error is always
// nil.
func (f *Font) MarshalText() ([]byte, error) {
	return f.AppendText(nil)
}

// AppendText implements encoding.TextAppender, appending the text form
// of the font to b. Lines follow the layout of generator output: info,
// common, one page line per entry, a chars count, the char lines, a
// kernings count, and the kerning lines, each terminated by '\n'. The
// chars and kernings counts are computed from the slices, and both
// count lines are written even when zero. Boolean keys are derived by
// masking the stored bit fields, and charset is always written as ""
// since the model keeps only the binary form's numeric charset id. The
// error is always nil.
func (f *Font) AppendText(b []byte) ([]byte, error) {
	b = slices.Grow(b, 192+40*len(f.Pages)+112*len(f.Chars)+48*len(f.Kernings))

	b = append(b, "info"...)
	b = appendKeyQuoted(b, "face", f.Info.Name)
	b = appendKeyInt(b, "size", int64(f.Info.FontSize))
	b = appendKeyBit(b, "bold", f.Info.BitField&InfoBold)
	b = appendKeyBit(b, "italic", f.Info.BitField&InfoItalic)
	b = appendKeyQuoted(b, "charset", "")
	b = appendKeyBit(b, "unicode", f.Info.BitField&InfoUnicode)
	b = appendKeyUint(b, "stretchH", uint64(f.Info.StretchH))
	b = appendKeyBit(b, "smooth", f.Info.BitField&InfoSmooth)
	b = appendKeyUint(b, "aa", uint64(f.Info.AA))
	b = appendKeyByteList(b, "padding", f.Info.Padding[:])
	b = appendKeyByteList(b, "spacing", f.Info.Spacing[:])
	b = appendKeyUint(b, "outline", uint64(f.Info.Outline))
	b = append(b, '\n')

	b = append(b, "common"...)
	b = appendKeyUint(b, "lineHeight", uint64(f.Common.LineHeight))
	b = appendKeyUint(b, "base", uint64(f.Common.Base))
	b = appendKeyUint(b, "scaleW", uint64(f.Common.ScaleW))
	b = appendKeyUint(b, "scaleH", uint64(f.Common.ScaleH))
	b = appendKeyUint(b, "pages", uint64(f.Common.Pages))
	b = appendKeyBit(b, "packed", f.Common.BitField&CommonPacked)
	b = appendKeyUint(b, "alphaChnl", uint64(f.Common.AlphaChnl))
	b = appendKeyUint(b, "redChnl", uint64(f.Common.RedChnl))
	b = appendKeyUint(b, "greenChnl", uint64(f.Common.GreenChnl))
	b = appendKeyUint(b, "blueChnl", uint64(f.Common.BlueChnl))
	b = append(b, '\n')

	for id, name := range f.Pages {
		b = append(b, "page"...)
		b = appendKeyInt(b, "id", int64(id))
		b = appendKeyQuoted(b, "file", name)
		b = append(b, '\n')
	}

	b = append(b, "chars"...)
	b = appendKeyInt(b, "count", int64(len(f.Chars)))
	b = append(b, '\n')
	for _, c := range f.Chars {
		b = append(b, "char"...)
		b = appendKeyInt(b, "id", int64(c.ID))
		b = appendKeyUint(b, "x", uint64(c.X))
		b = appendKeyUint(b, "y", uint64(c.Y))
		b = appendKeyUint(b, "width", uint64(c.Width))
		b = appendKeyUint(b, "height", uint64(c.Height))
		b = appendKeyInt(b, "xoffset", int64(c.XOffset))
		b = appendKeyInt(b, "yoffset", int64(c.YOffset))
		b = appendKeyInt(b, "xadvance", int64(c.XAdvance))
		b = appendKeyUint(b, "page", uint64(c.Page))
		b = appendKeyUint(b, "chnl", uint64(c.Chnl))
		b = append(b, '\n')
	}

	b = append(b, "kernings"...)
	b = appendKeyInt(b, "count", int64(len(f.Kernings)))
	b = append(b, '\n')
	for _, k := range f.Kernings {
		b = append(b, "kerning"...)
		b = appendKeyInt(b, "first", int64(k.First))
		b = appendKeyInt(b, "second", int64(k.Second))
		b = appendKeyInt(b, "amount", int64(k.Amount))
		b = append(b, '\n')
	}
	return b, nil
}

func appendKey(b []byte, key string) []byte {
	b = append(b, ' ')
	b = append(b, key...)
	return append(b, '=')
}

func appendKeyUint(b []byte, key string, v uint64) []byte {
	return strconv.AppendUint(appendKey(b, key), v, 10)
}

func appendKeyInt(b []byte, key string, v int64) []byte {
	return strconv.AppendInt(appendKey(b, key), v, 10)
}

// appendKeyBit writes 1 when any bit of masked is set, else 0.
func appendKeyBit(b []byte, key string, masked uint8) []byte {
	b = appendKey(b, key)
	if masked != 0 {
		return append(b, '1')
	}
	return append(b, '0')
}

// appendKeyQuoted writes the value double-quoted, escaping the two
// characters the tokenizer unescapes.
func appendKeyQuoted(b []byte, key, v string) []byte {
	b = appendKey(b, key)
	b = append(b, '"')
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\\' {
			b = append(b, '\\')
		}
		b = append(b, c)
	}
	return append(b, '"')
}

func appendKeyByteList(b []byte, key string, vs []uint8) []byte {
	b = appendKey(b, key)
	for i, v := range vs {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendUint(b, uint64(v), 10)
	}
	return b
}
