package bmfont

import (
	"encoding/binary"
	"slices"
)

// binarySize is the exact encoded size of the font in binary form.
func (f *Font) binarySize() int {
	size := headerSize + 5*blockHeaderSize
	size += infoFixedSize + len(f.Info.Name) + 1
	size += commonBlockSize
	for _, name := range f.Pages {
		size += len(name) + 1
	}
	size += len(f.Chars) * charRecordSize
	size += len(f.Kernings) * kernRecordSize
	return size
}

// MarshalBinary implements encoding.BinaryMarshaler. The output is a
// version 3 descriptor regardless of the FileVersion the font was
// decoded from. The error is always nil.
func (f *Font) MarshalBinary() ([]byte, error) {
	return f.AppendBinary(make([]byte, 0, f.binarySize()))
}

// AppendBinary implements encoding.BinaryAppender, appending the binary
// form of the font to b. All five blocks are emitted even when their
// payload is empty, so a font with no kernings still carries a
// zero-length kernings block. The common block's page count is written
// from Common.Pages as stored; it is not recomputed from len(Pages).
// The error is always nil.
func (f *Font) AppendBinary(b []byte) ([]byte, error) {
	b = slices.Grow(b, f.binarySize())
	b = append(b, binarySignature...)
	b = append(b, binaryVersion)

	b = appendBlockHeader(b, blockInfo, uint32(infoFixedSize+len(f.Info.Name)+1))
	b = binary.LittleEndian.AppendUint16(b, uint16(f.Info.FontSize))
	b = append(b, f.Info.BitField, f.Info.CharSet)
	b = binary.LittleEndian.AppendUint16(b, f.Info.StretchH)
	b = append(b, f.Info.AA)
	b = append(b, f.Info.Padding[:]...)
	b = append(b, f.Info.Spacing[:]...)
	b = append(b, f.Info.Outline)
	b = append(b, f.Info.Name...)
	b = append(b, 0)

	b = appendBlockHeader(b, blockCommon, commonBlockSize)
	b = binary.LittleEndian.AppendUint16(b, f.Common.LineHeight)
	b = binary.LittleEndian.AppendUint16(b, f.Common.Base)
	b = binary.LittleEndian.AppendUint16(b, f.Common.ScaleW)
	b = binary.LittleEndian.AppendUint16(b, f.Common.ScaleH)
	b = binary.LittleEndian.AppendUint16(b, f.Common.Pages)
	b = append(b, f.Common.BitField,
		uint8(f.Common.AlphaChnl), uint8(f.Common.RedChnl),
		uint8(f.Common.GreenChnl), uint8(f.Common.BlueChnl))

	pagesSize := 0
	for _, name := range f.Pages {
		pagesSize += len(name) + 1
	}
	b = appendBlockHeader(b, blockPages, uint32(pagesSize))
	for _, name := range f.Pages {
		b = append(b, name...)
		b = append(b, 0)
	}

	b = appendBlockHeader(b, blockChars, uint32(len(f.Chars)*charRecordSize))
	for _, c := range f.Chars {
		b = binary.LittleEndian.AppendUint32(b, uint32(c.ID))
		b = binary.LittleEndian.AppendUint16(b, c.X)
		b = binary.LittleEndian.AppendUint16(b, c.Y)
		b = binary.LittleEndian.AppendUint16(b, c.Width)
		b = binary.LittleEndian.AppendUint16(b, c.Height)
		b = binary.LittleEndian.AppendUint16(b, uint16(c.XOffset))
		b = binary.LittleEndian.AppendUint16(b, uint16(c.YOffset))
		b = binary.LittleEndian.AppendUint16(b, uint16(c.XAdvance))
		b = append(b, c.Page, uint8(c.Chnl))
	}

	b = appendBlockHeader(b, blockKernings, uint32(len(f.Kernings)*kernRecordSize))
	for _, k := range f.Kernings {
		b = binary.LittleEndian.AppendUint32(b, uint32(k.First))
		b = binary.LittleEndian.AppendUint32(b, uint32(k.Second))
		b = binary.LittleEndian.AppendUint16(b, uint16(k.Amount))
	}
	return b, nil
}

func appendBlockHeader(b []byte, tag uint8, size uint32) []byte {
	b = append(b, tag)
	return binary.LittleEndian.AppendUint32(b, size)
}
