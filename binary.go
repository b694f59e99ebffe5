package bmfont

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
)

// Binary block tags, in the order the reference tool writes them.
const (
	blockInfo     = 1
	blockCommon   = 2
	blockPages    = 3
	blockChars    = 4
	blockKernings = 5
)

// Fixed sizes of the binary form.
const (
	headerSize      = 4  // "BMF" + version byte
	blockHeaderSize = 5  // tag byte + uint32 payload length
	infoFixedSize   = 14 // info block prefix before the font name
	commonBlockSize = 15
	charRecordSize  = 20
	kernRecordSize  = 10
)

// decodeBinary walks the tagged, length-prefixed block sequence that
// follows the 4-byte header. Blocks are processed strictly in encounter
// order and the walk ends when the input is exhausted; no block count
// is assumed. Skipped blocks are discarded byte-wise without being
// interpreted, so a truncated or malformed skipped payload cannot fail
// the decode.
func decodeBinary(data []byte, flags DecodeFlags) (*Font, error) {
	if len(data) < headerSize {
		return nil, &FormatError{
			Format: FormatBinary,
			Offset: len(data),
			Reason: "truncated file header",
		}
	}
	version := data[3]
	if version != binaryVersion {
		return nil, &FormatError{
			Format: FormatBinary,
			Offset: 3,
			Value:  strconv.Itoa(int(version)),
			Reason: fmt.Sprintf("unsupported version %d (only version %d is supported)", version, binaryVersion),
		}
	}
	f := &Font{Format: FormatBinary, FileVersion: version}

	off := headerSize
	for off < len(data) {
		if len(data)-off < blockHeaderSize {
			return nil, &FormatError{
				Format: FormatBinary,
				Offset: off,
				Reason: "truncated block header",
			}
		}
		tag := data[off]
		size := binary.LittleEndian.Uint32(data[off+1 : off+5])
		blockStart := off
		off += blockHeaderSize

		var skip bool
		switch tag {
		case blockInfo:
			skip = flags&SkipInfo != 0
		case blockCommon:
			skip = flags&SkipCommon != 0
		case blockPages:
			skip = flags&SkipPages != 0
		case blockChars:
			// No skip flag covers glyph records.
		case blockKernings:
			skip = flags&SkipKerning != 0
		default:
			return nil, &FormatError{
				Format: FormatBinary,
				Tag:    strconv.Itoa(int(tag)),
				Offset: blockStart,
				Reason: fmt.Sprintf("unknown block tag %d", tag),
			}
		}

		if skip {
			if uint64(size) >= uint64(len(data)-off) {
				off = len(data)
			} else {
				off += int(size)
			}
			continue
		}
		if uint64(size) > uint64(len(data)-off) {
			return nil, &FormatError{
				Format: FormatBinary,
				Tag:    blockTagName(tag),
				Offset: blockStart,
				Reason: fmt.Sprintf("block length %d overruns input (%d bytes left)", size, len(data)-off),
			}
		}
		payload := data[off : off+int(size)]
		off += int(size)

		var err error
		switch tag {
		case blockInfo:
			err = decodeInfoBlock(f, payload, blockStart+blockHeaderSize)
		case blockCommon:
			err = decodeCommonBlock(f, payload, blockStart+blockHeaderSize, flags)
		case blockPages:
			err = decodePagesBlock(f, payload, blockStart+blockHeaderSize)
		case blockChars:
			err = decodeCharsBlock(f, payload)
		case blockKernings:
			err = decodeKerningsBlock(f, payload)
		}
		if err != nil {
			return nil, err
		}
	}

	Logger().Debug("bmfont: decoded binary font",
		"name", f.Info.Name,
		"pages", len(f.Pages),
		"chars", len(f.Chars),
		"kernings", len(f.Kernings))
	return f, nil
}

// blockTagName maps a known block tag to the name used in errors.
func blockTagName(tag byte) string {
	switch tag {
	case blockInfo:
		return "info"
	case blockCommon:
		return "common"
	case blockPages:
		return "pages"
	case blockChars:
		return "chars"
	case blockKernings:
		return "kernings"
	default:
		return strconv.Itoa(int(tag))
	}
}

// decodeInfoBlock reads the 14-byte fixed prefix and the NUL-terminated
// font name that follows it.
func decodeInfoBlock(f *Font, payload []byte, base int) error {
	if len(payload) < infoFixedSize {
		return &FormatError{
			Format: FormatBinary,
			Tag:    "info",
			Offset: base,
			Reason: fmt.Sprintf("info block is %d bytes, need at least %d", len(payload), infoFixedSize),
		}
	}
	f.Info.FontSize = int16(binary.LittleEndian.Uint16(payload[0:2]))
	f.Info.BitField = payload[2]
	f.Info.CharSet = payload[3]
	f.Info.StretchH = binary.LittleEndian.Uint16(payload[4:6])
	f.Info.AA = payload[6]
	copy(f.Info.Padding[:], payload[7:11])
	copy(f.Info.Spacing[:], payload[11:13])
	f.Info.Outline = payload[13]

	name := payload[infoFixedSize:]
	end := bytes.IndexByte(name, 0)
	if end < 0 {
		return &FormatError{
			Format: FormatBinary,
			Tag:    "info",
			Offset: base + infoFixedSize,
			Reason: "font name is missing its NUL terminator",
		}
	}
	f.Info.Name = string(name[:end])
	return nil
}

// decodeCommonBlock reads the 15-byte common block and pre-sizes the
// page table to the declared count so later page entries can be stored
// positionally. Entries decoded before the common block survive the
// resize.
func decodeCommonBlock(f *Font, payload []byte, base int, flags DecodeFlags) error {
	if len(payload) < commonBlockSize {
		return &FormatError{
			Format: FormatBinary,
			Tag:    "common",
			Offset: base,
			Reason: fmt.Sprintf("common block is %d bytes, need %d", len(payload), commonBlockSize),
		}
	}
	f.Common.LineHeight = binary.LittleEndian.Uint16(payload[0:2])
	f.Common.Base = binary.LittleEndian.Uint16(payload[2:4])
	f.Common.ScaleW = binary.LittleEndian.Uint16(payload[4:6])
	f.Common.ScaleH = binary.LittleEndian.Uint16(payload[6:8])
	f.Common.Pages = binary.LittleEndian.Uint16(payload[8:10])
	f.Common.BitField = payload[10]
	f.Common.AlphaChnl = ChannelContent(payload[11])
	f.Common.RedChnl = ChannelContent(payload[12])
	f.Common.GreenChnl = ChannelContent(payload[13])
	f.Common.BlueChnl = ChannelContent(payload[14])

	if flags&SkipPages == 0 {
		pages := make([]string, f.Common.Pages)
		copy(pages, f.Pages)
		f.Pages = pages
	}
	return nil
}

// decodePagesBlock splits the payload on NUL boundaries and stores each
// name at the next page index. A name running past the block end is a
// framing error rather than a silent truncation.
func decodePagesBlock(f *Font, payload []byte, base int) error {
	id := 0
	for pos := 0; pos < len(payload); {
		end := bytes.IndexByte(payload[pos:], 0)
		if end < 0 {
			return &FormatError{
				Format: FormatBinary,
				Tag:    "pages",
				Offset: base + pos,
				Reason: "page name runs past the end of its block",
			}
		}
		f.setPage(id, string(payload[pos:pos+end]))
		id++
		pos += end + 1
	}
	return nil
}

// decodeCharsBlock reads the fixed 20-byte glyph records.
func decodeCharsBlock(f *Font, payload []byte) error {
	if len(payload)%charRecordSize != 0 {
		return &RecordSizeError{
			Tag:        "chars",
			BlockSize:  uint32(len(payload)),
			RecordSize: charRecordSize,
		}
	}
	f.Chars = slices.Grow(f.Chars, len(payload)/charRecordSize)
	for pos := 0; pos < len(payload); pos += charRecordSize {
		rec := payload[pos : pos+charRecordSize]
		f.Chars = append(f.Chars, Char{
			ID:       rune(int32(binary.LittleEndian.Uint32(rec[0:4]))),
			X:        binary.LittleEndian.Uint16(rec[4:6]),
			Y:        binary.LittleEndian.Uint16(rec[6:8]),
			Width:    binary.LittleEndian.Uint16(rec[8:10]),
			Height:   binary.LittleEndian.Uint16(rec[10:12]),
			XOffset:  int16(binary.LittleEndian.Uint16(rec[12:14])),
			YOffset:  int16(binary.LittleEndian.Uint16(rec[14:16])),
			XAdvance: int16(binary.LittleEndian.Uint16(rec[16:18])),
			Page:     rec[18],
			Chnl:     Channels(rec[19]),
		})
	}
	return nil
}

// decodeKerningsBlock reads the fixed 10-byte kerning records.
func decodeKerningsBlock(f *Font, payload []byte) error {
	if len(payload)%kernRecordSize != 0 {
		return &RecordSizeError{
			Tag:        "kernings",
			BlockSize:  uint32(len(payload)),
			RecordSize: kernRecordSize,
		}
	}
	f.Kernings = slices.Grow(f.Kernings, len(payload)/kernRecordSize)
	for pos := 0; pos < len(payload); pos += kernRecordSize {
		rec := payload[pos : pos+kernRecordSize]
		f.Kernings = append(f.Kernings, Kerning{
			First:  rune(int32(binary.LittleEndian.Uint32(rec[0:4]))),
			Second: rune(int32(binary.LittleEndian.Uint32(rec[4:8]))),
			Amount: int16(binary.LittleEndian.Uint16(rec[8:10])),
		})
	}
	return nil
}
