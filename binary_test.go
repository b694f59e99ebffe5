package bmfont

import (
	"encoding/binary"
	"errors"
	"slices"
	"strings"
	"testing"
)

// Shared fixture: a two-page "DejaVu Sans" descriptor, built by hand so
// the decoder tests do not depend on the encoder.

var fixtureInfo = Info{
	FontSize: -24,
	BitField: InfoUnicode | InfoSmooth,
	StretchH: 100,
	AA:       1,
	Padding:  [4]uint8{1, 2, 3, 4},
	Spacing:  [2]uint8{5, 6},
	Outline:  2,
	Name:     "DejaVu Sans",
}

var fixtureCommon = Common{
	LineHeight: 29,
	Base:       23,
	ScaleW:     256,
	ScaleH:     256,
	Pages:      2,
	BitField:   CommonPacked,
	AlphaChnl:  ChannelOutline,
	RedChnl:    ChannelGlyph,
	GreenChnl:  ChannelZero,
	BlueChnl:   ChannelOne,
}

var fixturePages = []string{"dejavu_0.png", "dejavu_1.png"}

var fixtureChars = []Char{
	{ID: 'A', X: 10, Y: 20, Width: 15, Height: 16, XOffset: 1, YOffset: 2, XAdvance: 16, Page: 0, Chnl: ChannelAll},
	{ID: '€', X: 100, Y: 200, Width: 18, Height: 17, XOffset: -1, YOffset: 3, XAdvance: 18, Page: 1, Chnl: ChannelAll},
}

var fixtureKernings = []Kerning{
	{First: 'A', Second: 'V', Amount: -2},
	{First: 'V', Second: 'a', Amount: -1},
}

// fixtureFont returns a fresh Font carrying the fixture data, as the
// binary decoder would produce it.
func fixtureFont() *Font {
	return &Font{
		Format:      FormatBinary,
		FileVersion: 3,
		Info:        fixtureInfo,
		Common:      fixtureCommon,
		Pages:       slices.Clone(fixturePages),
		Chars:       slices.Clone(fixtureChars),
		Kernings:    slices.Clone(fixtureKernings),
	}
}

func appendU16(b []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(b, v) }
func appendU32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }

// appendBlock frames a payload as one tagged block.
func appendBlock(b []byte, tag byte, payload []byte) []byte {
	b = append(b, tag)
	b = appendU32(b, uint32(len(payload)))
	return append(b, payload...)
}

func fixtureInfoPayload() []byte {
	b := appendU16(nil, uint16(fixtureInfo.FontSize))
	b = append(b, fixtureInfo.BitField, fixtureInfo.CharSet)
	b = appendU16(b, fixtureInfo.StretchH)
	b = append(b, fixtureInfo.AA)
	b = append(b, fixtureInfo.Padding[:]...)
	b = append(b, fixtureInfo.Spacing[:]...)
	b = append(b, fixtureInfo.Outline)
	b = append(b, fixtureInfo.Name...)
	return append(b, 0)
}

func fixtureCommonPayload() []byte {
	b := appendU16(nil, fixtureCommon.LineHeight)
	b = appendU16(b, fixtureCommon.Base)
	b = appendU16(b, fixtureCommon.ScaleW)
	b = appendU16(b, fixtureCommon.ScaleH)
	b = appendU16(b, fixtureCommon.Pages)
	return append(b, fixtureCommon.BitField,
		byte(fixtureCommon.AlphaChnl), byte(fixtureCommon.RedChnl),
		byte(fixtureCommon.GreenChnl), byte(fixtureCommon.BlueChnl))
}

func appendCharRecord(b []byte, c Char) []byte {
	b = appendU32(b, uint32(c.ID))
	b = appendU16(b, c.X)
	b = appendU16(b, c.Y)
	b = appendU16(b, c.Width)
	b = appendU16(b, c.Height)
	b = appendU16(b, uint16(c.XOffset))
	b = appendU16(b, uint16(c.YOffset))
	b = appendU16(b, uint16(c.XAdvance))
	return append(b, c.Page, byte(c.Chnl))
}

func fixtureCharsPayload() []byte {
	var b []byte
	for _, c := range fixtureChars {
		b = appendCharRecord(b, c)
	}
	return b
}

func fixtureKerningsPayload() []byte {
	var b []byte
	for _, k := range fixtureKernings {
		b = appendU32(b, uint32(k.First))
		b = appendU32(b, uint32(k.Second))
		b = appendU16(b, uint16(k.Amount))
	}
	return b
}

func fixturePagesPayload() []byte {
	var b []byte
	for _, name := range fixturePages {
		b = append(b, name...)
		b = append(b, 0)
	}
	return b
}

func fixtureBinary() []byte {
	b := []byte("BMF\x03")
	b = appendBlock(b, blockInfo, fixtureInfoPayload())
	b = appendBlock(b, blockCommon, fixtureCommonPayload())
	b = appendBlock(b, blockPages, fixturePagesPayload())
	b = appendBlock(b, blockChars, fixtureCharsPayload())
	b = appendBlock(b, blockKernings, fixtureKerningsPayload())
	return b
}

func TestDecodeBinary(t *testing.T) {
	f, err := Decode(fixtureBinary(), 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f.Format != FormatBinary {
		t.Errorf("Format = %v, want %v", f.Format, FormatBinary)
	}
	if f.FileVersion != 3 {
		t.Errorf("FileVersion = %d, want 3", f.FileVersion)
	}
	if f.Info != fixtureInfo {
		t.Errorf("Info = %+v, want %+v", f.Info, fixtureInfo)
	}
	if f.Common != fixtureCommon {
		t.Errorf("Common = %+v, want %+v", f.Common, fixtureCommon)
	}
	if !slices.Equal(f.Pages, fixturePages) {
		t.Errorf("Pages = %v, want %v", f.Pages, fixturePages)
	}
	if !slices.Equal(f.Chars, fixtureChars) {
		t.Errorf("Chars = %v, want %v", f.Chars, fixtureChars)
	}
	if !slices.Equal(f.Kernings, fixtureKernings) {
		t.Errorf("Kernings = %v, want %v", f.Kernings, fixtureKernings)
	}
}

func TestDecodeBinaryFlagHelpers(t *testing.T) {
	f, err := Decode(fixtureBinary(), 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !f.Info.Unicode() || !f.Info.Smooth() {
		t.Error("Unicode() and Smooth() should be set")
	}
	if f.Info.Bold() || f.Info.Italic() {
		t.Error("Bold() and Italic() should be clear")
	}
	if !f.Common.Packed() {
		t.Error("Packed() should be set")
	}
}

func TestDecodeBinaryUnsupportedVersion(t *testing.T) {
	data := fixtureBinary()
	data[3] = 2

	_, err := Decode(data, 0)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Decode() error = %v, want *FormatError", err)
	}
	if !strings.Contains(ferr.Reason, "unsupported version 2") {
		t.Errorf("Reason = %q, want it to name version 2", ferr.Reason)
	}
}

func TestDecodeBinaryUnknownTag(t *testing.T) {
	b := []byte("BMF\x03")
	b = appendBlock(b, 9, []byte{1, 2, 3})

	_, err := Decode(b, 0)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Decode() error = %v, want *FormatError", err)
	}
	if ferr.Tag != "9" {
		t.Errorf("Tag = %q, want %q", ferr.Tag, "9")
	}
	if !strings.Contains(ferr.Reason, "unknown block tag 9") {
		t.Errorf("Reason = %q, want it to identify tag 9", ferr.Reason)
	}
}

func TestDecodeBinaryTruncated(t *testing.T) {
	truncatedBlock := []byte("BMF\x03")
	truncatedBlock = append(truncatedBlock, blockInfo, 0, 0)

	overrun := []byte("BMF\x03")
	overrun = append(overrun, blockChars)
	overrun = appendU32(overrun, 100)
	overrun = append(overrun, 1, 2, 3)

	tests := []struct {
		name   string
		data   []byte
		reason string
	}{
		{"file header", []byte("BMF"), "truncated file header"},
		{"block header", truncatedBlock, "truncated block header"},
		{"block overruns input", overrun, "overruns input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, 0)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("Decode() error = %v, want *FormatError", err)
			}
			if !strings.Contains(ferr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", ferr.Reason, tt.reason)
			}
		})
	}
}

func TestDecodeBinaryShortBlocks(t *testing.T) {
	tests := []struct {
		name   string
		tag    byte
		size   int
		reason string
	}{
		{"info", blockInfo, 10, "info block is 10 bytes"},
		{"common", blockCommon, 14, "common block is 14 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := []byte("BMF\x03")
			b = appendBlock(b, tt.tag, make([]byte, tt.size))

			_, err := Decode(b, 0)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("Decode() error = %v, want *FormatError", err)
			}
			if !strings.Contains(ferr.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", ferr.Reason, tt.reason)
			}
		})
	}
}

func TestDecodeBinaryInfoMissingNUL(t *testing.T) {
	payload := fixtureInfoPayload()
	payload = payload[:len(payload)-1] // drop the name terminator
	b := []byte("BMF\x03")
	b = appendBlock(b, blockInfo, payload)

	_, err := Decode(b, 0)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Decode() error = %v, want *FormatError", err)
	}
	if !strings.Contains(ferr.Reason, "NUL terminator") {
		t.Errorf("Reason = %q, want it to mention the NUL terminator", ferr.Reason)
	}
}

func TestDecodeBinaryPageNameUnterminated(t *testing.T) {
	b := []byte("BMF\x03")
	b = appendBlock(b, blockPages, []byte("page_0.png\x00page_1.png"))

	_, err := Decode(b, 0)
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("Decode() error = %v, want *FormatError", err)
	}
	if ferr.Tag != "pages" {
		t.Errorf("Tag = %q, want %q", ferr.Tag, "pages")
	}
	if !strings.Contains(ferr.Reason, "runs past the end") {
		t.Errorf("Reason = %q, want it to report the overshoot", ferr.Reason)
	}
}

func TestDecodeBinaryRecordSizeMismatch(t *testing.T) {
	tests := []struct {
		name       string
		tag        byte
		payload    int
		recordSize uint32
	}{
		{"chars", blockChars, 25, 20},
		{"kernings", blockKernings, 13, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := []byte("BMF\x03")
			b = appendBlock(b, tt.tag, make([]byte, tt.payload))

			_, err := Decode(b, 0)
			var rerr *RecordSizeError
			if !errors.As(err, &rerr) {
				t.Fatalf("Decode() error = %v, want *RecordSizeError", err)
			}
			if rerr.Tag != tt.name {
				t.Errorf("Tag = %q, want %q", rerr.Tag, tt.name)
			}
			if rerr.BlockSize != uint32(tt.payload) {
				t.Errorf("BlockSize = %d, want %d", rerr.BlockSize, tt.payload)
			}
			if rerr.RecordSize != tt.recordSize {
				t.Errorf("RecordSize = %d, want %d", rerr.RecordSize, tt.recordSize)
			}
		})
	}
}

func TestDecodeBinarySkipFlags(t *testing.T) {
	zeroInfo := Info{}
	zeroCommon := Common{}

	t.Run("SkipInfo", func(t *testing.T) {
		f, err := Decode(fixtureBinary(), SkipInfo)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if f.Info != zeroInfo {
			t.Errorf("Info = %+v, want zero", f.Info)
		}
		if !slices.Equal(f.Chars, fixtureChars) {
			t.Error("Chars should decode regardless of SkipInfo")
		}
	})

	t.Run("SkipCommon", func(t *testing.T) {
		f, err := Decode(fixtureBinary(), SkipCommon)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if f.Common != zeroCommon {
			t.Errorf("Common = %+v, want zero", f.Common)
		}
		// Page entries still land positionally, growing from empty.
		if !slices.Equal(f.Pages, fixturePages) {
			t.Errorf("Pages = %v, want %v", f.Pages, fixturePages)
		}
	})

	t.Run("SkipPages", func(t *testing.T) {
		f, err := Decode(fixtureBinary(), SkipPages)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if len(f.Pages) != 0 {
			t.Errorf("Pages = %v, want none", f.Pages)
		}
		if f.Common.Pages != 2 {
			t.Errorf("Common.Pages = %d, want 2", f.Common.Pages)
		}
	})

	t.Run("SkipKerning", func(t *testing.T) {
		f, err := Decode(fixtureBinary(), SkipKerning)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if len(f.Kernings) != 0 {
			t.Errorf("Kernings = %v, want none", f.Kernings)
		}
	})

	t.Run("SkipNonChar", func(t *testing.T) {
		f, err := Decode(fixtureBinary(), SkipNonChar)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if f.Info != zeroInfo || f.Common != zeroCommon || len(f.Pages) != 0 || len(f.Kernings) != 0 {
			t.Error("SkipNonChar should leave only glyph records")
		}
		if !slices.Equal(f.Chars, fixtureChars) {
			t.Errorf("Chars = %v, want %v", f.Chars, fixtureChars)
		}
	})
}

func TestDecodeBinarySkipMalformedKernings(t *testing.T) {
	// The kernings block declares more bytes than remain and its length
	// is no record multiple. Skipping must discard it without parsing.
	b := []byte("BMF\x03")
	b = appendBlock(b, blockChars, fixtureCharsPayload())
	b = append(b, blockKernings)
	b = appendU32(b, 999)
	b = append(b, 1, 2, 3)

	f, err := Decode(b, SkipKerning)
	if err != nil {
		t.Fatalf("Decode(SkipKerning) error = %v", err)
	}
	if len(f.Kernings) != 0 {
		t.Errorf("Kernings = %v, want none", f.Kernings)
	}
	if !slices.Equal(f.Chars, fixtureChars) {
		t.Errorf("Chars = %v, want %v", f.Chars, fixtureChars)
	}

	if _, err := Decode(b, 0); err == nil {
		t.Error("Decode() without SkipKerning should reject the malformed block")
	}
}

func TestDecodeBinaryPagesBeyondDeclared(t *testing.T) {
	common := fixtureCommonPayload()
	common[8] = 1 // declare a single page
	b := []byte("BMF\x03")
	b = appendBlock(b, blockCommon, common)
	b = appendBlock(b, blockPages, fixturePagesPayload())

	f, err := Decode(b, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !slices.Equal(f.Pages, fixturePages) {
		t.Errorf("Pages = %v, want %v", f.Pages, fixturePages)
	}
}

func TestDecodeBinaryPagesBeforeCommon(t *testing.T) {
	b := []byte("BMF\x03")
	b = appendBlock(b, blockPages, fixturePagesPayload())
	b = appendBlock(b, blockCommon, fixtureCommonPayload())

	f, err := Decode(b, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !slices.Equal(f.Pages, fixturePages) {
		t.Errorf("Pages = %v, want %v after the common resize", f.Pages, fixturePages)
	}
}

func TestDecodeBinaryDuplicateCharsBlocks(t *testing.T) {
	b := []byte("BMF\x03")
	b = appendBlock(b, blockChars, fixtureCharsPayload())
	b = appendBlock(b, blockChars, fixtureCharsPayload())

	f, err := Decode(b, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(f.Chars) != 2*len(fixtureChars) {
		t.Errorf("len(Chars) = %d, want %d", len(f.Chars), 2*len(fixtureChars))
	}
}

func TestDecodeBinaryMissingGlyphID(t *testing.T) {
	// Exporters record the missing-glyph entry as id 0xFFFFFFFF.
	b := []byte("BMF\x03")
	b = appendBlock(b, blockChars, appendCharRecord(nil, Char{ID: -1, XAdvance: 8}))

	f, err := Decode(b, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(f.Chars) != 1 || f.Chars[0].ID != -1 {
		t.Errorf("Chars = %v, want a single id -1 glyph", f.Chars)
	}
}

func TestDecodeBinaryEmptyTrailingBlocks(t *testing.T) {
	// Zero-length pages, chars and kernings envelopes are valid.
	b := []byte("BMF\x03")
	b = appendBlock(b, blockPages, nil)
	b = appendBlock(b, blockChars, nil)
	b = appendBlock(b, blockKernings, nil)

	f, err := Decode(b, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(f.Pages) != 0 || len(f.Chars) != 0 || len(f.Kernings) != 0 {
		t.Errorf("decoded %d pages, %d chars, %d kernings, want none",
			len(f.Pages), len(f.Chars), len(f.Kernings))
	}
}
