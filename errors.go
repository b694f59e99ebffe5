package bmfont

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for the bmfont package.
var (
	// ErrXMLUnsupported is returned when the input is an XML font
	// descriptor. The XML form is detected but intentionally has no
	// decoder.
	ErrXMLUnsupported = errors.New("bmfont: xml font descriptors are not supported")

	// ErrEmptyInput is returned when Decode is given no bytes at all.
	ErrEmptyInput = errors.New("bmfont: empty input")
)

// FormatError describes structurally malformed input: bad framing, an
// unsupported version, an unknown block or line tag, an unknown key
// within a recognized tag, or a value that does not parse as its field's
// type. Decoding stops at the first FormatError; there is no partial
// recovery.
type FormatError struct {
	// Format is the encoding that was being decoded.
	Format Format

	// Tag is the block or line tag being processed, if known.
	Tag string

	// Key is the offending key=value key. Text form only.
	Key string

	// Value is the offending value, if one was involved.
	Value string

	// Offset is the byte offset of the fault. Binary form only; -1
	// when not applicable.
	Offset int

	// Reason describes the fault.
	Reason string
}

func (e *FormatError) Error() string {
	msg := "bmfont: " + e.Reason
	if e.Tag != "" {
		msg += " (tag " + e.Tag
		if e.Key != "" {
			msg += ", key " + e.Key
		}
		if e.Value != "" {
			msg += ", value " + strconv.Quote(e.Value)
		}
		msg += ")"
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	return msg
}

// textErr builds a FormatError for the text form, where byte offsets
// are not tracked.
func textErr(tag, key, value, reason string) *FormatError {
	return &FormatError{
		Format: FormatText,
		Tag:    tag,
		Key:    key,
		Value:  value,
		Offset: -1,
		Reason: reason,
	}
}

// RecordSizeError reports a binary block whose declared byte length is
// not a multiple of its fixed record size. It is distinct from
// FormatError because it indicates a corrupt record count rather than
// corrupt framing.
type RecordSizeError struct {
	// Tag names the block ("chars" or "kernings").
	Tag string

	// BlockSize is the block's declared payload length in bytes.
	BlockSize uint32

	// RecordSize is the fixed per-record size for the block.
	RecordSize uint32
}

func (e *RecordSizeError) Error() string {
	return fmt.Sprintf("bmfont: %s block length %d is not a multiple of the %d-byte record size (skipped some bytes)",
		e.Tag, e.BlockSize, e.RecordSize)
}
