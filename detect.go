package bmfont

import "bytes"

// Binary format signature and the single version the decoder accepts.
const (
	binarySignature = "BMF"
	binaryVersion   = 3
)

// xmlSignature is the prefix of an XML font descriptor ("<?xml ...").
const xmlSignature = "<?xm"

// Detect classifies raw descriptor bytes by their leading signature:
// FormatBinary for the "BMF" prefix, FormatXML for "<?xm", FormatText
// otherwise. Detect never fails; malformed text input is only rejected
// once the text decoder runs.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte(binarySignature)):
		return FormatBinary
	case bytes.HasPrefix(data, []byte(xmlSignature)):
		return FormatXML
	default:
		return FormatText
	}
}
