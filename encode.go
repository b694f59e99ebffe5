package bmfont

import "fmt"

// Encode serializes the font in the given format. It is the inverse of
// Decode for the binary and text forms; FormatXML is recognized but has
// no encoder.
func (f *Font) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatBinary:
		return f.MarshalBinary()
	case FormatText:
		return f.MarshalText()
	case FormatXML:
		return nil, ErrXMLUnsupported
	default:
		return nil, fmt.Errorf("bmfont: unknown format %d", format)
	}
}
