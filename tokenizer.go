package bmfont

// argument is one key=value pair from a descriptor line.
type argument struct {
	key   string
	value string
}

// tokenState tracks the tokenizer position within a line.
type tokenState uint8

const (
	stateKey tokenState = iota
	stateBareValue
	stateQuotedValue
	stateEscape
)

// isLineSpace reports whether c separates tokens. '\r' and '\n' count
// so lines split out of CRLF input tokenize cleanly.
func isLineSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// splitLine tokenizes one descriptor line: a leading bare tag word, then
// whitespace-separated key=value pairs. A value may be double-quoted to
// admit embedded whitespace; `\"` and `\\` are the only escapes inside
// quotes (any other backslash sequence is kept verbatim). Bare and
// quoted values may mix freely on a line, and comma-separated numeric
// lists stay single bare tokens for the field consumers to split.
func splitLine(line string) (string, []argument, error) {
	pos := 0
	for pos < len(line) && isLineSpace(line[pos]) {
		pos++
	}
	start := pos
	for pos < len(line) && !isLineSpace(line[pos]) {
		pos++
	}
	tag := line[start:pos]

	var (
		args  []argument
		key   string
		buf   []byte
		state = stateKey
	)
	start = pos
	for ; pos < len(line); pos++ {
		c := line[pos]
		switch state {
		case stateKey:
			switch {
			case c == '=':
				key = line[start:pos]
				buf = buf[:0]
				if pos+1 < len(line) && line[pos+1] == '"' {
					state = stateQuotedValue
					pos++
				} else {
					state = stateBareValue
				}
			case isLineSpace(c):
				if start == pos {
					start = pos + 1
					continue
				}
				return tag, args, textErr(tag, "", line[start:pos], "argument is missing '='")
			}
		case stateBareValue:
			if isLineSpace(c) {
				args = append(args, argument{key: key, value: string(buf)})
				state = stateKey
				start = pos + 1
			} else {
				buf = append(buf, c)
			}
		case stateQuotedValue:
			switch c {
			case '\\':
				state = stateEscape
			case '"':
				args = append(args, argument{key: key, value: string(buf)})
				state = stateKey
				start = pos + 1
				if pos+1 < len(line) && !isLineSpace(line[pos+1]) {
					return tag, args, textErr(tag, key, "", "missing whitespace after quoted value")
				}
			default:
				buf = append(buf, c)
			}
		case stateEscape:
			switch c {
			case '"', '\\':
				buf = append(buf, c)
			default:
				buf = append(buf, '\\', c)
			}
			state = stateQuotedValue
		}
	}

	switch state {
	case stateKey:
		if start < len(line) {
			return tag, args, textErr(tag, "", line[start:], "argument is missing '='")
		}
	case stateBareValue:
		args = append(args, argument{key: key, value: string(buf)})
	case stateQuotedValue, stateEscape:
		return tag, args, textErr(tag, key, "", "unterminated quoted value")
	}
	return tag, args, nil
}
