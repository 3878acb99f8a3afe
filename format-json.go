package strand

// JSON is the [Format] for JSON input.
//
// The recognizers cover string, list and object literals as well as numbers,
// booleans and null. Escape sequences in strings are not decoded: the raw bytes
// between the quotes are passed through as is, a backslash only prevents the
// following byte from terminating the literal.
//
// By default no whitespace is allowed between tokens. Set Whitespace to accept
// insignificant whitespace as defined by RFC 8259.
type JSON struct {
	Whitespace bool
}

var _ ScalarFormat = JSON{}

func (j JSON) MatchOpenList(c Cursor) (Cursor, bool) {
	return j.matchByte(c, '[')
}

func (j JSON) MatchCloseList(c Cursor) (Cursor, bool) {
	return j.matchByte(c, ']')
}

func (j JSON) MatchElementSeparator(c Cursor) (Cursor, bool) {
	return j.matchByte(c, ',')
}

func (j JSON) MatchOpenRecord(c Cursor) (Cursor, bool) {
	return j.matchByte(c, '{')
}

func (j JSON) MatchCloseRecord(c Cursor) (Cursor, bool) {
	return j.matchByte(c, '}')
}

func (j JSON) MatchFieldSeparator(c Cursor) (Cursor, bool) {
	return j.matchByte(c, ',')
}

func (j JSON) MatchKeyString(c Cursor) ([]byte, Cursor, bool) {
	key, rest, ok := j.MatchStringLiteral(c)
	if !ok {
		return nil, c, false
	}

	rest, ok = j.matchByte(rest, ':')
	if !ok {
		return nil, c, false
	}

	return key, rest, true
}

func (j JSON) MatchStringLiteral(c Cursor) ([]byte, Cursor, bool) {
	start := j.skipWhitespace(c)
	if next, ok := start.Peek(); !ok || next != '"' {
		return nil, c, false
	}

	escaped := false
	content, end := start.skip(1).SliceUntil(func(b byte) bool {
		switch {
		case escaped:
			escaped = false
		case b == '\\':
			escaped = true
		case b == '"':
			return false
		}

		return true
	})

	// unterminated literal
	if end.Done() {
		return nil, c, false
	}

	return content, end.skip(1), true
}

func (j JSON) MatchNumber(c Cursor) ([]byte, Cursor, bool) {
	start := j.skipWhitespace(c)

	n := scanNumber(start.Remaining())
	if n == 0 {
		return nil, c, false
	}

	end := start.skip(n)
	return start.span(end), end, true
}

func (j JSON) MatchBool(c Cursor) (bool, Cursor, bool) {
	if rest, ok := j.matchLiteral(c, "true"); ok {
		return true, rest, true
	}

	if rest, ok := j.matchLiteral(c, "false"); ok {
		return false, rest, true
	}

	return false, c, false
}

func (j JSON) MatchNull(c Cursor) (Cursor, bool) {
	return j.matchLiteral(c, "null")
}

// SkipTrailing consumes whitespace if Whitespace is set. It is used after the
// last value and in front of values captured with [Raw].
func (j JSON) SkipTrailing(c Cursor) Cursor {
	return j.skipWhitespace(c)
}

func (j JSON) SkipValue(c Cursor) (Cursor, bool) {
	start := j.skipWhitespace(c)

	next, ok := start.Peek()
	if !ok {
		return c, false
	}

	var rest Cursor

	switch next {
	case '"':
		_, rest, ok = j.MatchStringLiteral(start)

	case '[':
		rest, ok = j.skipList(start)

	case '{':
		rest, ok = j.skipObject(start)

	case 't', 'f':
		_, rest, ok = j.MatchBool(start)

	case 'n':
		rest, ok = j.MatchNull(start)

	default:
		_, rest, ok = j.MatchNumber(start)
	}

	if !ok {
		return c, false
	}

	return rest, true
}

func (j JSON) skipList(c Cursor) (Cursor, bool) {
	rest, _ := j.MatchOpenList(c)

	if end, ok := j.MatchCloseList(rest); ok {
		return end, true
	}

	for {
		var ok bool
		if rest, ok = j.SkipValue(rest); !ok {
			return c, false
		}

		if end, ok := j.MatchCloseList(rest); ok {
			return end, true
		}

		if rest, ok = j.MatchElementSeparator(rest); !ok {
			return c, false
		}
	}
}

func (j JSON) skipObject(c Cursor) (Cursor, bool) {
	rest, _ := j.MatchOpenRecord(c)

	if end, ok := j.MatchCloseRecord(rest); ok {
		return end, true
	}

	for {
		var ok bool
		if _, rest, ok = j.MatchKeyString(rest); !ok {
			return c, false
		}

		if rest, ok = j.SkipValue(rest); !ok {
			return c, false
		}

		if end, ok := j.MatchCloseRecord(rest); ok {
			return end, true
		}

		if rest, ok = j.MatchFieldSeparator(rest); !ok {
			return c, false
		}
	}
}

func (j JSON) matchByte(c Cursor, b byte) (Cursor, bool) {
	start := j.skipWhitespace(c)
	if next, ok := start.Peek(); ok && next == b {
		return start.skip(1), true
	}

	return c, false
}

func (j JSON) matchLiteral(c Cursor, literal string) (Cursor, bool) {
	start := j.skipWhitespace(c)
	if start.HasPrefix([]byte(literal)) {
		return start.skip(len(literal)), true
	}

	return c, false
}

func (j JSON) skipWhitespace(c Cursor) Cursor {
	if !j.Whitespace {
		return c
	}

	_, rest := c.SliceUntil(isJSONWhitespace)
	return rest
}

func isJSONWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// scanNumber returns the length of the JSON number at the start of buf,
// or 0 if buf does not start with a valid number.
func scanNumber(buf []byte) int {
	idx := 0

	if idx < len(buf) && buf[idx] == '-' {
		idx++
	}

	// integer part, no leading zeros
	switch {
	case idx < len(buf) && buf[idx] == '0':
		idx++
	case idx < len(buf) && isDigit(buf[idx]):
		idx += countDigits(buf[idx:])
	default:
		return 0
	}

	if idx < len(buf) && buf[idx] == '.' {
		digits := countDigits(buf[idx+1:])
		if digits == 0 {
			return 0
		}

		idx += 1 + digits
	}

	if idx < len(buf) && (buf[idx] == 'e' || buf[idx] == 'E') {
		exp := idx + 1
		if exp < len(buf) && (buf[exp] == '+' || buf[exp] == '-') {
			exp++
		}

		digits := countDigits(buf[exp:])
		if digits == 0 {
			return 0
		}

		idx = exp + digits
	}

	return idx
}

func countDigits(buf []byte) int {
	n := 0
	for n < len(buf) && isDigit(buf[n]) {
		n++
	}

	return n
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
