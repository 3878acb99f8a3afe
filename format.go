package strand

// Format recognizes the structural tokens of one concrete wire syntax. It is the
// only part of a decode that knows about the actual bytes: the decoders in this
// package are written purely in terms of a Format and therefore work with any
// implementation, e.g. [JSON].
//
// Every Match method inspects the input at the given cursor. If the token is
// present, it returns a cursor positioned directly after it and true. If not, it
// returns the unchanged cursor and false. A Match method must never return true
// without advancing the cursor, as decoders rely on this to terminate.
//
// Formats hold no mutable state and may be shared between concurrent decodes.
//
// To implement a custom Format, embed [EmptyFormat] and override the recognizers
// your syntax supports.
type Format interface {
	// MatchOpenList matches the start of a list, `[` in JSON.
	MatchOpenList(c Cursor) (Cursor, bool)

	// MatchCloseList matches the end of a list, `]` in JSON.
	MatchCloseList(c Cursor) (Cursor, bool)

	// MatchElementSeparator matches the separator between two list elements.
	MatchElementSeparator(c Cursor) (Cursor, bool)

	// MatchOpenRecord matches the start of a keyed collection, `{` in JSON.
	MatchOpenRecord(c Cursor) (Cursor, bool)

	// MatchCloseRecord matches the end of a keyed collection, `}` in JSON.
	MatchCloseRecord(c Cursor) (Cursor, bool)

	// MatchFieldSeparator matches the separator between two key/value pairs.
	MatchFieldSeparator(c Cursor) (Cursor, bool)

	// MatchKeyString matches a key including the delimiter between key and value,
	// `"key":` in JSON. It returns the raw key.
	MatchKeyString(c Cursor) (key []byte, rest Cursor, ok bool)

	// MatchStringLiteral matches a string literal and returns its raw content.
	// The content aliases the input.
	MatchStringLiteral(c Cursor) (content []byte, rest Cursor, ok bool)

	// SkipValue consumes exactly one value of any shape.
	SkipValue(c Cursor) (Cursor, bool)
}

// ScalarFormat is an optional extension of [Format] for syntaxes with number,
// boolean and null literals. Decoders like [Int] or [Bool] use it if the Format
// implements it and fail with ErrMalformedValue otherwise.
type ScalarFormat interface {
	Format

	// MatchNumber matches a number literal and returns its raw text.
	MatchNumber(c Cursor) (number []byte, rest Cursor, ok bool)

	// MatchBool matches a boolean literal.
	MatchBool(c Cursor) (value bool, rest Cursor, ok bool)

	// MatchNull matches the null literal.
	MatchNull(c Cursor) (Cursor, bool)
}

// EmptyFormat is a Format that recognizes nothing.
// It is useful as an embedded base for your own custom Format implementation.
type EmptyFormat struct{}

var _ Format = EmptyFormat{}

func (EmptyFormat) MatchOpenList(c Cursor) (Cursor, bool) {
	return c, false
}

func (EmptyFormat) MatchCloseList(c Cursor) (Cursor, bool) {
	return c, false
}

func (EmptyFormat) MatchElementSeparator(c Cursor) (Cursor, bool) {
	return c, false
}

func (EmptyFormat) MatchOpenRecord(c Cursor) (Cursor, bool) {
	return c, false
}

func (EmptyFormat) MatchCloseRecord(c Cursor) (Cursor, bool) {
	return c, false
}

func (EmptyFormat) MatchFieldSeparator(c Cursor) (Cursor, bool) {
	return c, false
}

func (EmptyFormat) MatchKeyString(c Cursor) ([]byte, Cursor, bool) {
	return nil, c, false
}

func (EmptyFormat) MatchStringLiteral(c Cursor) ([]byte, Cursor, bool) {
	return nil, c, false
}

func (EmptyFormat) SkipValue(c Cursor) (Cursor, bool) {
	return c, false
}
