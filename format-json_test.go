package strand

import (
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestJSONStringLiteral(t *testing.T) {
	cases := []struct {
		Input   string
		Content string
		Rest    string
		Ok      bool
	}{
		{Input: `"ab"`, Content: "ab", Ok: true},
		{Input: `"ab",`, Content: "ab", Rest: ",", Ok: true},
		{Input: `""`, Content: "", Ok: true},
		{Input: `"a\"b"`, Content: `a\"b`, Ok: true},
		{Input: `"a\\"b`, Content: `a\\`, Rest: "b", Ok: true},
		{Input: `"ab`},
		{Input: `"ab\"`},
		{Input: `ab"`},
		{Input: ` "ab"`},
		{Input: ``},
	}

	for _, tc := range cases {
		t.Run(tc.Input, func(t *testing.T) {
			c := NewCursor([]byte(tc.Input))

			content, rest, ok := JSON{}.MatchStringLiteral(c)
			require.Equal(t, tc.Ok, ok)

			if !ok {
				require.Equal(t, c, rest)
				return
			}

			require.Equal(t, tc.Content, string(content))
			require.Equal(t, tc.Rest, string(rest.Remaining()))
		})
	}
}

func TestJSONKeyString(t *testing.T) {
	key, rest, ok := JSON{}.MatchKeyString(NewCursor([]byte(`"first":"ab"`)))
	require.True(t, ok)
	require.Equal(t, "first", string(key))
	require.Equal(t, `"ab"`, string(rest.Remaining()))

	c := NewCursor([]byte(`"first""ab"`))
	_, rest, ok = JSON{}.MatchKeyString(c)
	require.False(t, ok)
	require.Equal(t, c, rest)
}

func TestJSONScanNumber(t *testing.T) {
	cases := map[string]int{
		"0":       1,
		"-0":      2,
		"12":      2,
		"12,":     2,
		"1.5":     3,
		"-1.5e10": 7,
		"1E+2":    4,
		"1e-2]":   4,
		"01":      1,
		"":        0,
		"-":       0,
		"1.":      0,
		".5":      0,
		"1e":      0,
		"+1":      0,
		"abc":     0,
	}

	for input, expected := range cases {
		require.Equal(t, expected, scanNumber([]byte(input)), "input %q", input)
	}
}

func TestJSONLiterals(t *testing.T) {
	format := JSON{}

	value, rest, ok := format.MatchBool(NewCursor([]byte("true,")))
	require.True(t, ok)
	require.True(t, value)
	require.Equal(t, 4, rest.Offset())

	value, rest, ok = format.MatchBool(NewCursor([]byte("false")))
	require.True(t, ok)
	require.False(t, value)
	require.True(t, rest.Done())

	_, _, ok = format.MatchBool(NewCursor([]byte("nope")))
	require.False(t, ok)

	rest, ok = format.MatchNull(NewCursor([]byte("null")))
	require.True(t, ok)
	require.True(t, rest.Done())

	_, ok = format.MatchNull(NewCursor([]byte("nul")))
	require.False(t, ok)
}

func TestJSONSkipValue(t *testing.T) {
	valid := []string{
		`"ab"`,
		`[]`,
		`{}`,
		`["a",1,true,null]`,
		`{"a":{"b":[{"c":-1.5}]},"d":"e"}`,
		`12.5e3`,
		`false`,
	}

	for _, input := range valid {
		rest, ok := JSON{}.SkipValue(NewCursor([]byte(input + ",")))
		require.True(t, ok, "input %q", input)
		require.Equal(t, ",", string(rest.Remaining()), "input %q", input)
	}

	invalid := []string{
		``,
		`[`,
		`[1,]`,
		`{"a"}`,
		`{"a":}`,
		`{"a":1,}`,
		`{a:1}`,
		`tru`,
		`]`,
	}

	for _, input := range invalid {
		c := NewCursor([]byte(input))
		rest, ok := JSON{}.SkipValue(c)
		require.False(t, ok, "input %q", input)
		require.Equal(t, c, rest)
	}
}

func TestJSONStrictWhitespace(t *testing.T) {
	_, err := Decode([]byte(`{"first": "ab", "second": ["cd"]}`), pairDecoder, JSON{})
	require.ErrorIs(t, err, ErrMalformedValue)

	_, err = Decode([]byte(`[ "a"]`), List(String()), JSON{})
	require.ErrorIs(t, err, ErrMalformedValue)
}

func TestJSONWhitespace(t *testing.T) {
	input := []byte("\n{ \"first\" : \"ab\",\r\n\t\"second\": [ \"cd\" , \"ef\" ] }\n")

	value, err := Decode(input, pairDecoder, JSON{Whitespace: true})
	require.NoError(t, err)
	require.Equal(t, pair{First: "ab", Second: []string{"cd", "ef"}}, value)

	raw, err := Decode([]byte(" [ 1 , { } ] "), Raw(), JSON{Whitespace: true})
	require.NoError(t, err)
	require.True(t, json.Valid(raw))
}

func TestJSONMatchesGoJSON(t *testing.T) {
	inputs := []string{
		`{"first":"ab","second":["cd","ef"]}`,
		`{"second":[],"first":""}`,
		`{"x":{"y":[1,2,{"z":null}]},"first":"a","second":["b"]}`,
	}

	for _, input := range inputs {
		var expected pair
		require.NoError(t, json.Unmarshal([]byte(input), &expected))

		actual, err := Decode([]byte(input), pairDecoder, JSON{})
		require.NoError(t, err)
		require.Equal(t, expected.First, actual.First)
		require.ElementsMatch(t, expected.Second, actual.Second)
	}
}
