package strand

import (
	"github.com/tidwall/jsonc"
)

// DecodeJSONC decodes JSON extended with // line comments, /* block comments */
// and trailing commas, as found in hand written configuration files.
//
// Comments and trailing commas are blanked out before decoding. The blanked
// input has the same length as the original, so offsets in errors refer to the
// original input. Slices returned by aliasing decoders like [Bytes] or [Raw]
// point into the blanked copy, not into input.
func DecodeJSONC[T any](input []byte, decoder Decoder[T]) (T, error) {
	return Decode(jsonc.ToJSON(input), decoder, JSON{Whitespace: true})
}
