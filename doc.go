// Package strand provides composable decoders that reconstruct Go values from
// structured input, independent of the concrete wire syntax.
//
// A [Decoder] is a function from a [Cursor] and a [Format] to a [Result]. The
// [Format] recognizes the structural tokens of one syntax (list and record
// boundaries, separators, keys and string literals), the decoders only combine
// those recognizers. [JSON] is the bundled Format, custom syntaxes implement the
// interface, usually by embedding [EmptyFormat].
//
// Decoders are built from a few primitives:
//   - [String], [Bytes] and [Primitive] for string literals,
//     [Int], [Uint], [Float], [Bool] and [Nullable] for formats implementing [ScalarFormat],
//   - [Map] and [TryMap] to transform values,
//   - [List] for sequences and [Dict] for open keyed collections,
//   - [Record] for keyed collections with a fixed set of fields,
//   - [Custom] for everything else.
//
// Example:
//
//	type Pair struct {
//	    First  string
//	    Second []string
//	}
//
//	var pairDecoder = strand.Record[Pair](
//	    []string{"first", "second"},
//	    func(key string) strand.Action {
//	        switch key {
//	        case "first":
//	            return strand.Keep(strand.String())
//	        case "second":
//	            return strand.Keep(strand.List(strand.String()))
//	        default:
//	            return strand.Skip()
//	        }
//	    },
//	    func(fields strand.Fields) (Pair, error) {
//	        first, err := strand.Require[string](fields, "first")
//	        if err != nil {
//	            return Pair{}, err
//	        }
//
//	        second, err := strand.Require[[]string](fields, "second")
//	        if err != nil {
//	            return Pair{}, err
//	        }
//
//	        return Pair{First: first, Second: second}, nil
//	    },
//	)
//
//	pair, err := strand.Decode([]byte(`{"first":"ab","second":["cd","ef"]}`), pairDecoder, strand.JSON{})
//
// For plain Go types, [Unmarshal] and [DecoderFor] derive the decoders from the
// type using struct tags, similar to [encoding/json.Unmarshal].
package strand
