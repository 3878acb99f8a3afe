package strand

import (
	json "github.com/goccy/go-json"
)

// JSONValue captures one value with [Raw] and unmarshals it using go-json.
// It gives a single field full JSON semantics, including escape sequences,
// while the surrounding document is decoded with the combinators of this package.
// It must only be used together with the [JSON] format.
func JSONValue[T any]() Decoder[T] {
	return TryMap(Raw(), func(raw []byte) (T, error) {
		var value T
		err := json.Unmarshal(raw, &value)
		return value, err
	})
}
