package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes handles using vmihailenco/msgpack/v5. The zero value
// is ready to use.
//
// Msgpack is compact and fast; be mindful of struct tag differences vs
// JSON. Use `msgpack:"fieldName"` tags if you need explicit control.
type Msgpack[H any] struct{}

func (Msgpack[H]) Encode(h H) ([]byte, error) {
	return msgpack.Marshal(h)
}
func (Msgpack[H]) Decode(b []byte) (H, error) {
	var h H
	err := msgpack.Unmarshal(b, &h)
	return h, err
}
