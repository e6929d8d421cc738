package codec

import "encoding/json"

// JSON serializes handles with encoding/json. The zero value is ready to
// use.
type JSON[H any] struct{}

func (JSON[H]) Encode(h H) ([]byte, error) { return json.Marshal(h) }
func (JSON[H]) Decode(b []byte) (H, error) {
	var h H
	err := json.Unmarshal(b, &h)
	return h, err
}
