package codec

import "google.golang.org/protobuf/proto"

// Protobuf serializes proto.Message handles. Construct with NewProtobuf
// and a message constructor, e.g.
//
//	codec.NewProtobuf(func() *spritepb.Sheet { return &spritepb.Sheet{} })
type Protobuf[T proto.Message] struct {
	new func() T
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(m T) ([]byte, error) {
	return proto.Marshal(m)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
