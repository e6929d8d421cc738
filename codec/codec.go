// Package codec serializes decoded asset handles for the store tier.
package codec

// Codec encodes/decodes handles H to []byte for storage.
type Codec[H any] interface {
	Encode(H) ([]byte, error)
	Decode([]byte) (H, error)
}
