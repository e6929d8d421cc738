package codec

import (
	"bytes"
	"image"
	"image/png"
)

// PNG serializes image.Image handles as PNG bytes for the store tier.
// Decode always yields the decoder's native image type, so pixel data
// round-trips but the concrete Go type may differ from the encoded one.
// Lossless; prefer it over JSON-ish codecs for raster sprites.
type PNG struct{}

var _ Codec[image.Image] = PNG{}

func (PNG) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (PNG) Decode(b []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(b))
}
