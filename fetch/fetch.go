// Package fetch provides reference implementations of the assetcache
// fetch primitive: decoding handlers shared by the HTTP and filesystem
// fetchers in the subpackages.
package fetch

import (
	"image"
	"io"

	// register the raster formats game assets commonly use
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Handler turns the raw body of a fetched asset into a decoded handle H.
// contentType is the server-reported media type ("" when unknown, e.g.
// filesystem reads); key is the asset key being loaded.
type Handler[H any] func(key, contentType string, r io.Reader) (H, error)

// Image decodes the body via the stdlib image registry (png/jpeg/gif are
// registered here; blank-import golang.org/x/image/webp or similar for
// more). SVG and other non-raster assets should use Bytes instead.
func Image(key, _ string, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// Bytes reads the body verbatim. The identity handler for callers that
// decode lazily or cache undecodable formats (SVG, audio).
func Bytes(_, _ string, r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}
