package codec

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

type frame struct {
	Name string `json:"name" msgpack:"name"`
	W    int    `json:"w" msgpack:"w"`
	H    int    `json:"h" msgpack:"h"`
}

func TestJSONRoundTrip(t *testing.T) {
	c := JSON[frame]{}
	in := frame{Name: "hero", W: 32, H: 48}
	b, err := c.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v want %+v", out, in)
	}
}

func TestLimitRejectsOversizedPayload(t *testing.T) {
	c := Limit[frame]{Inner: JSON[frame]{}, MaxDecode: 4}
	b, err := c.Encode(frame{Name: "way-too-long"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(b) <= 4 {
		t.Fatalf("test payload unexpectedly small")
	}
	if _, err := c.Decode(b); err == nil {
		t.Fatalf("expected size-limit error")
	}
	// at or under the limit, decoding is delegated
	c.MaxDecode = len(b)
	if _, err := c.Decode(b); err != nil {
		t.Fatalf("Decode under limit: %v", err)
	}
}

func TestBytesIsIdentity(t *testing.T) {
	c := Bytes{}
	in := []byte{1, 2, 3}
	b, _ := c.Encode(in)
	out, _ := c.Decode(b)
	if !bytes.Equal(out, in) {
		t.Fatalf("identity violated: %v", out)
	}
}

func TestPNGRoundTripPreservesPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 1, color.RGBA{B: 255, A: 255})

	c := PNG{}
	b, err := c.Encode(img)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds changed: %v", out.Bounds())
	}
	r, _, _, a := out.At(0, 0).RGBA()
	if r != 0xFFFF || a != 0xFFFF {
		t.Fatalf("pixel (0,0) lost: r=%d a=%d", r, a)
	}
}

func TestPNGDecodeRejectsGarbage(t *testing.T) {
	if _, err := (PNG{}).Decode([]byte("not a png")); err == nil {
		t.Fatalf("expected decode error")
	}
}
