package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func mustDecode(t *testing.T, b []byte) (int64, []byte) {
	t.Helper()
	at, p, err := DecodeEntry(b)
	if err != nil {
		t.Fatalf("DecodeEntry error: %v", err)
	}
	return at, p
}

func TestEntryRoundTrip(t *testing.T) {
	cases := []struct {
		fetchedAt int64
		payload   []byte
	}{
		{0, nil},
		{1700000000000000000, []byte("hello")},
		{math.MaxInt64, []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		enc := EncodeEntry(tc.fetchedAt, tc.payload)
		at, p := mustDecode(t, enc)
		if at != tc.fetchedAt {
			t.Fatalf("fetchedAt mismatch: got %d want %d", at, tc.fetchedAt)
		}
		if !bytes.Equal(p, tc.payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, tc.payload)
		}
	}
}

func TestEntryRejectsTrailingBytes(t *testing.T) {
	enc := EncodeEntry(7, []byte("x"))
	enc = append(enc, 0xDE, 0xAD) // junk
	if _, _, err := DecodeEntry(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestEntryCorruptHeadersAndLengths(t *testing.T) {
	enc := EncodeEntry(1, []byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, _, err := DecodeEntry(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, _, err := DecodeEntry(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// vlen too large (announce more than available)
	tooLong := append([]byte(nil), enc...)
	// vlen is at offset 13..16 (4 magic + 1 ver + 8 fetchedAt)
	binary.BigEndian.PutUint32(tooLong[13:17], uint32(len("abc")+1))
	if _, _, err := DecodeEntry(tooLong); err == nil {
		t.Fatalf("expected error on vlen beyond buffer")
	}

	// truncated buffer
	trunc := enc[:len(enc)-1]
	if _, _, err := DecodeEntry(trunc); err == nil {
		t.Fatalf("expected error on truncated buffer")
	}
}

func TestEntryZeroCopyPayload(t *testing.T) {
	enc := EncodeEntry(1, []byte("Z"))
	_, p := mustDecode(t, enc)
	if len(p) != 1 {
		t.Fatalf("unexpected payload len")
	}
	// mutating the payload slice mutates the underlying buffer (zero-copy)
	p[0] = 'Q'
	_, p2 := mustDecode(t, enc)
	if p2[0] != 'Q' {
		t.Fatalf("expected zero-copy slice into enc buffer")
	}
}
