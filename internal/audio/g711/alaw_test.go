package g711

import (
	"bytes"
	"testing"
)

// quantization step for the segment the code belongs to
func alawStep(code byte) int {
	seg := int((code^alawMask)&0x70) >> 4
	if seg < 2 {
		return 16
	}
	return 16 << (seg - 1)
}

// ITU-T code points, cross-checked against the published decode table
func TestAlawKnownCodewords(t *testing.T) {
	cases := []struct {
		code byte
		want int16
	}{
		{0x00, -5504},
		{0x01, -5248},
		{0x80, 5504},
		{0xD5, 8},     // positive zero
		{0x55, -8},    // negative zero
		{0xAA, 32256}, // max positive
		{0x2A, -32256},
		{0xFF, 848},
		{0xC5, 264},
		{0x45, -264},
	}
	for _, tc := range cases {
		if got := DecodeAlawSample(tc.code); got != tc.want {
			t.Errorf("DecodeAlawSample(%#02x) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestAlawRoundTripBound(t *testing.T) {
	for x := -32768; x <= 32767; x++ {
		code := EncodeAlawSample(int16(x))
		got := int(DecodeAlawSample(code))
		diff := got - x
		if diff < 0 {
			diff = -diff
		}
		if diff > alawStep(code) {
			t.Fatalf("sample %d: decode(encode)=%d, error %d exceeds step %d", x, got, diff, alawStep(code))
		}
	}
}

func TestAlawSilence(t *testing.T) {
	code := EncodeAlaw(make([]int16, 160))
	if !bytes.Equal(code, bytes.Repeat([]byte{0xD5}, 160)) {
		t.Fatalf("silence frame did not encode to 0xD5 bytes: %v", code[:8])
	}
	for _, s := range DecodeAlaw(code) {
		if s != 8 { // A-law has no exact zero, positive zero decodes to +8
			t.Fatalf("decoded silence sample = %d, want 8", s)
		}
	}
}

func TestAlawBoundarySamples(t *testing.T) {
	if got := EncodeAlawSample(32767); got != 0xAA {
		t.Errorf("EncodeAlawSample(32767) = %#02x, want 0xAA", got)
	}
	if got := EncodeAlawSample(-32768); got != 0x2A {
		t.Errorf("EncodeAlawSample(-32768) = %#02x, want 0x2A", got)
	}
}

// flipping the sign bit of a codeword flips only the decoded sign
func TestAlawDecodeSymmetry(t *testing.T) {
	for c := 0; c < 256; c++ {
		pos := DecodeAlawSample(byte(c))
		neg := DecodeAlawSample(byte(c) ^ 0x80)
		if pos != -neg {
			t.Fatalf("codeword %#02x: %d / %d not symmetric", c, pos, neg)
		}
	}
}

// A-law decode->encode is exact for every codeword
func TestAlawCodewordRoundTrip(t *testing.T) {
	for c := 0; c < 256; c++ {
		code := byte(c)
		if got := EncodeAlawSample(DecodeAlawSample(code)); got != code {
			t.Errorf("codeword %#02x re-encoded to %#02x", code, got)
		}
	}
}

func TestAlawZeroLength(t *testing.T) {
	if got := EncodeAlaw(nil); len(got) != 0 {
		t.Errorf("EncodeAlaw(nil) = %v, want empty", got)
	}
	if got := DecodeAlaw(nil); len(got) != 0 {
		t.Errorf("DecodeAlaw(nil) = %v, want empty", got)
	}
}
