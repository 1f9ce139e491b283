package convert

import (
	"bytes"
	"testing"
)

func TestInt16BytesRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 256, -256, 32767, -32768}
	raw := Int16ToBytes(samples)
	if len(raw) != len(samples)*2 {
		t.Fatalf("Int16ToBytes length = %d, want %d", len(raw), len(samples)*2)
	}
	back := BytesToInt16(raw)
	for i, s := range samples {
		if back[i] != s {
			t.Errorf("sample %d: got %d, want %d", i, back[i], s)
		}
	}
}

func TestInt16ToBytesLittleEndian(t *testing.T) {
	raw := Int16ToBytes([]int16{0x0102})
	if !bytes.Equal(raw, []byte{0x02, 0x01}) {
		t.Errorf("got % x, want 02 01", raw)
	}
}

func TestBytesToInt16TruncatesOddTail(t *testing.T) {
	got := BytesToInt16([]byte{0x34, 0x12, 0xFF})
	if len(got) != 1 || got[0] != 0x1234 {
		t.Errorf("got %v, want [4660]", got)
	}
}

func TestFrameSizeValidation(t *testing.T) {
	cases := []struct {
		rate, frame int
		want        bool
	}{
		{8000, 160, true},
		{8000, 161, false},
		{48000, 960, true},
		{48000, 100, false},
		{16000, 320, true},
		{44100, 440, true}, // ~10ms via the generic rule
	}
	for _, tc := range cases {
		if got := IsFrameSizeValid(tc.rate, tc.frame); got != tc.want {
			t.Errorf("IsFrameSizeValid(%d, %d) = %v, want %v", tc.rate, tc.frame, got, tc.want)
		}
	}
}
