package g711

// G.711 A-law (PCMA) companding. Same segment/mantissa layout as μ-law but
// works on 13-bit magnitudes, toggles the even bits with 0x55 and keeps the
// sign bit set for positive samples.

const alawMask = 0x55

// segment upper bounds for the 13-bit magnitude
var alawSegEnd = [8]int{0x1F, 0x3F, 0x7F, 0xFF, 0x1FF, 0x3FF, 0x7FF, 0xFFF}

// EncodeAlawSample encodes one linear PCM sample to an A-law byte.
func EncodeAlawSample(pcm int16) byte {
	s := int(pcm) >> 3
	var mask byte = 0xD5 // sign bit stays set for positive samples
	if s < 0 {
		mask = alawMask
		s = -s - 1
	}
	seg := 0
	for seg < 8 && s > alawSegEnd[seg] {
		seg++
	}
	if seg >= 8 {
		return 0x7F ^ mask
	}
	aval := byte(seg) << 4
	if seg < 2 {
		aval |= byte(s>>1) & 0x0F
	} else {
		aval |= byte(s>>seg) & 0x0F
	}
	return aval ^ mask
}

// DecodeAlawSample decodes one A-law byte to a linear PCM sample.
func DecodeAlawSample(a byte) int16 {
	a ^= alawMask
	t := int(a&0x0F) << 4
	seg := int(a&0x70) >> 4
	switch seg {
	case 0:
		t += 8
	case 1:
		t += 0x108
	default:
		t += 0x108
		t <<= seg - 1
	}
	if a&0x80 != 0 {
		return int16(t)
	}
	return int16(-t)
}

// EncodeAlaw encodes PCM int16 samples to A-law bytes, order preserved.
func EncodeAlaw(pcm []int16) []byte {
	out := make([]byte, len(pcm))
	for i, s := range pcm {
		out[i] = EncodeAlawSample(s)
	}
	return out
}

// DecodeAlaw decodes A-law bytes to PCM int16 samples, order preserved.
func DecodeAlaw(a []byte) []int16 {
	out := make([]int16, len(a))
	for i, b := range a {
		out[i] = DecodeAlawSample(b)
	}
	return out
}
