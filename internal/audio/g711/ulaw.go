package g711

// G.711 μ-law (PCMU) companding. 16-bit linear PCM <-> 8-bit logarithmic codes,
// one byte per sample, no state between samples.

const muBias = 0x84  // 132, added before segment search
const muClip = 32635 // max magnitude before biasing, avoids overflow into segment 8

// EncodeUlawSample encodes one linear PCM sample to a μ-law byte.
// Arithmetic is done in int so that -32768 negates cleanly and clamps
// like +32767 instead of wrapping.
func EncodeUlawSample(pcm int16) byte {
	s := int(pcm)
	var sign byte
	if s < 0 {
		s = -s
		sign = 0x80
	}
	if s > muClip {
		s = muClip
	}
	s += muBias
	exponent := byte(7)
	for mask := 0x4000; s&mask == 0 && exponent > 0; mask >>= 1 {
		exponent--
	}
	mantissa := byte(s>>(exponent+3)) & 0x0F
	// μ-law stores the complement
	return ^(sign | exponent<<4 | mantissa)
}

// DecodeUlawSample decodes one μ-law byte to a linear PCM sample.
func DecodeUlawSample(mu byte) int16 {
	mu = ^mu
	sign := mu & 0x80
	exponent := (mu >> 4) & 0x07
	mantissa := mu & 0x0F
	v := ((int(mantissa) << 3) + muBias) << exponent
	v -= muBias
	if sign != 0 {
		v = -v
	}
	return int16(v)
}

// EncodeUlaw encodes PCM int16 samples to μ-law bytes, order preserved.
func EncodeUlaw(pcm []int16) []byte {
	out := make([]byte, len(pcm))
	for i, s := range pcm {
		out[i] = EncodeUlawSample(s)
	}
	return out
}

// DecodeUlaw decodes μ-law bytes to PCM int16 samples, order preserved.
func DecodeUlaw(mu []byte) []int16 {
	out := make([]int16, len(mu))
	for i, b := range mu {
		out[i] = DecodeUlawSample(b)
	}
	return out
}
