package convert

import (
	"encoding/binary"
)

// Raw PCM buffers on the wire are little-endian int16, two bytes per sample.

func Float32ToInt16(src []float32) []int16 {
	dst := make([]int16, len(src))
	for i, v := range src {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		dst[i] = int16(v * 32767)
	}
	return dst
}

func Int16ToFloat32(src []int16) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = float32(v) / 32767.0
	}
	return dst
}

// BytesToInt16 converts a little-endian byte buffer to int16 samples.
// A trailing odd byte is truncated; callers that must reject odd input
// check the length before converting.
func BytesToInt16(src []byte) []int16 {
	if len(src)%2 != 0 {
		src = src[:len(src)-1]
	}
	dst := make([]int16, len(src)/2)
	for i := 0; i < len(dst); i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(src[i*2 : i*2+2]))
	}
	return dst
}

// Int16ToBytes converts int16 samples to a little-endian byte buffer.
func Int16ToBytes(src []int16) []byte {
	dst := make([]byte, len(src)*2)
	for i, v := range src {
		binary.LittleEndian.PutUint16(dst[i*2:i*2+2], uint16(v))
	}
	return dst
}
