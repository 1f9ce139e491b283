package pcma

import (
	"g711-node/internal/audio/g711"
)

// Encoder encodes PCM int16 frames to G.711 A-law payloads.
type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Encode(pcm []int16) ([]byte, error) {
	return g711.EncodeAlaw(pcm), nil
}

// Decoder decodes G.711 A-law payloads to PCM int16 frames.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(encoded []byte) ([]int16, error) {
	return g711.DecodeAlaw(encoded), nil
}
