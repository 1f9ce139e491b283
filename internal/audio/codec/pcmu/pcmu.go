package pcmu

import (
	"math"

	"g711-node/internal/audio/config"
	"g711-node/internal/audio/g711"
)

// Encoder encodes PCM int16 frames to G.711 mu-law payloads.
// With DropSilence set, frames below the energy threshold are skipped
// (returned as nil) to save bandwidth on the capture path.
type Encoder struct {
	DropSilence bool
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) SetDropSilence(drop bool) {
	e.DropSilence = drop
}

func (e *Encoder) Encode(pcm []int16) ([]byte, error) {
	if e.DropSilence && isSilence(pcm) {
		return nil, nil
	}
	return g711.EncodeUlaw(pcm), nil
}

// Decoder decodes G.711 mu-law payloads to PCM int16 frames.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(encoded []byte) ([]int16, error) {
	return g711.DecodeUlaw(encoded), nil
}

// Simple silence detection based on RMS energy and zero-crossing rate
func isSilence(frame []int16) bool {
	if len(frame) == 0 {
		return true
	}
	var sumSquares float64
	for _, sample := range frame {
		sumSquares += float64(sample) * float64(sample)
	}
	rms := math.Sqrt(sumSquares / float64(len(frame)))
	if rms < config.EnergyThreshold {
		return true
	}

	var zeroCrossings int
	for i := 1; i < len(frame); i++ {
		if (frame[i-1] >= 0 && frame[i] < 0) || (frame[i-1] < 0 && frame[i] >= 0) {
			zeroCrossings++
		}
	}
	zcr := float64(zeroCrossings) / float64(len(frame))
	return zcr < 0.1
}
