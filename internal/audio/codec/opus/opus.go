//go:build opus

package opus

import (
	"fmt"

	"g711-node/internal/audio/config"
	"g711-node/internal/audio/convert"

	"gopkg.in/hraban/opus.v2"
)

// Encoder encodes PCM int16 frames to opus packets. Frame length must be a
// legal opus frame size for the configured rate (validated on construction).
type Encoder struct {
	enc        *opus.Encoder
	sampleRate int
	channels   int
}

func NewEncoder(cfg config.AudioConfig) (*Encoder, error) {
	if !convert.IsFrameSizeValid(int(cfg.SampleRate), cfg.FrameSamples) {
		return nil, fmt.Errorf("invalid opus frame size %d for rate %d", cfg.FrameSamples, cfg.SampleRate)
	}
	enc, err := opus.NewEncoder(int(cfg.SampleRate), int(cfg.Channels), opus.AppVoIP)
	if err != nil {
		return nil, err
	}
	if err := enc.SetDTX(true); err != nil {
		return nil, fmt.Errorf("failed to enable DTX: %w", err)
	}
	return &Encoder{
		enc:        enc,
		sampleRate: int(cfg.SampleRate),
		channels:   int(cfg.Channels),
	}, nil
}

func (e *Encoder) Encode(samples []int16) ([]byte, error) {
	opusData := make([]byte, 4000) // max opus packet size
	n, err := e.enc.Encode(samples, opusData)
	if err != nil {
		return nil, err
	}
	if n < 3 {
		// very small packet, likely DTX/no voice
		return nil, nil
	}
	packet := make([]byte, n)
	copy(packet, opusData[:n])
	return packet, nil
}

// Decoder decodes opus packets to PCM int16 frames.
type Decoder struct {
	dec       *opus.Decoder
	channels  int
	frameSize int
}

func NewDecoder(cfg config.AudioConfig) (*Decoder, error) {
	dec, err := opus.NewDecoder(int(cfg.SampleRate), int(cfg.Channels))
	if err != nil {
		return nil, err
	}
	return &Decoder{
		dec:       dec,
		channels:  int(cfg.Channels),
		frameSize: cfg.FrameSamples,
	}, nil
}

func (d *Decoder) Decode(packet []byte) ([]int16, error) {
	intBuf := make([]int16, d.frameSize*d.channels)
	n, err := d.dec.Decode(packet, intBuf)
	if err != nil {
		return nil, err
	}
	return intBuf[:n*d.channels], nil
}
