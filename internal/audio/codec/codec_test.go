package codec

import (
	"errors"
	"testing"

	"g711-node/internal/audio/config"
)

func TestFactoryG711RoundTrip(t *testing.T) {
	for _, name := range []string{"pcmu", "pcma"} {
		t.Run(name, func(t *testing.T) {
			cfg, ok := config.ByName(name)
			if !ok {
				t.Fatalf("no config for %s", name)
			}
			enc, err := CreateEncoder(cfg)
			if err != nil {
				t.Fatalf("CreateEncoder: %v", err)
			}
			dec, err := CreateDecoder(cfg)
			if err != nil {
				t.Fatalf("CreateDecoder: %v", err)
			}

			frame := make([]int16, cfg.FrameSamples)
			for i := range frame {
				frame[i] = int16((i%80)*350 - 14000) // sawtooth, loud enough to not be silence
			}
			payload, err := enc.Encode(frame)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(payload) != len(frame) {
				t.Fatalf("payload length = %d, want %d (one byte per sample)", len(payload), len(frame))
			}
			decoded, err := dec.Decode(payload)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(decoded) != len(frame) {
				t.Fatalf("decoded length = %d, want %d", len(decoded), len(frame))
			}
			for i := range frame {
				diff := int(decoded[i]) - int(frame[i])
				if diff < 0 {
					diff = -diff
				}
				if diff > 1024 {
					t.Fatalf("sample %d: %d decoded as %d", i, frame[i], decoded[i])
				}
			}
		})
	}
}

func TestFactoryUnknownCodec(t *testing.T) {
	_, err := CreateEncoder(config.AudioConfig{Type: "speex"})
	if !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("CreateEncoder error = %v, want ErrUnknownCodec", err)
	}
	_, err = CreateDecoder(config.AudioConfig{Type: "speex"})
	if !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("CreateDecoder error = %v, want ErrUnknownCodec", err)
	}
}
