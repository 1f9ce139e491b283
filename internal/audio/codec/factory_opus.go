//go:build opus

package codec

import (
	"errors"

	"g711-node/internal/audio/codec/iface"
	"g711-node/internal/audio/codec/opus"
	"g711-node/internal/audio/codec/pcma"
	"g711-node/internal/audio/codec/pcmu"
	"g711-node/internal/audio/config"
)

var ErrUnknownCodec = errors.New("unknown codec type")

// CreateEncoder creates an encoder for the configured codec.
func CreateEncoder(cfg config.AudioConfig) (iface.Encoder, error) {
	switch cfg.Type {
	case config.AudioCodecPCMU:
		return pcmu.NewEncoder(), nil
	case config.AudioCodecPCMA:
		return pcma.NewEncoder(), nil
	case config.AudioCodecOpus:
		return opus.NewEncoder(cfg)
	default:
		return nil, ErrUnknownCodec
	}
}

// CreateDecoder creates a decoder for the configured codec.
func CreateDecoder(cfg config.AudioConfig) (iface.Decoder, error) {
	switch cfg.Type {
	case config.AudioCodecPCMU:
		return pcmu.NewDecoder(), nil
	case config.AudioCodecPCMA:
		return pcma.NewDecoder(), nil
	case config.AudioCodecOpus:
		return opus.NewDecoder(cfg)
	default:
		return nil, ErrUnknownCodec
	}
}
