//go:build !opus

package codec

import (
	"errors"

	"g711-node/internal/audio/codec/iface"
	"g711-node/internal/audio/codec/pcma"
	"g711-node/internal/audio/codec/pcmu"
	"g711-node/internal/audio/config"
)

var ErrUnknownCodec = errors.New("unknown codec type")

// CreateEncoder creates an encoder for the configured codec.
// Without the opus build tag only the G.711 codecs are available.
func CreateEncoder(cfg config.AudioConfig) (iface.Encoder, error) {
	switch cfg.Type {
	case config.AudioCodecPCMU:
		return pcmu.NewEncoder(), nil
	case config.AudioCodecPCMA:
		return pcma.NewEncoder(), nil
	case config.AudioCodecOpus:
		return nil, errors.New("opus codec requires the opus build tag and CGO")
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
		return nil, errors.New("opus codec requires the opus build tag and CGO")
	default:
		return nil, ErrUnknownCodec
	}
}
