package config

import (
	"github.com/pion/webrtc/v4"
)

type AudioConfigType string

func (ac AudioConfigType) String() string {
	return string(ac)
}

const (
	SampleRateG711   = 8000 // G.711 is specified at 8kHz
	FrameSamplesG711 = 160  // 20 ms at 8kHz
	ChannelsG711     = 1

	SampleRateOpus   = 48000
	FrameSamplesOpus = 960 // 20 ms at 48kHz
	ChannelsOpus     = 1

	EnergyThreshold = 500 // RMS threshold for silence detection in capture mode

	JitterBufferSize = 3 // frames buffered before playout starts

	AudioCodecPCMU AudioConfigType = "pcmu"
	AudioCodecPCMA AudioConfigType = "pcma"
	AudioCodecOpus AudioConfigType = "opus"
)

type AudioConfig struct {
	SampleRate   uint32
	FrameSamples int
	Channels     uint32
	BufferSize   int // channel buffer size in frames
	Type         AudioConfigType
	PayloadType  uint8
	MimeType     string
}

// NewPCMUConfig creates AudioConfig for the G.711 mu-law codec
func NewPCMUConfig() AudioConfig {
	return AudioConfig{
		SampleRate:   SampleRateG711,
		FrameSamples: FrameSamplesG711,
		Channels:     ChannelsG711,
		BufferSize:   300,
		Type:         AudioCodecPCMU,
		PayloadType:  0,
		MimeType:     webrtc.MimeTypePCMU,
	}
}

// NewPCMAConfig creates AudioConfig for the G.711 A-law codec
func NewPCMAConfig() AudioConfig {
	return AudioConfig{
		SampleRate:   SampleRateG711,
		FrameSamples: FrameSamplesG711,
		Channels:     ChannelsG711,
		BufferSize:   300,
		Type:         AudioCodecPCMA,
		PayloadType:  8,
		MimeType:     webrtc.MimeTypePCMA,
	}
}

// NewOpusConfig creates AudioConfig for the opus codec (requires the opus build tag)
func NewOpusConfig() AudioConfig {
	return AudioConfig{
		SampleRate:   SampleRateOpus,
		FrameSamples: FrameSamplesOpus,
		Channels:     ChannelsOpus,
		BufferSize:   300,
		Type:         AudioCodecOpus,
		PayloadType:  111,
		MimeType:     webrtc.MimeTypeOpus,
	}
}

// ByName maps a codec name from flags or env to its config
func ByName(name string) (AudioConfig, bool) {
	switch AudioConfigType(name) {
	case AudioCodecPCMU:
		return NewPCMUConfig(), true
	case AudioCodecPCMA:
		return NewPCMAConfig(), true
	case AudioCodecOpus:
		return NewOpusConfig(), true
	}
	return AudioConfig{}, false
}
