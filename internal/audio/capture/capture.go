package capture

import (
	"fmt"
	"runtime"

	"g711-node/internal/audio/codec/iface"
	"g711-node/internal/audio/config"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog/log"
)

// MalgoCapture reads PCM frames from the default capture device, encodes
// them and delivers the payloads on PayloadChan.
type MalgoCapture struct {
	PayloadChan chan []byte
	ctx         *malgo.AllocatedContext
	device      *malgo.Device
	Paused      bool
}

func NewMalgoCapture(audiocfg config.AudioConfig, enc iface.Encoder) (*MalgoCapture, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug().Str("msg", msg).Msg("Malgo context message")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init malgo context: %w", err)
	}

	mc := &MalgoCapture{
		PayloadChan: make(chan []byte, audiocfg.BufferSize),
		Paused:      false,
		ctx:         ctx,
	}

	capCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	capCfg.Capture.Format = malgo.FormatS16
	capCfg.Capture.Channels = audiocfg.Channels
	capCfg.SampleRate = audiocfg.SampleRate

	// alsa specific settings for linux
	if runtime.GOOS == "linux" {
		capCfg.Alsa.NoMMap = 1
	}

	var capturedPCM []int16
	frameSamples := audiocfg.FrameSamples
	onCapture := func(_, input []byte, frameCount uint32) {
		if mc.Paused {
			return
		}
		samples := make([]int16, int(frameCount*capCfg.Capture.Channels))
		for i := 0; i < len(samples); i++ {
			off := i * 2
			samples[i] = int16(input[off]) | int16(input[off+1])<<8
		}
		capturedPCM = append(capturedPCM, samples...)

		for len(capturedPCM) >= frameSamples {
			frame := capturedPCM[:frameSamples]
			capturedPCM = capturedPCM[frameSamples:]

			payload, err := enc.Encode(frame)
			if err != nil {
				log.Warn().Err(err).Msg("Frame encode failed")
				continue
			}
			if payload == nil {
				continue // silence-suppressed frame
			}
			select {
			case mc.PayloadChan <- payload:
			default:
				// drop payloads if channel is full
			}
		}
	}

	device, err := malgo.InitDevice(ctx.Context, capCfg, malgo.DeviceCallbacks{Data: onCapture})
	if err != nil {
		return nil, fmt.Errorf("failed to open capture device: %w", err)
	}
	mc.device = device

	if err := mc.device.Start(); err != nil {
		return nil, fmt.Errorf("failed to start capture device: %w", err)
	}
	log.Info().Uint32("rate", audiocfg.SampleRate).Msg("Capture device started")

	return mc, nil
}

func (mc *MalgoCapture) Close() {
	if mc.device != nil {
		mc.device.Uninit()
	}
	if mc.ctx != nil {
		_ = mc.ctx.Uninit()
		mc.ctx.Free()
	}
}
