package pipeline

import (
	"sync"
	"time"

	"g711-node/internal/audio/capture"
	"g711-node/internal/audio/codec"
	"g711-node/internal/audio/codec/iface"
	"g711-node/internal/audio/config"
	"g711-node/internal/audio/playback"
	"g711-node/internal/audio/resample"

	"github.com/rs/zerolog/log"
)

// AddOnPipe adds a processing function to the pipeline.
// q - quit channel to stop the processing
// f - processing function
// in - input channel
// chanBuffer - buffer size for the output channel
// returns the output channel, further stages can be chained on it
func AddOnPipe[X, Y any](q <-chan struct{}, f func(X) Y, in <-chan X, chanBuffer int) chan Y {
	out := make(chan Y, chanBuffer)
	go func() {
		defer close(out)
		for {
			select {
			case <-q:
				return
			case data, ok := <-in:
				if !ok {
					return
				}
				result := f(data)
				select {
				case out <- result:
				default: // if out channel is full, drop the data
					log.Debug().Msg("Dropping data in pipeline stage")
				}
			}
		}
	}()
	return out
}

// Player decodes codec payloads and feeds the playback device through a
// small jitter buffer. Material below the device rate is upsampled.
type Player struct {
	Playback   *playback.MalgoPlayback
	InPayloads chan []byte
	Quit       chan struct{}

	decoder    iface.Decoder
	cfg        config.AudioConfig
	deviceRate int

	jitterBuffer      [][]int16
	jitterBufferMutex sync.Mutex
	minBufferSize     int
	maxBufferSize     int
}

func NewPlayer(audiocfg config.AudioConfig, deviceRate int) (*Player, error) {
	dec, err := codec.CreateDecoder(audiocfg)
	if err != nil {
		return nil, err
	}
	pb, err := playback.NewMalgoPlayback(uint32(deviceRate), audiocfg.Channels, audiocfg.BufferSize)
	if err != nil {
		return nil, err
	}
	return &Player{
		Playback:      pb,
		InPayloads:    make(chan []byte, audiocfg.BufferSize),
		Quit:          make(chan struct{}),
		decoder:       dec,
		cfg:           audiocfg,
		deviceRate:    deviceRate,
		minBufferSize: config.JitterBufferSize,
		maxBufferSize: config.JitterBufferSize * 3,
	}, nil
}

// Run consumes payloads from InPayloads until the channel closes or Quit
// fires. Decode and resample run as chained pipeline stages.
func (p *Player) Run() {
	defer log.Debug().Msg("Playback pipeline stopped")

	decoded := AddOnPipe(p.Quit, p.decode, p.InPayloads, p.cfg.BufferSize)
	frames := AddOnPipe(p.Quit, p.toDeviceRate, decoded, p.cfg.BufferSize)

	go p.manageJitterBuffer()
	for {
		select {
		case <-p.Quit:
			return
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if frame == nil {
				continue
			}
			p.addToJitterBuffer(frame)
		}
	}
}

func (p *Player) decode(payload []byte) []int16 {
	pcm, err := p.decoder.Decode(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Payload decode failed")
		return nil
	}
	return pcm
}

func (p *Player) toDeviceRate(pcm []int16) []int16 {
	if pcm == nil || int(p.cfg.SampleRate) == p.deviceRate {
		return pcm
	}
	out, err := resample.Int16(pcm, int(p.cfg.SampleRate), p.deviceRate, int(p.cfg.Channels))
	if err != nil {
		log.Warn().Err(err).Msg("Resample failed")
		return nil
	}
	return out
}

// addToJitterBuffer adds a frame to the jitter buffer with overflow protection
func (p *Player) addToJitterBuffer(frame []int16) {
	p.jitterBufferMutex.Lock()
	defer p.jitterBufferMutex.Unlock()

	p.jitterBuffer = append(p.jitterBuffer, frame)

	if len(p.jitterBuffer) > p.maxBufferSize {
		log.Debug().Int("frames", len(p.jitterBuffer)).Msg("Jitter buffer overflow, dropping old frames")
		excess := len(p.jitterBuffer) - p.maxBufferSize
		p.jitterBuffer = p.jitterBuffer[excess:]
	}
}

// sends frames from the jitter buffer to playback at regular intervals
func (p *Player) manageJitterBuffer() {
	ticker := time.NewTicker(20 * time.Millisecond) // standard frame duration
	defer ticker.Stop()

	for {
		select {
		case <-p.Quit:
			return
		case <-ticker.C:
			p.jitterBufferMutex.Lock()

			if len(p.jitterBuffer) < p.minBufferSize {
				p.jitterBufferMutex.Unlock()
				continue
			}

			frame := p.jitterBuffer[0]
			p.jitterBuffer = p.jitterBuffer[1:]

			p.jitterBufferMutex.Unlock()

			select {
			case p.Playback.InChan <- frame:
			default:
				log.Debug().Msg("Playback channel full, dropping frame")
			}
		}
	}
}

func (p *Player) Close() {
	close(p.Quit)
	p.Playback.Close()
}

// Recorder captures microphone audio and emits encoded payloads on
// Payloads. Silence suppression is left to the encoder.
type Recorder struct {
	Capture *capture.MalgoCapture
	Quit    chan struct{}
}

func NewRecorder(audiocfg config.AudioConfig, dropSilence bool) (*Recorder, error) {
	enc, err := codec.CreateEncoder(audiocfg)
	if err != nil {
		return nil, err
	}
	if e, ok := enc.(interface{ SetDropSilence(bool) }); ok {
		e.SetDropSilence(dropSilence)
	}
	mic, err := capture.NewMalgoCapture(audiocfg, enc)
	if err != nil {
		return nil, err
	}
	return &Recorder{Capture: mic, Quit: make(chan struct{})}, nil
}

func (r *Recorder) Payloads() <-chan []byte {
	return r.Capture.PayloadChan
}

func (r *Recorder) Close() {
	close(r.Quit)
	r.Capture.Close()
}
