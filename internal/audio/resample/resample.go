package resample

import (
	"fmt"

	"g711-node/internal/audio/convert"

	"github.com/dh1tw/gosamplerate"
)

// Int16 converts a PCM buffer from inRate to outRate using libsamplerate.
// Used when bridging 8kHz G.711 material with 48kHz device or opus paths.
func Int16(in []int16, inRate, outRate, channels int) ([]int16, error) {
	if inRate == outRate || len(in) == 0 {
		return in, nil
	}
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("invalid sample rates %d -> %d", inRate, outRate)
	}
	ratio := float64(outRate) / float64(inRate)
	out, err := gosamplerate.Simple(convert.Int16ToFloat32(in), ratio, channels, gosamplerate.SRC_SINC_FASTEST)
	if err != nil {
		return nil, fmt.Errorf("resample %d -> %d failed: %w", inRate, outRate, err)
	}
	return convert.Float32ToInt16(out), nil
}
