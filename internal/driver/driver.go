package driver

import (
	"errors"

	"g711-node/internal/audio/convert"
	"g711-node/internal/audio/g711"
)

// Control commands, wire-compatible with the original codec driver.
const (
	CmdEncode byte = 1
	CmdDecode byte = 2
)

var (
	// ErrMalformedInput is returned when an encode payload does not contain
	// whole little-endian int16 samples (odd byte count).
	ErrMalformedInput = errors.New("malformed input: encode payload must be an even number of bytes")
	// ErrUnsupportedOperation is returned for command selectors the driver
	// does not know. The response carries no buffer in that case.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// Law selects which G.711 companding the driver applies.
type Law string

const (
	LawULaw Law = "ulaw"
	LawALaw Law = "alaw"
)

// Driver dispatches control requests to the G.711 transcoder: a command
// byte plus an opaque payload in, a payload out. It holds no state between
// calls and is safe for concurrent use.
//
// Allocation failure is not part of the error surface; running out of
// memory aborts the Go runtime rather than returning an error.
type Driver struct {
	law Law
}

func New(law Law) (*Driver, error) {
	switch law {
	case LawULaw, LawALaw:
		return &Driver{law: law}, nil
	default:
		return nil, errors.New("unknown companding law: " + string(law))
	}
}

// Control converts the payload and returns the result buffer.
//
// CmdEncode: payload is little-endian int16 PCM, result is one companded
// byte per sample (half the byte count). Odd-length payloads fail with
// ErrMalformedInput and produce no buffer.
//
// CmdDecode: payload is companded bytes, any length; result is
// little-endian int16 PCM (double the byte count).
//
// Zero-length payloads convert to zero-length results. Unknown commands
// fail with ErrUnsupportedOperation; the original driver answered them
// with an empty binary, which callers could not tell apart from a legal
// empty result.
func (d *Driver) Control(cmd byte, payload []byte) ([]byte, error) {
	switch cmd {
	case CmdEncode:
		if len(payload)%2 != 0 {
			return nil, ErrMalformedInput
		}
		pcm := convert.BytesToInt16(payload)
		if d.law == LawALaw {
			return g711.EncodeAlaw(pcm), nil
		}
		return g711.EncodeUlaw(pcm), nil
	case CmdDecode:
		if d.law == LawALaw {
			return convert.Int16ToBytes(g711.DecodeAlaw(payload)), nil
		}
		return convert.Int16ToBytes(g711.DecodeUlaw(payload)), nil
	default:
		return nil, ErrUnsupportedOperation
	}
}

// Law reports the companding law this driver was created with.
func (d *Driver) Law() Law {
	return d.law
}
