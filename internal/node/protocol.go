package node

import (
	"errors"
	"fmt"

	"g711-node/internal/driver"
)

// Control frames ride length-prefixed msgio messages over a libp2p stream.
// Request:  [command byte | payload]
// Response: [status byte  | payload]

const (
	StatusOK                   byte = 0
	StatusMalformedInput       byte = 1
	StatusUnsupportedOperation byte = 2
)

var ErrEmptyFrame = errors.New("empty control frame")

// EncodeRequest builds a control request frame.
func EncodeRequest(cmd byte, payload []byte) []byte {
	frame := make([]byte, 1+len(payload))
	frame[0] = cmd
	copy(frame[1:], payload)
	return frame
}

// DecodeRequest splits a control request frame.
func DecodeRequest(frame []byte) (cmd byte, payload []byte, err error) {
	if len(frame) == 0 {
		return 0, nil, ErrEmptyFrame
	}
	return frame[0], frame[1:], nil
}

// EncodeResponse builds a response frame for a driver result.
func EncodeResponse(payload []byte, err error) []byte {
	status := StatusOK
	switch {
	case errors.Is(err, driver.ErrMalformedInput):
		status = StatusMalformedInput
		payload = nil
	case errors.Is(err, driver.ErrUnsupportedOperation):
		status = StatusUnsupportedOperation
		payload = nil
	case err != nil:
		// the driver only fails with the two errors above; anything else
		// is a programming error on this side
		status = StatusUnsupportedOperation
		payload = nil
	}
	frame := make([]byte, 1+len(payload))
	frame[0] = status
	copy(frame[1:], payload)
	return frame
}

// DecodeResponse splits a response frame and maps the status back onto the
// driver's error values.
func DecodeResponse(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyFrame
	}
	status, payload := frame[0], frame[1:]
	switch status {
	case StatusOK:
		return payload, nil
	case StatusMalformedInput:
		return nil, driver.ErrMalformedInput
	case StatusUnsupportedOperation:
		return nil, driver.ErrUnsupportedOperation
	default:
		return nil, fmt.Errorf("unknown response status %d", status)
	}
}
