package node

import (
	"bytes"
	"errors"
	"testing"

	"g711-node/internal/driver"
)

func TestRequestFrameRoundTrip(t *testing.T) {
	frame := EncodeRequest(driver.CmdEncode, []byte{1, 2, 3, 4})
	cmd, payload, err := DecodeRequest(frame)
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	if cmd != driver.CmdEncode {
		t.Errorf("cmd = %d, want %d", cmd, driver.CmdEncode)
	}
	if !bytes.Equal(payload, []byte{1, 2, 3, 4}) {
		t.Errorf("payload = %v", payload)
	}
}

func TestRequestEmptyPayload(t *testing.T) {
	cmd, payload, err := DecodeRequest(EncodeRequest(driver.CmdDecode, nil))
	if err != nil || cmd != driver.CmdDecode || len(payload) != 0 {
		t.Errorf("got cmd=%d payload=%v err=%v", cmd, payload, err)
	}
}

func TestDecodeRequestEmptyFrame(t *testing.T) {
	if _, _, err := DecodeRequest(nil); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("error = %v, want ErrEmptyFrame", err)
	}
}

func TestResponseStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		err     error
		wantErr error
	}{
		{"ok", []byte{9, 8, 7}, nil, nil},
		{"ok empty", nil, nil, nil},
		{"malformed", []byte{1}, driver.ErrMalformedInput, driver.ErrMalformedInput},
		{"unsupported", nil, driver.ErrUnsupportedOperation, driver.ErrUnsupportedOperation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame := EncodeResponse(tc.payload, tc.err)
			payload, err := DecodeResponse(frame)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				if len(payload) != 0 {
					t.Fatalf("error response carried payload %v", payload)
				}
				return
			}
			if !bytes.Equal(payload, tc.payload) {
				t.Fatalf("payload = %v, want %v", payload, tc.payload)
			}
		})
	}
}

func TestDecodeResponseUnknownStatus(t *testing.T) {
	if _, err := DecodeResponse([]byte{42}); err == nil {
		t.Error("expected error for unknown status")
	}
}

// the full path a serving node runs per request
func TestDispatchThroughDriver(t *testing.T) {
	drv, err := driver.New(driver.LawULaw)
	if err != nil {
		t.Fatal(err)
	}
	req := EncodeRequest(driver.CmdEncode, make([]byte, 320))
	cmd, payload, err := DecodeRequest(req)
	if err != nil {
		t.Fatal(err)
	}
	result, derr := drv.Control(cmd, payload)
	resp := EncodeResponse(result, derr)
	out, err := DecodeResponse(resp)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(out) != 160 {
		t.Fatalf("result = %d bytes, want 160", len(out))
	}
}
