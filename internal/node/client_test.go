package node

import (
	"testing"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
)

type closeTrackingHost struct {
	host.Host
	closed bool
}

func (h *closeTrackingHost) Close() error {
	h.closed = true
	return nil
}

type closeTrackingStream struct {
	network.Stream
	closed bool
}

func (s *closeTrackingStream) Close() error {
	s.closed = true
	return nil
}

func TestClientCloseReleasesStreamAndHost(t *testing.T) {
	h := &closeTrackingHost{}
	s := &closeTrackingStream{}
	c := &Client{host: h, stream: s}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !s.closed {
		t.Error("stream was not closed")
	}
	if !h.closed {
		t.Error("host was not closed")
	}
}
