package base

import (
	"testing"

	"github.com/libp2p/go-libp2p/core/network"
)

func TestNewDiscoverDefaults(t *testing.T) {
	d := NewDiscover(nil, nil)
	if d.Cfg.ProtocolId != ProtocolID {
		t.Errorf("ProtocolId = %q, want %q", d.Cfg.ProtocolId, ProtocolID)
	}
	if d.Cfg.RendezvousString != RendezvousString {
		t.Errorf("RendezvousString = %q, want %q", d.Cfg.RendezvousString, RendezvousString)
	}
	if d.ServeStream != nil {
		t.Error("client discover should carry no stream handler")
	}
}

func TestServeStreamInstallsAsLibp2pHandler(t *testing.T) {
	called := false
	d := NewDiscover(nil, func(network.Stream) { called = true })

	// the handler must be usable where the host API expects its own type
	var h network.StreamHandler = d.ServeStream
	h(nil)
	if !called {
		t.Fatal("handler was not invoked")
	}
}
