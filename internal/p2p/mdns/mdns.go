package mdns

import (
	"context"

	"g711-node/internal/p2p/base"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/p2p/discovery/mdns"
	"github.com/rs/zerolog/log"
)

type MDNSDiscovery struct {
	base.Discover
}

// Register announces the host on the local network and returns the channel
// of peers found under the same rendezvous name.
func Register(peerhost host.Host, rendezvous string) (chan peer.AddrInfo, error) {
	n := &discoveryNotifee{}
	n.PeerChan = make(chan peer.AddrInfo)

	ser := mdns.NewMdnsService(peerhost, rendezvous, n)
	if err := ser.Start(); err != nil {
		return nil, err
	}
	return n.PeerChan, nil
}

// FindStream waits for a codec node on the local network and opens a
// control stream to it.
func (m *MDNSDiscovery) FindStream(ctx context.Context, h host.Host) (network.Stream, error) {
	log.Info().Msg("Start mDNS discovery")
	peerChan, err := Register(h, m.Cfg.RendezvousString)
	if err != nil {
		return nil, err
	}

	for {
		log.Info().Msg("Waiting for a codec node via mDNS...")
		select {
		case <-ctx.Done():
			log.Info().Msg("mDNS discovery stopped")
			return nil, ctx.Err()
		case p := <-peerChan:
			if stream := m.ConnectPeer(ctx, h, p); stream != nil {
				return stream, nil
			}
		}
	}
}

type discoveryNotifee struct {
	PeerChan chan peer.AddrInfo
}

func (n *discoveryNotifee) HandlePeerFound(pi peer.AddrInfo) {
	n.PeerChan <- pi
}
