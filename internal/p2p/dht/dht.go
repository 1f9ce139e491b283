package dht

import (
	"context"
	"time"

	"g711-node/internal/p2p/base"

	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	drouting "github.com/libp2p/go-libp2p/p2p/discovery/routing"
	dutil "github.com/libp2p/go-libp2p/p2p/discovery/util"
	"github.com/rs/zerolog/log"
)

type DhtDiscover struct {
	base.Discover
}

// Advertise bootstraps the DHT and announces this host under the codec
// rendezvous so off-LAN clients can find it.
func (d *DhtDiscover) Advertise(ctx context.Context, h host.Host) (*drouting.RoutingDiscovery, error) {
	bootstrapPeers := make([]peer.AddrInfo, 0, len(d.Cfg.BootstrapPeers))
	for _, addr := range d.Cfg.BootstrapPeers {
		peerinfo, err := peer.AddrInfoFromP2pAddr(addr)
		if err != nil {
			log.Warn().Str("addr", addr.String()).Err(err).Msg("Skipping bootstrap peer")
			continue
		}
		bootstrapPeers = append(bootstrapPeers, *peerinfo)
	}
	kademliaDHT, err := dht.New(ctx, h, dht.BootstrapPeers(bootstrapPeers...))
	if err != nil {
		return nil, err
	}

	log.Debug().Msg("Bootstrapping the DHT...")
	if err = kademliaDHT.Bootstrap(ctx); err != nil {
		return nil, err
	}
	// Wait a bit to let bootstrapping finish (really bootstrap should block
	// until it's ready, but that isn't the case yet.)
	time.Sleep(1 * time.Second)

	routingDiscovery := drouting.NewRoutingDiscovery(kademliaDHT)
	dutil.Advertise(ctx, routingDiscovery, d.Cfg.RendezvousString)
	log.Debug().Msg("Announced codec node on the DHT")
	return routingDiscovery, nil
}

// FindStream searches the DHT for a codec node and opens a control stream.
func (d *DhtDiscover) FindStream(ctx context.Context, h host.Host) (network.Stream, error) {
	routingDiscovery, err := d.Advertise(ctx, h)
	if err != nil {
		return nil, err
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			log.Info().Msg("Searching for codec nodes on the DHT...")
			peerChan, err := routingDiscovery.FindPeers(ctx, d.Cfg.RendezvousString)
			if err != nil {
				return nil, err
			}
			for p := range peerChan {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				default:
					if stream := d.ConnectPeer(ctx, h, p); stream != nil {
						return stream, nil
					}
				}
			}
		}
	}
}
