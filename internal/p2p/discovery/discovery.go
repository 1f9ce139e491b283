package discovery

import (
	"context"
	"time"

	"g711-node/internal/p2p/base"
	"g711-node/internal/p2p/dht"
	"g711-node/internal/p2p/mdns"
	"g711-node/internal/p2p/netcheck"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/rs/zerolog/log"
)

// DiscoverManager runs the codec node discovery: mDNS on the local network
// first, Kademlia DHT as the wide-area fallback.
type DiscoverManager struct {
	baseDiscover base.Discover
}

// NewServer creates a manager that serves inbound codec streams with handler.
func NewServer(handler base.StreamHandler) *DiscoverManager {
	return &DiscoverManager{baseDiscover: *base.NewDiscover(nil, handler)}
}

// NewClient creates a manager used only to find a codec node.
func NewClient() *DiscoverManager {
	return &DiscoverManager{baseDiscover: *base.NewDiscover(nil, nil)}
}

// Serve announces this node over mDNS and the DHT and blocks until ctx is
// done. Inbound streams are handled by the configured stream handler.
func (d *DiscoverManager) Serve(ctx context.Context) error {
	h, err := d.baseDiscover.NewHost()
	if err != nil {
		return err
	}
	defer h.Close()
	log.Info().
		Str("host", h.ID().String()).
		Any("address", h.Addrs()).
		Msg("Codec node host created")

	if _, err := mdns.Register(h, d.baseDiscover.Cfg.RendezvousString); err != nil {
		log.Warn().Err(err).Msg("Failed to start mDNS service")
	}

	netcheck.Report()
	dhtDiscover := dht.DhtDiscover{Discover: d.baseDiscover}
	if _, err := dhtDiscover.Advertise(ctx, h); err != nil {
		// mDNS alone still serves the LAN
		log.Warn().Err(err).Msg("DHT advertise failed, serving mDNS only")
	}

	<-ctx.Done()
	return ctx.Err()
}

// FindStream locates a codec node and opens a control stream: mDNS with a
// timeout, then DHT. The returned host carries the stream; the caller owns
// both and closes the host when done.
func (d *DiscoverManager) FindStream(ctx context.Context) (network.Stream, host.Host, error) {
	h, err := d.baseDiscover.NewHost()
	if err != nil {
		return nil, nil, err
	}

	mdnsCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	mdnsDiscover := mdns.MDNSDiscovery{Discover: d.baseDiscover}
	stream, err := mdnsDiscover.FindStream(mdnsCtx, h)
	if err == nil {
		return stream, h, nil
	}
	cancel()

	log.Warn().Err(err).Msg("mDNS discovery failed, falling back to DHT")
	netcheck.Report()
	dhtDiscover := dht.DhtDiscover{Discover: d.baseDiscover}
	stream, err = dhtDiscover.FindStream(ctx, h)
	if err != nil {
		h.Close()
		return nil, nil, err
	}
	return stream, h, nil
}
