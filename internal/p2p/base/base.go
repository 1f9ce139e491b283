package base

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"
	"github.com/multiformats/go-multiaddr"
	"github.com/rs/zerolog/log"
)

var (
	RendezvousString string                = "g711-codec-node-4f7a5f2e-90cc-4a13-bd21-6f1e2d8c03aa"
	BootstrapPeers   []multiaddr.Multiaddr = dht.DefaultBootstrapPeers
	ProtocolID       string                = "/g711-node/codec/1.0.0"
)

// StreamHandler serves one codec control stream. Alias of libp2p's handler
// type so a Discover handler installs on a host without conversion.
type StreamHandler = network.StreamHandler

type DiscoverConfig struct {
	ProtocolId       string
	RendezvousString string
	BootstrapPeers   []multiaddr.Multiaddr
	ListenHost       string
	ListenPort       int
}

func NewDefaultDiscoverConfig() *DiscoverConfig {
	return &DiscoverConfig{
		ProtocolId:       ProtocolID,
		RendezvousString: RendezvousString,
		BootstrapPeers:   dht.DefaultBootstrapPeers,
		ListenHost:       "0.0.0.0",
		ListenPort:       0,
	}
}

// Discover carries the shared discovery config plus the handler a serving
// node installs for inbound codec streams. Clients leave ServeStream nil.
type Discover struct {
	Cfg         *DiscoverConfig
	ServeStream StreamHandler
}

func NewDiscover(cfg *DiscoverConfig, serveStream StreamHandler) *Discover {
	if cfg == nil {
		cfg = NewDefaultDiscoverConfig()
	}
	return &Discover{Cfg: cfg, ServeStream: serveStream}
}

// NewHost creates the libp2p host and installs the codec stream handler
// when one is configured.
func (d *Discover) NewHost() (host.Host, error) {
	prvKey, _, err := crypto.GenerateKeyPairWithReader(crypto.RSA, 2048, rand.Reader)
	if err != nil {
		return nil, err
	}
	sourceMultiAddr, err := multiaddr.NewMultiaddr(fmt.Sprintf("/ip4/%s/tcp/%d", d.Cfg.ListenHost, d.Cfg.ListenPort))
	if err != nil {
		return nil, err
	}
	h, err := libp2p.New(
		libp2p.ListenAddrs(sourceMultiAddr),
		libp2p.Identity(prvKey),
	)
	if err != nil {
		return nil, err
	}
	if d.ServeStream != nil {
		h.SetStreamHandler(protocol.ID(d.Cfg.ProtocolId), d.ServeStream)
	}
	return h, nil
}

// ConnectPeer connects to one discovered peer and opens a codec control
// stream to it. Returns nil when the peer is ourselves or unreachable.
func (d *Discover) ConnectPeer(ctx context.Context, h host.Host, p peer.AddrInfo) network.Stream {
	if p.ID == h.ID() {
		return nil
	}
	log.Debug().Str("peer", p.String()).Msg("found codec node")
	if err := h.Connect(ctx, p); err != nil {
		log.Warn().Str("peer", p.String()).Err(err).Msg("Connection failed")
		return nil
	}
	stream, err := h.NewStream(ctx, p.ID, protocol.ID(d.Cfg.ProtocolId))
	if err != nil {
		log.Warn().Str("peer", p.String()).Err(err).Msg("Stream open failed")
		return nil
	}
	log.Info().Str("peer", p.String()).Msg("Connected to codec node")
	return stream
}
