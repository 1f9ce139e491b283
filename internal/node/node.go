package node

import (
	"context"
	"errors"
	"io"

	"g711-node/internal/driver"
	"g711-node/internal/p2p/discovery"

	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-msgio"
	"github.com/rs/zerolog/log"
)

// Node serves the codec driver over libp2p control streams. One stream per
// client; requests on a stream are answered in order, each one independent
// of the last.
type Node struct {
	drv *driver.Driver
}

func New(drv *driver.Driver) *Node {
	return &Node{drv: drv}
}

// Serve announces the node and blocks serving control streams until ctx is
// cancelled.
func (n *Node) Serve(ctx context.Context) error {
	log.Info().Str("law", string(n.drv.Law())).Msg("Starting codec node")
	mgr := discovery.NewServer(n.HandleStream)
	return mgr.Serve(ctx)
}

// HandleStream runs the request loop for one client stream.
func (n *Node) HandleStream(stream network.Stream) {
	peer := stream.Conn().RemotePeer().String()
	log.Info().Str("peer", peer).Msg("New control stream")
	defer stream.Close()

	rw := msgio.NewReadWriter(stream)
	for {
		frame, err := rw.ReadMsg()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Str("peer", peer).Err(err).Msg("Control stream read failed")
			}
			return
		}

		cmd, payload, err := DecodeRequest(frame)
		var result []byte
		if err == nil {
			result, err = n.drv.Control(cmd, payload)
		} else {
			err = driver.ErrUnsupportedOperation
		}
		rw.ReleaseMsg(frame)

		if err != nil {
			log.Debug().Str("peer", peer).Err(err).Msg("Control request rejected")
		}
		if werr := rw.WriteMsg(EncodeResponse(result, err)); werr != nil {
			log.Warn().Str("peer", peer).Err(werr).Msg("Control stream write failed")
			return
		}
	}
}
