package node

import (
	"context"
	"fmt"

	"g711-node/internal/p2p/discovery"

	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-msgio"
)

// Client talks to a remote codec node over one control stream.
type Client struct {
	host   host.Host
	stream network.Stream
	rw     msgio.ReadWriteCloser
}

// Dial discovers a codec node (mDNS first, DHT fallback) and opens a
// control stream to it. Close releases the stream and the local host.
func Dial(ctx context.Context) (*Client, error) {
	stream, h, err := discovery.NewClient().FindStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find a codec node: %w", err)
	}
	return &Client{
		host:   h,
		stream: stream,
		rw:     msgio.NewReadWriter(stream),
	}, nil
}

// Control sends one request and waits for its response. Calls must not be
// issued concurrently on one client; open one stream per caller instead.
func (c *Client) Control(cmd byte, payload []byte) ([]byte, error) {
	if err := c.rw.WriteMsg(EncodeRequest(cmd, payload)); err != nil {
		return nil, fmt.Errorf("control request failed: %w", err)
	}
	frame, err := c.rw.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("control response failed: %w", err)
	}
	defer c.rw.ReleaseMsg(frame)

	result, err := DecodeResponse(frame)
	if err != nil {
		return nil, err
	}
	// detach from the msgio buffer
	out := make([]byte, len(result))
	copy(out, result)
	return out, nil
}

func (c *Client) Close() error {
	err := c.stream.Close()
	if c.host != nil {
		if herr := c.host.Close(); err == nil {
			err = herr
		}
	}
	return err
}
