package netcheck

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pion/stun"
	"github.com/rs/zerolog/log"
)

const defaultStunServer = "stun.l.google.com:19302"

// Servers returns the STUN servers from STUN_SERVERS (comma separated,
// with or without the stun: scheme) or the default public one.
func Servers() []string {
	env := os.Getenv("STUN_SERVERS")
	if env == "" {
		return []string{defaultStunServer}
	}
	servers := strings.Split(env, ",")
	for i, server := range servers {
		server = strings.TrimSpace(server)
		server = strings.TrimPrefix(server, "stun:")
		servers[i] = server
	}
	return servers
}

// PublicAddress asks a STUN server for our reflexive address. Used before
// falling back to DHT discovery to report whether this node is reachable
// from outside the LAN at all.
func PublicAddress(server string) (string, error) {
	c, err := stun.Dial("udp4", server)
	if err != nil {
		return "", fmt.Errorf("stun dial %s: %w", server, err)
	}
	defer c.Close()

	message := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	var addr string
	var reqErr error
	if err := c.Do(message, func(res stun.Event) {
		if res.Error != nil {
			reqErr = res.Error
			return
		}
		var xorAddr stun.XORMappedAddress
		if err := xorAddr.GetFrom(res.Message); err != nil {
			reqErr = err
			return
		}
		addr = xorAddr.String()
	}); err != nil {
		return "", fmt.Errorf("stun binding %s: %w", server, err)
	}
	if reqErr != nil {
		return "", reqErr
	}
	return addr, nil
}

// Report probes the configured STUN servers and logs the first answer.
func Report() {
	start := time.Now()
	for _, server := range Servers() {
		addr, err := PublicAddress(server)
		if err != nil {
			log.Warn().Str("server", server).Err(err).Msg("STUN probe failed")
			continue
		}
		log.Info().
			Str("server", server).
			Str("public_addr", addr).
			Dur("took", time.Since(start)).
			Msg("STUN reachability ok")
		return
	}
	log.Warn().Msg("No STUN server reachable, DHT discovery may not work behind NAT")
}
