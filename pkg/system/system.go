package system

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionID returns a random hex id used to tag transcode sessions
// in log output.
func GenerateSessionID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
