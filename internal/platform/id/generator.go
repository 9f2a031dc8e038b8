package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates opaque IDs for run and dispatch references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits "<prefix><yyyymmdd>-<hex>" identifiers.
type RandomGenerator struct {
	prefix string
	size   int
	now    func() time.Time
}

func NewRandomGenerator(prefix string) *RandomGenerator {
	return &RandomGenerator{prefix: prefix, size: 8, now: time.Now}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return g.prefix + g.now().UTC().Format("20060102") + "-" + hex.EncodeToString(buf), nil
}
