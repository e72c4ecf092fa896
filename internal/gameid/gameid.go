// Package gameid generates sortable game identifiers: UUIDv7 encoded as a
// 26-character Crockford base32 string.
package gameid

import (
	"crypto/rand"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random bits of an id. A nil source falls back to
// crypto/rand; tests inject a seeded one for stable ids.
type RandSource interface {
	IntN(n int) int
}

// Generator creates game ids with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. randSource may be nil.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// New creates an id using crypto/rand.
func New() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new id.
func (g *Generator) Generate() string {
	return encodeBase32(g.uuidv7())
}

// uuidv7 builds a 128-bit UUIDv7: 48-bit millisecond timestamp, version and
// variant bits, and 74 random bits.
func (g *Generator) uuidv7() [16]byte {
	var uuid [16]byte

	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else {
		if _, err := rand.Read(uuid[6:]); err != nil {
			// crypto/rand never fails on supported platforms; a zeroed
			// suffix still yields a usable, time-ordered id.
			for i := 6; i < 16; i++ {
				uuid[i] = 0
			}
		}
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return uuid
}

// encodeBase32 packs 16 bytes into 26 base32 characters, most significant
// bits first.
func encodeBase32(data [16]byte) string {
	var out [26]byte

	// 128 bits / 5 bits per char = 25.6, so the last char carries the 3
	// leftover bits padded with zeros.
	var acc uint64
	bits := 0
	pos := 0
	for _, b := range data {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 && pos < 26 {
			shift := bits - 5
			out[pos] = alphabet[(acc>>uint(shift))&0x1f]
			bits -= 5
			pos++
		}
		acc &= (1 << uint(bits)) - 1
	}
	if pos < 26 {
		out[pos] = alphabet[acc<<(5-uint(bits))&0x1f]
	}
	return string(out[:])
}
