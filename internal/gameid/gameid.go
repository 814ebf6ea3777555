// Package gameid generates session identifiers: a UUIDv7 written as 26
// lowercase Crockford base32 characters, so ids sort by creation time.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// Generator creates ids from an optional random source
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator. A nil reader uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new game ID using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return Encode(id)
}

// Encode writes the 128 bits of id as 26 base32 characters. The encoding
// covers 130 bits, so the two leading bits are zero and the first character
// is at most '7'.
func Encode(id uuid.UUID) string {
	out := make([]byte, Length)
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 {
				v |= (id[bit/8] >> (7 - bit%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode parses an encoded id back into its UUID
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := byte(strings.IndexByte(alphabet, s[i]))
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			if bit < 0 {
				continue
			}
			if v&(1<<(4-b)) != 0 {
				id[bit/8] |= 1 << (7 - bit%8)
			}
		}
	}
	return id, nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The first character only carries three bits
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
