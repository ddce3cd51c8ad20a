package uuid

import (
	"math/big"
	"strings"

	"github.com/gofrs/uuid"
)

// serviceIDLen is the width of a base36 encoded 128 bit value.
const serviceIDLen = 25

// New returns a V4 UUID.
func New() string {
	return newV4().String()
}

// NewHex returns a V4 UUID without dashes.
func NewHex() string {
	return strings.ReplaceAll(New(), "-", "")
}

// NewServiceID returns a V4 UUID encoded as a fixed width, lower case base36
// string, the identifier format used for service records.
func NewServiceID() string {
	id := newV4()
	encoded := new(big.Int).SetBytes(id.Bytes()).Text(36)
	return strings.Repeat("0", serviceIDLen-len(encoded)) + encoded
}

// Valid returns true if id is parsed as UUID without error.
func Valid(id string) bool {
	_, err := uuid.FromString(id)
	return err == nil
}

// ValidServiceID returns true if id looks like an identifier produced by
// NewServiceID.
func ValidServiceID(id string) bool {
	if len(id) != serviceIDLen {
		return false
	}
	_, ok := new(big.Int).SetString(id, 36)
	return ok && strings.ToLower(id) == id
}

func newV4() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		// Identifier generation only fails when the system entropy source
		// is broken, there is nothing sensible a migration can do then.
		panic("Error generating UUID " + err.Error())
	}
	return id
}
