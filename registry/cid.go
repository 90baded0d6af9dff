package registry

import (
	"encoding/hex"

	"github.com/plinthlabs/tokenbook/fault"
)

// CID is the opaque 32-byte content identifier attached to a token at
// mint time.
type CID [32]byte

func (c CID) String() string {
	return "0x" + hex.EncodeToString(c[:])
}

// ParseCID decodes an optionally 0x-prefixed hex string of at most 32
// bytes, left-aligned into the identifier.
func ParseCID(s string) (CID, error) {
	var c CID
	if len(s) >= 2 && s[0] == '0' && s[1] == 'x' {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) > 32 {
		return c, fault.ErrInvalidEncoding
	}
	copy(c[:], raw)
	return c, nil
}
