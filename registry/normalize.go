package registry

import (
	"encoding/binary"
	"encoding/hex"
	"unicode/utf8"

	"github.com/plinthlabs/tokenbook/fault"
)

// Normalize unwraps a hex-encoded length-prefixed UTF-8 payload. Inputs
// that do not start with "0x" pass through unchanged, so hex- and
// plain-encoded variants of the same logical string compare equal after
// normalization. The payload is a 32-byte big-endian length word followed
// by that many bytes of UTF-8.
func Normalize(s string) (string, error) {
	if len(s) < 2 || s[0] != '0' || s[1] != 'x' {
		return s, nil
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return "", fault.ErrInvalidEncoding
	}
	if len(raw) < 32 {
		return "", fault.ErrInvalidEncoding
	}
	for _, b := range raw[:24] {
		if b != 0 {
			return "", fault.ErrInvalidEncoding
		}
	}
	n := binary.BigEndian.Uint64(raw[24:32])
	if n > uint64(len(raw)-32) {
		return "", fault.ErrInvalidEncoding
	}
	payload := raw[32 : 32+n]
	if !utf8.Valid(payload) {
		return "", fault.ErrInvalidEncoding
	}
	return string(payload), nil
}

// EncodeHex is the inverse of Normalize for plain strings:
// Normalize(EncodeHex(s)) == s.
func EncodeHex(s string) string {
	buf := make([]byte, 32, 32+len(s))
	binary.BigEndian.PutUint64(buf[24:32], uint64(len(s)))
	buf = append(buf, s...)
	return "0x" + hex.EncodeToString(buf)
}
