package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plinthlabs/tokenbook/fault"
	"github.com/plinthlabs/tokenbook/registry"
)

func TestNormalizePassthrough(t *testing.T) {
	for _, s := range []string{"", "x", "punks", "0", "Oxdead", "with spaces"} {
		out, err := registry.Normalize(s)
		require.NoError(t, err)
		assert.Equal(t, s, out)
	}
}

func TestNormalizeRoundtrip(t *testing.T) {
	for _, s := range []string{"", "a", "punks", "collection/çüé", "日本語", "0x nested"} {
		out, err := registry.Normalize(registry.EncodeHex(s))
		require.NoError(t, err)
		assert.Equal(t, s, out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	out, err := registry.Normalize("punks")
	require.NoError(t, err)
	again, err := registry.Normalize(out)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestNormalizeMalformed(t *testing.T) {
	bad := []string{
		"0xzz",     // not hex
		"0xabc",    // odd length
		"0x00",     // shorter than the length word
		"0x" + "00000000000000000000000000000000000000000000000000000000000000ff", // length exceeds payload
		"0x" + "ff00000000000000000000000000000000000000000000000000000000000000", // nonzero high bytes
	}
	for _, s := range bad {
		_, err := registry.Normalize(s)
		assert.Equal(t, fault.ErrInvalidEncoding, err, "input %q", s)
	}

	// a correctly framed payload that is not valid UTF-8
	_, err := registry.Normalize("0x" + "0000000000000000000000000000000000000000000000000000000000000002" + "fffe")
	assert.Equal(t, fault.ErrInvalidEncoding, err)
}

func TestParseCID(t *testing.T) {
	cid, err := registry.ParseCID("0xabc123")
	require.NoError(t, err)
	assert.Equal(t, byte(0xab), cid[0])
	assert.Equal(t, byte(0xc1), cid[1])
	assert.Equal(t, byte(0x23), cid[2])
	assert.Equal(t, byte(0), cid[3])

	_, err = registry.ParseCID("0xzz")
	assert.Equal(t, fault.ErrInvalidEncoding, err)

	long := make([]byte, 66)
	for i := range long {
		long[i] = 'a'
	}
	_, err = registry.ParseCID(string(long))
	assert.Equal(t, fault.ErrInvalidEncoding, err)
}
