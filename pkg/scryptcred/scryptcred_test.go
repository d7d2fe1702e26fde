package scryptcred_test

import (
	"encoding/hex"
	"testing"

	"github.com/fhilgers/scryptcred/pkg/scryptcred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	dk, err := scryptcred.Derive(nil, nil, scryptcred.Params{N: 16, R: 1, P: 1, KeyLen: 64})
	require.NoError(t, err)

	assert.Equal(t, "77d6576238657b203b19ca42c18a0497f16b4844e3074ae8dfdffa3fede21442"+
		"fcd0069ded0948f8326a753a0fc81f17e8d3e0fb2e0d3628cf35e20c38d18906", hex.EncodeToString(dk))
}

func TestHashPassword(t *testing.T) {
	s, err := scryptcred.HashPassword([]byte("twelve-chars"))
	require.NoError(t, err)

	c, err := scryptcred.Decode(s)
	require.NoError(t, err)

	assert.Equal(t, scryptcred.DefaultParams(), c.Params)
	assert.Len(t, c.Salt, 64)
	assert.Len(t, c.Key, 64)

	key, err := scryptcred.Derive([]byte("twelve-chars"), c.Salt, c.Params)
	require.NoError(t, err)
	assert.Equal(t, c.Key, key)
	assert.Equal(t, s, scryptcred.Encode(c.Params, c.Salt, key))
}

func TestHasher(t *testing.T) {
	h := scryptcred.Hasher{Params: scryptcred.Params{N: 1000, R: 8, P: 1, KeyLen: 64}}

	_, err := h.Hash([]byte("pw"))

	var cfgErr *scryptcred.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
