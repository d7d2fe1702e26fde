package salsa_test

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/fhilgers/scryptcred/internal/salsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func words(t *testing.T, s string) (w [16]uint32) {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, b, 64)

	for i := range w {
		w[i] = binary.LittleEndian.Uint32(b[i*4:])
	}

	return
}

// RFC 7914, section 8.
func TestCore8Reference(t *testing.T) {
	in := words(t, "7e879a214f3ec9867ca940e641718f26"+
		"baee555b8c61c1b50df846116dcd3b1d"+
		"ee24f319df9b3d8514121e4b5ac5aa32"+
		"76021d2909c74829edebc68db8b8c25e")
	want := words(t, "a41f859c6608cc993b81cacb020cef05"+
		"044b2181a2fd337dfd7b1c6396682f29"+
		"b4393168e3c9e6bcfe6bc5b7a06d96ba"+
		"e424cc102c91745c24ad673dc7618f81")

	assert.Equal(t, want, salsa.Core8(&in))
}

func TestCore8Zero(t *testing.T) {
	var in [16]uint32

	assert.Equal(t, in, salsa.Core8(&in))
}

func TestCore8Pure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var in [16]uint32
		for i := range in {
			in[i] = rapid.Uint32().Draw(t, "word")
		}
		saved := in

		out1 := salsa.Core8(&in)
		out2 := salsa.Core8(&in)

		assert.Equal(t, saved, in, "input was modified")
		assert.Equal(t, out1, out2)
	})
}

func BenchmarkCore8(b *testing.B) {
	var in [16]uint32
	for i := 0; i < b.N; i++ {
		in = salsa.Core8(&in)
	}
}
