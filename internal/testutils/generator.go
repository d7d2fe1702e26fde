package testutils

import (
	"github.com/fhilgers/scryptcred/internal/kdf"
	"pgregory.net/rapid"
)

func FixedSizeByteArray(constant int) *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.Byte(), constant, constant)
}

// Block draws a 32*r word block.
func Block(r int) *rapid.Generator[[]uint32] {
	return rapid.SliceOfN(rapid.Uint32(), 32*r, 32*r)
}

// SmallParams draws valid scrypt parameters that stay cheap enough for
// property tests.
func SmallParams() *rapid.Generator[kdf.Params] {
	return rapid.Custom(func(t *rapid.T) kdf.Params {
		return kdf.Params{
			N:      1 << rapid.IntRange(1, 6).Draw(t, "log2(N)"),
			R:      rapid.IntRange(1, 4).Draw(t, "r"),
			P:      rapid.IntRange(1, 3).Draw(t, "p"),
			KeyLen: rapid.IntRange(1, 128).Draw(t, "keyLen"),
		}
	})
}
