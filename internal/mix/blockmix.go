// Package mix holds scrypt's BlockMix and ROMix over blocks of 32*r
// little-endian words.
package mix

import (
	"fmt"

	"github.com/fhilgers/scryptcred/internal/constants"
	"github.com/fhilgers/scryptcred/internal/salsa"
)

const chunk = constants.SalsaWords

// BlockMix returns a new block holding BlockMix_{Salsa20/8, r}(b).
// b must hold exactly 2r 16-word chunks.
func BlockMix(b []uint32, r int) []uint32 {
	checkBlock(b, r)

	out := make([]uint32, len(b))
	blockMix(b, out, r)

	return out
}

// blockMix writes the mix of in into out. The two must not overlap.
func blockMix(in, out []uint32, r int) {
	var x [chunk]uint32

	copy(x[:], in[(2*r-1)*chunk:])

	for i := 0; i < 2*r; i++ {
		for k, v := range in[i*chunk : (i+1)*chunk] {
			x[k] ^= v
		}
		x = salsa.Core8(&x)

		// even outputs fill the first half, odd outputs the second
		off := chunk * (i / 2)
		if i%2 == 1 {
			off = chunk * (r + i/2)
		}
		copy(out[off:off+chunk], x[:])
	}
}

func checkBlock(b []uint32, r int) {
	if r <= 0 || len(b) != constants.BlockWordsPerFactor*r {
		panic(fmt.Sprintf("mix: block of %d words does not match r=%d", len(b), r))
	}
}
