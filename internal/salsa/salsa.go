// Package salsa implements the Salsa20/8 core used by scrypt's BlockMix.
package salsa

import "math/bits"

// Core8 applies four double rounds of the Salsa20 permutation to in and adds
// the result back onto the input words. in is left untouched.
func Core8(in *[16]uint32) [16]uint32 {
	x := *in

	for i := 0; i < 8; i += 2 {
		// columns
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 5, 9, 13, 1)
		quarterRound(&x, 10, 14, 2, 6)
		quarterRound(&x, 15, 3, 7, 11)

		// rows
		quarterRound(&x, 0, 1, 2, 3)
		quarterRound(&x, 5, 6, 7, 4)
		quarterRound(&x, 10, 11, 8, 9)
		quarterRound(&x, 15, 12, 13, 14)
	}

	for i := range x {
		x[i] += in[i]
	}

	return x
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[b] ^= bits.RotateLeft32(x[a]+x[d], 7)
	x[c] ^= bits.RotateLeft32(x[b]+x[a], 9)
	x[d] ^= bits.RotateLeft32(x[c]+x[b], 13)
	x[a] ^= bits.RotateLeft32(x[d]+x[c], 18)
}
