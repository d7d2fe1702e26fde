package mix

import "github.com/fhilgers/scryptcred/internal/constants"

// ROMix runs scrypt's sequential memory-hard mix over b with cost factor n
// and returns the mixed block. All n intermediate blocks are kept in memory
// at once, so a call needs 128*r*n bytes; callers are expected to have
// validated n and r beforehand.
func ROMix(b []uint32, n, r int) []uint32 {
	checkBlock(b, r)
	if n <= 1 {
		panic("mix: ROMix needs n > 1")
	}

	words := constants.BlockWordsPerFactor * r

	v := make([]uint32, n*words)
	copy(v, b)
	for i := 1; i < n; i++ {
		blockMix(v[(i-1)*words:i*words], v[i*words:(i+1)*words], r)
	}

	x := make([]uint32, words)
	y := make([]uint32, words)
	blockMix(v[(n-1)*words:], x, r)

	for i := 0; i < n; i++ {
		j := int(uint64(x[words-chunk]) % uint64(n))

		vj := v[j*words : (j+1)*words]
		for k := range y {
			y[k] = x[k] ^ vj[k]
		}
		blockMix(y, x, r)
	}

	return x
}
