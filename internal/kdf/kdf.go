// Package kdf derives scrypt keys (RFC 7914) on top of the hand-written
// Salsa20/8, BlockMix and ROMix in package mix. PBKDF2-HMAC-SHA256 comes from
// golang.org/x/crypto.
package kdf

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/fhilgers/scryptcred/internal/mix"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

// Unlimited disables the memory budget of KeyWithLimit.
const Unlimited uint64 = math.MaxUint64

// Key derives a p.KeyLen byte key from passphrase and salt. It allocates
// p.Memory() bytes whatever their size; use KeyWithLimit to cap that.
func Key(passphrase, salt []byte, p Params) ([]byte, error) {
	return KeyWithLimit(passphrase, salt, p, Unlimited)
}

// KeyWithLimit is Key with an explicit memory budget in bytes. Parameters
// whose working set exceeds maxMem are refused with a
// *ResourceExhaustionError before anything is allocated.
func KeyWithLimit(passphrase, salt []byte, p Params, maxMem uint64) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if need := p.Memory(); need > maxMem {
		return nil, errors.WithStack(&ResourceExhaustionError{Required: need, Limit: maxMem})
	}

	blockLen := 128 * p.R

	b := pbkdf2.Key(passphrase, salt, 1, p.P*blockLen, sha256.New)
	defer Wipe(b)

	words := make([]uint32, blockLen/4)
	for i := 0; i < p.P; i++ {
		chunk := b[i*blockLen : (i+1)*blockLen]

		for k := range words {
			words[k] = binary.LittleEndian.Uint32(chunk[k*4:])
		}

		mixed := mix.ROMix(words, p.N, p.R)

		for k, w := range mixed {
			binary.LittleEndian.PutUint32(chunk[k*4:], w)
		}
	}

	return pbkdf2.Key(passphrase, b, 1, p.KeyLen, sha256.New), nil
}

// Wipe zeroes b.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
