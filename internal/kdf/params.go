package kdf

import (
	"github.com/fhilgers/scryptcred/internal/constants"
	"github.com/pkg/errors"
)

const maxInt = int(^uint(0) >> 1)

// Params are the scrypt cost parameters plus the derived key length.
type Params struct {
	N      int
	R      int
	P      int
	KeyLen int
}

// Default returns the parameters every admin credential is created with.
func Default() Params {
	return Params{
		N:      constants.ScryptCostParam,
		R:      constants.ScryptBlockSize,
		P:      constants.ScryptParallelism,
		KeyLen: constants.ScryptKeyLen,
	}
}

// Validate returns a *ConfigurationError if p cannot be used for a derivation.
func (p Params) Validate() error {
	switch {
	case p.N <= 1:
		return invalid("N", p.N, "must be greater than 1")
	case p.N&(p.N-1) != 0:
		return invalid("N", p.N, "must be a power of two")
	case uint64(p.N) > 1<<32:
		return invalid("N", p.N, "must not exceed 2^32")
	case p.R <= 0:
		return invalid("r", p.R, "must be positive")
	case p.P <= 0:
		return invalid("p", p.P, "must be positive")
	case p.KeyLen <= 0:
		return invalid("keyLen", p.KeyLen, "must be positive")
	case uint64(p.R)*uint64(p.P) >= 1<<30:
		return invalid("p", p.P, "r*p must be below 2^30")
	case p.R > maxInt/256:
		return invalid("r", p.R, "block size overflows")
	case p.R > maxInt/128/p.P:
		return invalid("p", p.P, "128*r*p overflows")
	case p.N > maxInt/128/p.R:
		return invalid("N", p.N, "128*r*N overflows")
	}

	return nil
}

// Memory returns the number of bytes a single derivation holds at its peak.
// It is only meaningful for parameters that pass Validate.
func (p Params) Memory() uint64 {
	r := uint64(p.R)
	return 128*r*uint64(p.N) + 128*r*uint64(p.P) + 256*r
}

func invalid(param string, value int, reason string) error {
	return errors.WithStack(&ConfigurationError{Param: param, Value: value, Reason: reason})
}
