package config

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/fhilgers/scryptcred/internal/constants"
	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/pkg/errors"
)

// Bounds on the parameters an operator may configure. Lower values make a
// credential cheap to brute force, higher ones turn logins into a DoS vector.
var (
	MinParams = kdf.Params{
		N:      constants.ScryptMinCostParam,
		R:      constants.ScryptMinBlockSize,
		P:      constants.ScryptMinParallel,
		KeyLen: constants.ScryptMinKeyLen,
	}
	MaxParams = kdf.Params{
		N:      constants.ScryptMaxCostParam,
		R:      constants.ScryptMaxBlockSize,
		P:      constants.ScryptMaxParallel,
		KeyLen: constants.ScryptMaxKeyLen,
	}
)

type Config struct {
	N           int    `json:"n"`
	R           int    `json:"r"`
	P           int    `json:"p"`
	KeyLen      int    `json:"keyLen"`
	MaxMemory   uint64 `json:"maxMemory"`
	Concurrency int    `json:"concurrency"`
}

func New() Config {
	p := kdf.Default()

	return Config{
		N:           p.N,
		R:           p.R,
		P:           p.P,
		KeyLen:      p.KeyLen,
		MaxMemory:   constants.ScryptMaxMemory,
		Concurrency: runtime.GOMAXPROCS(0),
	}
}

func (c Config) Params() kdf.Params {
	return kdf.Params{N: c.N, R: c.R, P: c.P, KeyLen: c.KeyLen}
}

func (c *Config) Valid() error {
	p := c.Params()
	if err := p.Validate(); err != nil {
		return err
	}

	for _, b := range []struct {
		name          string
		val, min, max int
	}{
		{"N", p.N, MinParams.N, MaxParams.N},
		{"r", p.R, MinParams.R, MaxParams.R},
		{"p", p.P, MinParams.P, MaxParams.P},
		{"keyLen", p.KeyLen, MinParams.KeyLen, MaxParams.KeyLen},
	} {
		if b.val < b.min || b.val > b.max {
			return fmt.Errorf("unsupported %s: %d, wanted: %d..%d", b.name, b.val, b.min, b.max)
		}
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("unsupported concurrency: %d, wanted: at least 1", c.Concurrency)
	}

	if need := p.Memory(); need > c.MaxMemory {
		return errors.WithStack(&kdf.ResourceExhaustionError{Required: need, Limit: c.MaxMemory})
	}

	return nil
}

func (c Config) Marshal(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", constants.UsersConfIndent)

	return errors.WithStack(enc.Encode(c))
}

// Unmarshal reads a JSON config on top of the defaults from New. Keys that are
// absent keep their default value.
func Unmarshal(r io.Reader) (c Config, err error) {
	c = New()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err = dec.Decode(&c); err != nil {
		err = errors.Wrap(err, "config: decoding")
		return
	}

	err = c.Valid()

	return
}
