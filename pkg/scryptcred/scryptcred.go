// Package scryptcred hashes administrator passphrases into the
// SCRYPT:N:r:p:salt:hash credential strings stored by the installer.
//
//	s, err := scryptcred.HashPassword([]byte(passphrase))
//
// The scrypt core (Salsa20/8, BlockMix, ROMix) is implemented in this module;
// PBKDF2-HMAC-SHA256 comes from golang.org/x/crypto. Verifying a login against
// a stored credential is left to the credential store.
package scryptcred

import (
	"github.com/fhilgers/scryptcred/internal/credential"
	"github.com/fhilgers/scryptcred/internal/kdf"
)

type (
	Params                  = kdf.Params
	Credential              = credential.Credential
	ConfigurationError      = kdf.ConfigurationError
	ResourceExhaustionError = kdf.ResourceExhaustionError
	EncodingError           = credential.EncodingError
)

// DefaultParams returns N=16384, r=8, p=1 and a 64 byte key.
func DefaultParams() Params {
	return kdf.Default()
}

type Hasher struct {
	Params Params
}

func New() Hasher {
	return Hasher{Params: DefaultParams()}
}

// Hash encodes a credential for passphrase using a fresh random salt.
func (h Hasher) Hash(passphrase []byte) (string, error) {
	return credential.Hash(passphrase, h.Params)
}

// HashPassword is New().Hash(passphrase).
func HashPassword(passphrase []byte) (string, error) {
	return New().Hash(passphrase)
}

// Derive returns the raw scrypt key for passphrase and salt.
func Derive(passphrase, salt []byte, params Params) ([]byte, error) {
	return kdf.Key(passphrase, salt, params)
}

func Encode(params Params, salt, key []byte) string {
	return credential.Encode(params, salt, key)
}

func Decode(s string) (Credential, error) {
	return credential.Decode(s)
}
