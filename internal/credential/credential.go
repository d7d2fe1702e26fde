package credential

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fhilgers/scryptcred/internal/constants"
	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/pkg/errors"
)

var encoding = base64.StdEncoding.Strict()

// Credential is a decoded SCRYPT:N:r:p:salt:hash record.
type Credential struct {
	Params kdf.Params
	Salt   []byte
	Key    []byte
}

// EncodingError reports a credential string that cannot be parsed.
type EncodingError struct {
	Field string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("credential: bad %s: %v", e.Field, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Encode formats params, salt and key as SCRYPT:N:r:p:base64(salt):base64(key).
func Encode(params kdf.Params, salt, key []byte) string {
	return strings.Join([]string{
		constants.CredentialPrefix,
		strconv.Itoa(params.N),
		strconv.Itoa(params.R),
		strconv.Itoa(params.P),
		encoding.EncodeToString(salt),
		encoding.EncodeToString(key),
	}, constants.CredentialSeparator)
}

func (c Credential) String() string {
	return Encode(c.Params, c.Salt, c.Key)
}

func Decode(s string) (c Credential, err error) {
	fields := strings.Split(s, constants.CredentialSeparator)
	if len(fields) != constants.CredentialFields {
		err = fail("format", errors.Errorf("expected %d fields, got %d", constants.CredentialFields, len(fields)))
		return
	}

	if fields[0] != constants.CredentialPrefix {
		err = fail("prefix", errors.Errorf("expected %q, got %q", constants.CredentialPrefix, fields[0]))
		return
	}

	numeric := []struct {
		name string
		dst  *int
	}{{"N", &c.Params.N}, {"r", &c.Params.R}, {"p", &c.Params.P}}

	for i, f := range numeric {
		if *f.dst, err = parseInt(fields[1+i]); err != nil {
			err = fail(f.name, err)
			return
		}
	}

	if c.Salt, err = decodeBase64(fields[4]); err != nil {
		err = fail("salt", err)
		return
	}

	if c.Key, err = decodeBase64(fields[5]); err != nil {
		err = fail("hash", err)
		return
	}

	c.Params.KeyLen = len(c.Key)
	if err = c.Params.Validate(); err != nil {
		err = fail("parameters", err)
		return
	}

	return
}

// HashWithSalt derives a key for passphrase and returns its encoded
// credential. The derived key is wiped before returning.
func HashWithSalt(passphrase, salt []byte, params kdf.Params) (string, error) {
	key, err := kdf.Key(passphrase, salt, params)
	if err != nil {
		return "", err
	}
	defer kdf.Wipe(key)

	return Encode(params, salt, key), nil
}

// Hash is HashWithSalt with a fresh random salt of params.KeyLen bytes.
func Hash(passphrase []byte, params kdf.Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	salt := make([]byte, params.KeyLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", errors.Wrap(err, "credential: reading salt")
	}

	return HashWithSalt(passphrase, salt, params)
}

// parseInt accepts only the form strconv.Itoa produces, so that a decoded
// credential encodes back to the same string.
func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if strconv.Itoa(v) != s {
		return 0, errors.Errorf("non-canonical integer %q", s)
	}
	return v, nil
}

// decodeBase64 is encoding.DecodeString without its tolerance for line breaks.
func decodeBase64(s string) ([]byte, error) {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, errors.Errorf("line break at offset %d", i)
	}
	return encoding.DecodeString(s)
}

func fail(field string, err error) error {
	return errors.WithStack(&EncodingError{Field: field, Err: err})
}
