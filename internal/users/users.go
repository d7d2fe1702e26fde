package users

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhilgers/scryptcred/internal/constants"
	"github.com/fhilgers/scryptcred/internal/credential"
	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var (
	ErrNoUsername   = errors.New("users: username must not be empty")
	ErrNoPassphrase = errors.New("users: passphrase must not be empty")
)

// AdminUser is the record written to users.json. Password holds the encoded
// scrypt credential, never the passphrase.
type AdminUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func New(username string, passphrase []byte, params kdf.Params) (u AdminUser, err error) {
	if username == "" {
		err = ErrNoUsername
		return
	}
	if len(passphrase) == 0 {
		err = ErrNoPassphrase
		return
	}

	u.Username = username
	u.Password, err = credential.Hash(passphrase, params)

	return
}

func (u AdminUser) Credential() (credential.Credential, error) {
	return credential.Decode(u.Password)
}

func (u AdminUser) Marshal(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", constants.UsersConfIndent)
	enc.SetEscapeHTML(false)

	return errors.WithStack(enc.Encode(u))
}

func Unmarshal(r io.Reader) (u AdminUser, err error) {
	if err = json.NewDecoder(r).Decode(&u); err != nil {
		err = errors.Wrap(err, "users: decoding")
		return
	}

	if u.Username == "" {
		err = ErrNoUsername
		return
	}

	_, err = u.Credential()

	return
}

// Path joins name onto root, treating an absolute name as relative to root.
func Path(root, name string) string {
	return filepath.Join(root, strings.TrimLeft(name, "/"))
}

// WriteFile writes u to name below root, creating missing directories.
func WriteFile(fs afero.Fs, root, name string, u AdminUser) (err error) {
	path := Path(root, name)

	if err = fs.MkdirAll(filepath.Dir(path), constants.UsersDirMode); err != nil {
		return errors.Wrapf(err, "users: creating directory for %s", path)
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.UsersFileMode)
	if err != nil {
		return errors.Wrapf(err, "users: opening %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "users: closing %s", path)
		}
	}()

	return u.Marshal(f)
}

func ReadFile(fs afero.Fs, path string) (AdminUser, error) {
	f, err := fs.Open(path)
	if err != nil {
		return AdminUser{}, errors.Wrapf(err, "users: opening %s", path)
	}
	defer f.Close()

	return Unmarshal(f)
}
