package users_test

import (
	"bytes"
	"testing"

	"github.com/fhilgers/scryptcred/internal/credential"
	"github.com/fhilgers/scryptcred/internal/kdf"
	"github.com/fhilgers/scryptcred/internal/testutils"
	"github.com/fhilgers/scryptcred/internal/users"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testParams = kdf.Params{N: 16, R: 1, P: 1, KeyLen: 64}

func TestNew(t *testing.T) {
	u, err := users.New("admin", []byte("twelve-chars"), testParams)
	require.NoError(t, err)

	assert.Equal(t, "admin", u.Username)
	assert.NotContains(t, u.Password, "twelve-chars")

	c, err := u.Credential()
	require.NoError(t, err)
	assert.Equal(t, testParams, c.Params)
	assert.Len(t, c.Salt, testParams.KeyLen)

	rehashed, err := credential.HashWithSalt([]byte("twelve-chars"), c.Salt, c.Params)
	require.NoError(t, err)
	assert.Equal(t, u.Password, rehashed)
}

func TestNewMissing(t *testing.T) {
	_, err := users.New("", []byte("pw"), testParams)
	assert.ErrorIs(t, err, users.ErrNoUsername)

	_, err = users.New("admin", nil, testParams)
	assert.ErrorIs(t, err, users.ErrNoPassphrase)
}

func TestMarshalLayout(t *testing.T) {
	u := users.AdminUser{
		Username: "admin&ops",
		Password: "SCRYPT:16:1:1:AAAA:+/8=",
	}

	buf := &bytes.Buffer{}
	require.NoError(t, u.Marshal(buf))

	assert.Equal(t, "{\n\t\"username\": \"admin&ops\",\n\t\"password\": \"SCRYPT:16:1:1:AAAA:+/8=\"\n}\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		username := rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9_.-]{0,31}`).Draw(t, "username")
		params := testutils.SmallParams().Draw(t, "params")
		salt := testutils.FixedSizeByteArray(params.KeyLen).Draw(t, "salt")
		key := testutils.FixedSizeByteArray(params.KeyLen).Draw(t, "key")

		u1 := users.AdminUser{Username: username, Password: credential.Encode(params, salt, key)}

		buf := &bytes.Buffer{}
		err := u1.Marshal(buf)
		assert.NoError(t, err)

		u2, err := users.Unmarshal(buf)
		assert.NoError(t, err)

		assert.Equal(t, u1, u2)
	})
}

func TestUnmarshalRejects(t *testing.T) {
	for name, input := range map[string]string{
		"not json":       "username=admin",
		"no username":    `{"password": "SCRYPT:16:1:1:AAAA:AAAA"}`,
		"plain password": `{"username": "admin", "password": "twelve-chars"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := users.Unmarshal(bytes.NewBufferString(input))
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/tmp/install/opt/traffic_ops/install/data/json/users.json",
		users.Path("/tmp/install", "/opt/traffic_ops/install/data/json/users.json"))
	assert.Equal(t, "/opt/users.json", users.Path("/", "/opt/users.json"))
	assert.Equal(t, "root/users.json", users.Path("root", "users.json"))
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	u, err := users.New("admin", []byte("twelve-chars"), testParams)
	require.NoError(t, err)

	err = users.WriteFile(fs, "/install", "/opt/traffic_ops/install/data/json/users.json", u)
	require.NoError(t, err)

	path := "/install/opt/traffic_ops/install/data/json/users.json"

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	contents, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	want := &bytes.Buffer{}
	require.NoError(t, u.Marshal(want))
	assert.Equal(t, want.String(), string(contents))

	read, err := users.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, u, read)

	// overwriting replaces the record wholesale
	u2, err := users.New("admin", []byte("another-pass"), testParams)
	require.NoError(t, err)
	require.NoError(t, users.WriteFile(fs, "/install", "/opt/traffic_ops/install/data/json/users.json", u2))

	read, err = users.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, u2, read)
}

func TestReadFileMissing(t *testing.T) {
	_, err := users.ReadFile(afero.NewMemMapFs(), "/nope.json")
	assert.Error(t, err)
}
