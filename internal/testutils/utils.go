package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WithTestdata runs test_func once per entry of every testdata/<prefix>*.input
// file, pairing it with the entry of the same name in the matching .golden file.
func WithTestdata[INPUT, GOLDEN any](
	t *testing.T,
	prefix string,
	test_func func(t *testing.T, input INPUT, golden GOLDEN),
) {
	paths, err := filepath.Glob(filepath.Join("testdata", prefix+"*.input"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no testdata for %q", prefix)

	for _, path := range paths {
		filename := filepath.Base(path)
		testname := strings.TrimSuffix(filename, filepath.Ext(filename))

		inputContents, err := os.ReadFile(path)
		require.NoError(t, err)

		goldenContents, err := os.ReadFile(filepath.Join("testdata", testname+".golden"))
		require.NoError(t, err)

		var input map[string]INPUT
		err = json.Unmarshal(inputContents, &input)
		require.NoError(t, err)

		var golden map[string]GOLDEN
		err = json.Unmarshal(goldenContents, &golden)
		require.NoError(t, err)

		for name, inputVal := range input {
			goldenVal, ok := golden[name]
			require.True(t, ok, "%s: no golden value for %q", testname, name)

			t.Run(testname+":"+name, func(t *testing.T) {
				test_func(t, inputVal, goldenVal)
			})
		}
	}
}
