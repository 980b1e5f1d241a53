package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir, err := ioutil.TempDir("", "file-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "config")
	require.False(t, Exists(file))
	err = ioutil.WriteFile(file, []byte("{}"), 0600)
	require.NoError(t, err)
	require.True(t, Exists(file))
}
