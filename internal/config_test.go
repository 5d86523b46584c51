package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskRune(t *testing.T) {
	req := require.New(t)

	r, err := MaskRune("*")
	req.NoError(err)
	req.Equal('*', r)

	_, err = MaskRune("")
	req.Error(err)

	_, err = MaskRune("**")
	req.Error(err)
}

func TestLoadBlocklist(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	req.NoError(os.WriteFile(path, []byte("# comment\nidiot\n\n  stupid bot  \n"), 0o644))

	terms, err := LoadBlocklist(path)
	req.NoError(err)
	req.Equal([]string{"idiot", "stupid bot"}, terms)
}

func TestLoadBlocklist_EmptyPath(t *testing.T) {
	req := require.New(t)

	terms, err := LoadBlocklist("")
	req.NoError(err)
	req.Empty(terms)
}

func TestLoadBlocklist_MissingFile(t *testing.T) {
	req := require.New(t)

	_, err := LoadBlocklist(filepath.Join(t.TempDir(), "missing.txt"))
	req.Error(err)
}
