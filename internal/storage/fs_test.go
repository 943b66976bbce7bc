package storage

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutGet(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	key, err := s.Put(AllExamsPercentagesKey, strings.NewReader(`[{"exam":"MI"}]`))
	require.NoError(t, err)
	assert.Equal(t, AllExamsPercentagesKey, key)

	rc, err := s.Get(AllExamsPercentagesKey)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"exam":"MI"}]`, string(b))
}

func TestFSStore_MissingIsNotExist(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("nope.json")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFSStore_KeysStayInsideBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewFSStore(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "etc", "passwd"), s.path("../../etc/passwd"))

	_, err = s.Put("", strings.NewReader("x"))
	assert.Error(t, err)
}
