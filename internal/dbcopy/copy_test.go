package dbcopy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy_CreatesDirectoryAndCopiesBytes(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "build", "vocab.db")
	dst := filepath.Join(root, "assets", "database", "vocab.db")

	data := []byte("SQLite format 3\x00\x01\x02\xff binary payload")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, data, 0o644))

	n, err := Copy(src, dst)
	require.NoError(t, err)
	assert.EqualValues(t, len(data), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// 一時ファイルが残っていない
	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopy_OverwritesExistingDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "vocab.db")
	dst := filepath.Join(root, "out", "vocab.db")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, []byte("old contents"), 0o644))

	_, err := Copy(src, dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCopy_MissingSource(t *testing.T) {
	tests := []struct {
		name        string
		existingDst []byte
	}{
		{name: "コピー先なし", existingDst: nil},
		{name: "コピー先は変更されない", existingDst: []byte("keep me")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			src := filepath.Join(root, "build", "vocab.db")
			dstDir := filepath.Join(root, "assets", "database")
			dst := filepath.Join(dstDir, "vocab.db")
			if tt.existingDst != nil {
				require.NoError(t, os.MkdirAll(dstDir, 0o755))
				require.NoError(t, os.WriteFile(dst, tt.existingDst, 0o644))
			}

			_, err := Copy(src, dst)
			assert.ErrorIs(t, err, ErrSourceMissing)

			if tt.existingDst == nil {
				_, statErr := os.Stat(dstDir)
				assert.True(t, os.IsNotExist(statErr), "destination directory must not be created")
				return
			}
			got, err := os.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, tt.existingDst, got)
		})
	}
}

func TestCopy_SourceIsDirectory(t *testing.T) {
	root := t.TempDir()
	_, err := Copy(root, filepath.Join(root, "out", "vocab.db"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceMissing)
}
