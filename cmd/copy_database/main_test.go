package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("コピー元がない場合は1で終了", func(t *testing.T) {
		root := t.TempDir()
		dst := filepath.Join(root, "assets", "database", "vocab.db")
		var stdout, stderr bytes.Buffer

		code := run(filepath.Join(root, "build", "vocab.db"), dst, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "not found")
		assert.Empty(t, stdout.String())
		_, err := os.Stat(dst)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("コピーに成功すると0で終了", func(t *testing.T) {
		root := t.TempDir()
		src := filepath.Join(root, "build", "vocab.db")
		dst := filepath.Join(root, "assets", "database", "vocab.db")
		require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
		require.NoError(t, os.WriteFile(src, []byte("db bytes"), 0o644))
		var stdout, stderr bytes.Buffer

		code := run(src, dst, &stdout, &stderr)
		assert.Equal(t, 0, code)
		assert.Contains(t, stdout.String(), src)
		assert.Contains(t, stdout.String(), dst)
		assert.Empty(t, stderr.String())

		got, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "db bytes", string(got))
	})
}
