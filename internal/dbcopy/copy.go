// internal/dbcopy/copy.go
package dbcopy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSourceMissing はコピー元のファイルが存在しないことを表します
var ErrSourceMissing = errors.New("source database file does not exist")

// Copy は src を dst にバイト単位でコピーし、書き込んだバイト数を返します。
// dst のディレクトリがなければ作成します。
// 一時ファイルに書いてから rename するので、失敗しても dst が中途半端な状態で残ることはありません。
func Copy(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("dbcopy.Copy: %s: %w", src, ErrSourceMissing)
		}
		return 0, fmt.Errorf("dbcopy.Copy: stat %s: %w", src, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("dbcopy.Copy: %s is a directory", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: open %s: %w", src, err)
	}
	defer in.Close()

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, in)
	if err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return 0, fmt.Errorf("dbcopy.Copy: rename to %s: %w", dst, err)
	}
	committed = true
	return n, nil
}
