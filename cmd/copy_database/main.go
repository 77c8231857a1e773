// cmd/copy_database/main.go
//
// build/vocab.db をアプリに同梱する assets/database/vocab.db へコピーするビルド用コマンドです。
// 引数は取りません。
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/dbcopy"
)

func main() {
	os.Exit(run(config.VocabDatabaseBuildPath, config.VocabDatabaseAssetPath, os.Stdout, os.Stderr))
}

func run(src, dst string, stdout, stderr io.Writer) int {
	n, err := dbcopy.Copy(src, dst)
	if err != nil {
		if errors.Is(err, dbcopy.ErrSourceMissing) {
			fmt.Fprintf(stderr, "Error: database file not found at %s. Run the vocabulary DB build first.\n", src)
			return 1
		}
		fmt.Fprintf(stderr, "Error: failed to copy database: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Copied database (%d bytes)\n  from: %s\n  to:   %s\n", n, src, dst)
	return 0
}
