// cmd/build_vocab_db/main.go
//
// 埋め込みの単語データ (a.json .. z.json) を SQLite の vocab.db に書き出します。
// 出力した build/vocab.db は copy_database でアプリの assets に同梱されます。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go_4_vocab_learn/internal/config"
	"go_4_vocab_learn/internal/middleware"
	"go_4_vocab_learn/internal/model"
	"go_4_vocab_learn/internal/repository"
	"go_4_vocab_learn/internal/vocab"
)

func main() {
	out := flag.String("out", config.VocabDatabaseBuildPath, "output sqlite file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := run(context.Background(), *out, vocab.Default(), logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out string, store *vocab.Store, logger *slog.Logger, stdout io.Writer) error {
	ctx = middleware.WithLogger(ctx, logger)

	entries, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	db, err := repository.NewDB(out, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := repository.MigrateVocab(db); err != nil {
		return fmt.Errorf("migrate vocab table: %w", err)
	}

	repo := repository.NewGormVocabRepository(db)
	written, err := repo.ReplaceAll(ctx, entries)
	if err != nil {
		return err
	}

	stats, err := verify(ctx, repo, store)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %d entries (%d partitions) to %s\n", written, len(stats.Partitions), out)
	return nil
}

// verify は書き込んだ件数を全体とパーティションごとに突き合わせます
func verify(ctx context.Context, repo repository.VocabRepository, store *vocab.Store) (model.VocabStatsResponse, error) {
	stats, err := store.Stats()
	if err != nil {
		return stats, err
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return stats, err
	}
	if total != int64(stats.Total) {
		return stats, fmt.Errorf("wrote %d rows in total, expected %d", total, stats.Total)
	}

	for _, r := range vocab.Letters {
		letter := string(r)
		got, err := repo.FindByLetter(ctx, letter)
		if err != nil {
			return stats, err
		}
		want, err := store.LoadByLetter(letter)
		if err != nil {
			return stats, err
		}
		if len(got) != len(want) {
			return stats, fmt.Errorf("letter %s: wrote %d rows, expected %d", letter, len(got), len(want))
		}
	}
	return stats, nil
}
