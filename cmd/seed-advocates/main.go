package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/perbu/advomatch/internal/config"
	"github.com/perbu/advomatch/pkg/advocate"
	"github.com/perbu/advomatch/pkg/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.Source.DatabasePath, "SQLite database to seed (default $DATABASE_PATH)")
	file := flag.String("file", "", "JSON file with advocates to seed instead of the built-in dataset")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: no database given, set DATABASE_PATH or pass -db\n")
		os.Exit(1)
	}

	advocates := advocate.Fallback()
	if *file != "" {
		dir, name := filepath.Split(*file)
		if dir == "" {
			dir = "."
		}
		advocates, err = source.LoadJSON(os.DirFS(dir), name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading advocates: %v\n", err)
			os.Exit(1)
		}
	}

	path, err := seed(context.Background(), *dbPath, advocates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding database: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d advocates into %s\n", len(advocates), path)
}

// seed replaces the contents of the store at dbPath with advocates. The
// store is closed before seed returns, on success and on failure.
func seed(ctx context.Context, dbPath string, advocates []advocate.Advocate) (path string, err error) {
	store, err := source.OpenSQLite(dbPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()

	if err := store.ReplaceAll(ctx, advocates); err != nil {
		return "", err
	}
	return store.Path(), nil
}
