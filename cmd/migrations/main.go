package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/tamaire/internal/config"
)

func main() {
	fs := pflag.NewFlagSet("migrations", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrations [flags] <migration name>")
		fmt.Fprintln(os.Stderr, "  e.g. migrations --store postgres create_kv_store.up")
		fs.PrintDefaults()
	}
	cfg := config.Bind(fs)
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fs.Usage()
		log.Fatal("a migration name is required.")
	}
	migrationName := fs.Arg(0)

	if err := cfg.Resolve(); err != nil {
		log.Fatal(err)
	}
	if cfg.StoreDriver != config.StoreSQLite && cfg.StoreDriver != config.StorePostgres {
		log.Fatalf("migrations only apply to sql stores, got %q", cfg.StoreDriver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg.StoreDriver, cfg.StoreDSN, cfg.Logger(os.Stderr))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	file, err := sqldb.ApplyMigration(ctx, db, migrationName)
	if err != nil {
		log.Fatalf("Failed to execute migration: %v", err)
	}

	fmt.Printf("Migration file %s executed successfully.\n", file)
}
