package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stockroom/backend/internal/infrastructure/logger"
	"github.com/stockroom/backend/internal/infrastructure/migration"
)

const usage = `Usage: migrate [flags] <command> [args]

Commands:
  up                Apply all pending migrations
  down              Roll back the last migration
  step <n>          Apply n migrations (negative rolls back)
  version           Print the current migration version
  force <version>   Force the version without running migrations
  create <name>     Create a new empty migration pair
  list              List migration files

Flags:
  -path string      Migrations directory (default "migrations")
  -log-level string Log level (default "info")
`

func main() {
	var (
		path     = flag.String("path", "migrations", "migrations directory")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(config.LogConfig{Level: *logLevel, Format: "console", Output: "stderr"})
	defer log.Sync() //nolint:errcheck

	command := args[0]

	// create and list work on the filesystem only, no database needed.
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("create requires a migration name")
		}
		mf, err := migration.CreateMigration(*path, args[1])
		if err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		fmt.Println(mf.UpPath)
		fmt.Println(mf.DownPath)
		return
	case "list":
		files, err := migration.ListMigrations(*path)
		if err != nil {
			log.Fatal("failed to list migrations", zap.Error(err))
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close() //nolint:errcheck

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal("rollback failed", zap.Error(err))
		}
	case "step":
		if len(args) < 2 {
			log.Fatal("step requires a count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid step count", zap.String("arg", args[1]))
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("step failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("invalid version", zap.String("arg", args[1]))
		}
		if err := migrator.Force(v); err != nil {
			log.Fatal("force failed", zap.Error(err))
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}
