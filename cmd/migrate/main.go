// Command migrate applies and authors the shop's schema migrations.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/tshirtshop/backend/internal/infrastructure/config"
	"github.com/tshirtshop/backend/internal/infrastructure/logger"
	"github.com/tshirtshop/backend/internal/infrastructure/migration"
	"github.com/tshirtshop/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// dbCommand runs against a connected migrator with the command's arguments
type dbCommand func(m *migration.Migrator, args []string, log *zap.Logger) error

var dbCommands = map[string]dbCommand{
	"up": func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.Up()
	},
	"down": func(m *migration.Migrator, _ []string, _ *zap.Logger) error {
		return m.Down()
	},
	"steps": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		n, err := intArg(args, "steps <n>")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"goto": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := intArg(args, "goto <version>")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative: %d", v)
		}
		return m.GoTo(uint(v))
	},
	"version": func(m *migration.Migrator, _ []string, log *zap.Logger) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied")
			return nil
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	},
	"force": func(m *migration.Migrator, args []string, log *zap.Logger) error {
		v, err := intArg(args, "force <version>")
		if err != nil {
			return err
		}
		log.Warn("Forcing migration version", zap.Int("version", v))
		return m.Force(v)
	},
}

func main() {
	dir := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command, rest := args[0], args[1:]

	log, err := logger.New(logger.Config{Level: *logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var source fs.FS = migrations.FS
	if *dir != "" {
		source = os.DirFS(*dir)
	}

	switch command {
	case "create":
		err = create(*dir, rest, log)
	case "list":
		err = list(source, log)
	default:
		run, ok := dbCommands[command]
		if !ok {
			log.Error("Unknown command", zap.String("command", command))
			printUsage()
			os.Exit(1)
		}
		err = withMigrator(source, log, func(m *migration.Migrator) error {
			return run(m, rest, log)
		})
	}
	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func create(dir string, args []string, log *zap.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("migration name required: migrate create <name> [description]")
	}
	if dir == "" {
		dir = defaultMigrationsDir
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		return err
	}
	log.Info("Migration created",
		zap.Uint("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func list(source fs.FS, log *zap.Logger) error {
	infos, err := migration.ListMigrations(source)
	if err != nil {
		return err
	}
	log.Info("Available migrations", zap.Int("count", len(infos)))
	for _, m := range infos {
		fmt.Printf("  %06d %s (down: %t)\n", m.Version, m.Name, m.HasDown)
	}
	return nil
}

func withMigrator(source fs.FS, log *zap.Logger, fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, source, log)
	if err != nil {
		_ = db.Close()
		return err
	}
	// Closing the migrator also closes db
	defer func() { _ = m.Close() }()

	return fn(m)
}

func intArg(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("argument required: migrate %s", usage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `T-shirt shop database migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  steps <n>             Apply n migrations (negative rolls back)
  goto <version>        Migrate to a specific version
  version               Show the current version
  force <version>       Set the version without running migrations
  create <name> [desc]  Write a new up/down file pair
  list                  List known migrations

Flags:
  -path string          Read migrations from a directory (default: embedded set)
  -log-level string     debug, info, warn or error (default: info)

Environment:
  SHOP_DATABASE_HOST, SHOP_DATABASE_PORT, SHOP_DATABASE_USER,
  SHOP_DATABASE_PASSWORD, SHOP_DATABASE_DBNAME, SHOP_DATABASE_SSLMODE
`)
}
