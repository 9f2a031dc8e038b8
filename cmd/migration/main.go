package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riskibarqy/antelope-reconciler/internal/app"
	"github.com/riskibarqy/antelope-reconciler/internal/config"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
)

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

var errUsage = errors.New("usage")

func main() {
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Console: true, Service: "antelope-migration"})
	defer func() { _ = logger.Sync() }()

	fs := flag.NewFlagSet("migration", flag.ContinueOnError)
	dir := fs.String("dir", "", "migrations directory (default: MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
	fs.Usage = func() { printUsage(os.Stderr) }
	if err := fs.Parse(os.Args[1:]); err != nil || fs.NArg() == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("load .env", "error", err)
		os.Exit(1)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}
	binary, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_BINARY_PARAMETERS")))
	dbURL = app.NormalizeDBURL(dbURL, binary)

	migrationsDir, err := resolveMigrationsDir(*dir)
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		os.Exit(1)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		logger.Error("create migrator", "source", sourceURL, "error", err)
		os.Exit(1)
	}

	err = execute(m, fs.Arg(0), fs.Args()[1:], os.Stdout, logger)
	closeMigrator(m, logger)
	switch {
	case errors.Is(err, errUsage):
		logger.Error("invalid arguments", "error", err)
		printUsage(os.Stderr)
		os.Exit(2)
	case err != nil:
		logger.Error("migration failed", "command", fs.Arg(0), "error", err)
		os.Exit(1)
	}
}

func execute(m migrator, command string, args []string, out io.Writer, logger *logging.Logger) error {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "up":
		if len(args) == 0 {
			return noChange(m.Up(), logger, "migrations applied")
		}
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return noChange(m.Steps(steps), logger, "migrations applied", "steps", steps)
	case "down":
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return noChange(m.Steps(-steps), logger, "migrations rolled back", "steps", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	case "force":
		if len(args) == 0 {
			return fmt.Errorf("%w: force requires a version", errUsage)
		}
		version, err := parseVersion(args[0])
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced version", "version", version)
		return nil
	case "goto", "migrate":
		if len(args) == 0 {
			return fmt.Errorf("%w: goto requires a target version", errUsage)
		}
		target, err := parseTarget(args[0])
		if err != nil {
			return err
		}
		return noChange(m.Migrate(target), logger, "migrated", "version", target)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// noChange treats migrate.ErrNoChange as success.
func noChange(err error, logger *logging.Logger, msg string, args ...any) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg, args...)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid steps %q", errUsage, args[0])
	}
	if steps <= 0 {
		return 0, fmt.Errorf("%w: steps must be > 0", errUsage)
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid version %q", errUsage, raw)
	}
	if value < -1 {
		return 0, fmt.Errorf("%w: version must be >= -1", errUsage)
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid target version %q", errUsage, raw)
	}
	return uint(value), nil
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func resolveMigrationsDir(explicit string) (string, error) {
	candidates := []string{
		strings.TrimSpace(explicit),
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked -dir, MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s [-dir path] <up [n]|down [n]|version|force V|goto V>\n", name)
	fmt.Fprintf(w, "  %s up\n  %s down 1\n  %s force 1771776035\n  %s goto 1771776034\n", name, name, name, name)
}
