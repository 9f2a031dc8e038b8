// Command reconcile runs one reconciliation operation without the HTTP
// server and prints the result as JSON.
//
//	reconcile player -name "Josh Allen" -team BUF -position QB -season 2024
//	reconcile roster -file roster.json
//	reconcile enqueue -teams BUF,KC -force
//	reconcile efficiency -team BUF
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/antelope-reconciler/internal/app"
	"github.com/riskibarqy/antelope-reconciler/internal/config"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/gamelog"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
	"github.com/riskibarqy/antelope-reconciler/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the JSON result, so logs go to stderr.
	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Console: true,
		Output:  os.Stderr,
		Service: cfg.ServiceName,
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		logger.Error("reconcile failed", "command", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger, command string, args []string, out io.Writer) error {
	var op func(ctx context.Context, rt *app.Runtime) (any, error)
	var err error

	switch strings.ToLower(strings.TrimSpace(command)) {
	case "player":
		op, err = playerCommand(args)
	case "roster":
		op, err = rosterCommand(args)
	case "enqueue":
		op, err = enqueueCommand(args)
	case "efficiency":
		op, err = efficiencyCommand(args)
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return err
	}

	rt, err := app.NewRuntime(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build runtime: %w", err)
	}
	defer func() {
		if closeErr := rt.Close(); closeErr != nil {
			logger.Warn("close runtime", "error", closeErr)
		}
	}()

	result, err := op(ctx, rt)
	if err != nil {
		return err
	}
	return writeResult(out, result)
}

func playerCommand(args []string) (func(context.Context, *app.Runtime) (any, error), error) {
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	item := roster.WorkItem{Source: "cli"}
	fs.StringVar(&item.PlayerName, "name", "", "roster player name")
	fs.StringVar(&item.TeamName, "team", "", "team abbreviation")
	fs.StringVar(&item.PlayerPosition, "position", "", "roster position")
	fs.IntVar(&item.CurrentSeason, "season", gamelog.CurrentSeason(time.Now().UTC()), "current season")
	fs.StringVar(&item.Status, "status", "Active", "roster status")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return func(ctx context.Context, rt *app.Runtime) (any, error) {
		return rt.Reconciliation.RefreshPlayer(ctx, item)
	}, nil
}

func rosterCommand(args []string) (func(context.Context, *app.Runtime) (any, error), error) {
	fs := flag.NewFlagSet("roster", flag.ContinueOnError)
	path := fs.String("file", "", "JSON file holding work items (an array or {\"items\": [...]}); - reads stdin")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	items, err := readRosterFile(*path)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, rt *app.Runtime) (any, error) {
		return rt.Reconciliation.RefreshRoster(ctx, items)
	}, nil
}

func enqueueCommand(args []string) (func(context.Context, *app.Runtime) (any, error), error) {
	fs := flag.NewFlagSet("enqueue", flag.ContinueOnError)
	teams := fs.String("teams", "", "comma separated teams; empty means every team")
	force := fs.Bool("force", false, "ignore the recent-refresh window")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	input := usecase.EnqueueInput{Teams: splitTeams(*teams), Force: *force}
	return func(ctx context.Context, rt *app.Runtime) (any, error) {
		return rt.Enqueue.EnqueuePlayers(ctx, input)
	}, nil
}

func efficiencyCommand(args []string) (func(context.Context, *app.Runtime) (any, error), error) {
	fs := flag.NewFlagSet("efficiency", flag.ContinueOnError)
	team := fs.String("team", "", "team abbreviation; empty computes every team")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return func(ctx context.Context, rt *app.Runtime) (any, error) {
		if strings.TrimSpace(*team) == "" {
			return rt.Efficiency.ComputeAll(ctx)
		}
		return rt.Efficiency.Compute(ctx, *team)
	}, nil
}

func readRosterFile(path string) ([]roster.WorkItem, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("-file is required")
	}

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	items, err := decodeRoster(raw)
	if err != nil {
		return nil, fmt.Errorf("decode roster file %s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("roster file %s has no items", path)
	}
	return items, nil
}

// decodeRoster accepts a bare array or the verify-roster request body.
func decodeRoster(raw []byte) ([]roster.WorkItem, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []roster.WorkItem
		if err := sonic.UnmarshalString(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var body struct {
		Items []roster.WorkItem `json:"items"`
	}
	if err := sonic.UnmarshalString(trimmed, &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

func splitTeams(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if team := strings.TrimSpace(part); team != "" {
			out = append(out, team)
		}
	}
	return out
}

func writeResult(out io.Writer, result any) error {
	encoded, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <player|roster|enqueue|efficiency> [flags]\n", name)
	fmt.Fprintf(w, "  %s player -name \"Josh Allen\" -team BUF -position QB -season 2024\n", name)
	fmt.Fprintf(w, "  %s roster -file roster.json\n", name)
	fmt.Fprintf(w, "  %s enqueue -teams BUF,KC -force\n", name)
	fmt.Fprintf(w, "  %s efficiency -team BUF\n", name)
}
