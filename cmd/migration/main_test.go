package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"

	"github.com/riskibarqy/antelope-reconciler/internal/platform/logging"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	target  uint
	forced  int
	version uint
	dirty   bool
	err     error
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.err
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.calls = append(f.calls, "migrate")
	f.target = version
	return f.err
}

func (f *fakeMigrator) Force(version int) error {
	f.calls = append(f.calls, "force")
	f.forced = version
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.err
}

func TestExecute_Commands(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()
	cases := []struct {
		name    string
		command string
		args    []string
		check   func(t *testing.T, f *fakeMigrator)
	}{
		{"up all", "up", nil, func(t *testing.T, f *fakeMigrator) {
			if len(f.calls) != 1 || f.calls[0] != "up" {
				t.Fatalf("calls=%v", f.calls)
			}
		}},
		{"up steps", "UP", []string{"2"}, func(t *testing.T, f *fakeMigrator) {
			if f.steps != 2 {
				t.Fatalf("steps=%d", f.steps)
			}
		}},
		{"down default", "down", nil, func(t *testing.T, f *fakeMigrator) {
			if f.steps != -1 {
				t.Fatalf("steps=%d", f.steps)
			}
		}},
		{"force", "force", []string{"1771776035"}, func(t *testing.T, f *fakeMigrator) {
			if f.forced != 1771776035 {
				t.Fatalf("forced=%d", f.forced)
			}
		}},
		{"goto", "migrate", []string{"1771776034"}, func(t *testing.T, f *fakeMigrator) {
			if f.target != 1771776034 {
				t.Fatalf("target=%d", f.target)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeMigrator{}
			if err := execute(f, tc.command, tc.args, &bytes.Buffer{}, logger); err != nil {
				t.Fatalf("execute: %v", err)
			}
			tc.check(t, f)
		})
	}
}

func TestExecute_NoChangeIsSuccess(t *testing.T) {
	t.Parallel()

	f := &fakeMigrator{err: migrate.ErrNoChange}
	if err := execute(f, "up", nil, &bytes.Buffer{}, logging.NewNop()); err != nil {
		t.Fatalf("expected ErrNoChange to be swallowed, got %v", err)
	}
}

func TestExecute_Version(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	f := &fakeMigrator{version: 1771776035, dirty: true}
	if err := execute(f, "version", nil, &out, logging.NewNop()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := out.String(), "version: 1771776035\ndirty: true\n"; got != want {
		t.Fatalf("output=%q want %q", got, want)
	}

	out.Reset()
	if err := execute(&fakeMigrator{err: migrate.ErrNilVersion}, "version", nil, &out, logging.NewNop()); err != nil {
		t.Fatalf("execute nil version: %v", err)
	}
	if got, want := out.String(), "version: none\ndirty: false\n"; got != want {
		t.Fatalf("output=%q want %q", got, want)
	}
}

func TestExecute_UsageErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		command string
		args    []string
	}{
		{"down", []string{"0"}},
		{"down", []string{"x"}},
		{"force", nil},
		{"force", []string{"-5"}},
		{"goto", nil},
		{"goto", []string{"-1"}},
		{"sideways", nil},
	}
	for _, tc := range cases {
		f := &fakeMigrator{}
		err := execute(f, tc.command, tc.args, &bytes.Buffer{}, logging.NewNop())
		if !errors.Is(err, errUsage) {
			t.Fatalf("%s %v: expected usage error, got %v", tc.command, tc.args, err)
		}
		if len(f.calls) != 0 {
			t.Fatalf("%s %v: migrator should not be called, calls=%v", tc.command, tc.args, f.calls)
		}
	}
}

func TestExecute_MigrationFailurePropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("dirty database")
	if err := execute(&fakeMigrator{err: boom}, "down", []string{"1"}, &bytes.Buffer{}, logging.NewNop()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestResolveMigrationsDir_PrefersExplicit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want, _ := filepath.Abs(dir)
	if got != want {
		t.Fatalf("dir=%q want %q", got, want)
	}
}
