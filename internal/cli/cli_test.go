package cli

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/RobotWar/internal/game"
)

func parse(t *testing.T, args ...string) *Options {
	t.Helper()
	var o Options
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &o
}

func TestOptions_Defaults(t *testing.T) {
	cfg, err := parse(t).Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != game.DefaultConfig() {
		t.Fatalf("flag defaults should match DefaultConfig, got %+v", cfg)
	}
}

func TestOptions_Invalid(t *testing.T) {
	if _, err := parse(t, "-grid", "1").Config(); !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := parse(t, "-variant", "sideways").Config(); err == nil {
		t.Fatal("unknown variant should fail")
	}
	if _, err := parse(t, "-log-level", "loud").Logger(&bytes.Buffer{}); err == nil {
		t.Fatal("unknown log level should fail")
	}
}

func TestOptions_LoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := parse(t, "-log-level", "warn").Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestOptions_ArenaFactory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spin.rw")
	if err := os.WriteFile(path, []byte("right"), 0o600); err != nil {
		t.Fatal(err)
	}
	o := parse(t, "-seed", "7", "-grid", "8", "-red-script", path)
	var buf bytes.Buffer
	logger, _ := o.Logger(&buf)
	build, err := o.ArenaFactory(logger)
	if err != nil {
		t.Fatal(err)
	}
	a, err := build()
	if err != nil {
		t.Fatal(err)
	}
	if a.Config().GridSize != 8 || a.State() != game.StateInitializing {
		t.Fatalf("unexpected arena grid=%d state=%s", a.Config().GridSize, a.State())
	}
	a.Start()
	before := a.Robot(game.Red).Heading
	a.Step()
	if got := a.Robot(game.Red).Heading; got != before.Right() {
		t.Fatalf("scripted red should turn right: %s -> %s", before, got)
	}

	o.RedScript = filepath.Join(t.TempDir(), "missing.rw")
	if _, err := o.ArenaFactory(logger); err == nil {
		t.Fatal("missing script should fail")
	}
}
