package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1siamBot/promethium/engine/config"
	"github.com/1siamBot/promethium/engine/journal"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestSimulateWritesJournal(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Path = filepath.Join(t.TempDir(), "run.jsonl.zst")

	sum, err := simulate(cfg, 60, 10, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Ticks == 0 || sum.Elapsed <= 0 {
		t.Fatalf("nothing simulated: %+v", sum)
	}
	if sum.Elapsed > 60+2*defaultStep {
		t.Fatalf("ran past the limit: %v", sum.Elapsed)
	}
	entries, err := journal.ReadFile(cfg.Journal.Path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != sum.Events {
		t.Fatalf("journal has %d entries, summary says %d", len(entries), sum.Events)
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Seed = 7
	a, err := simulate(cfg, 45, 0, quiet())
	if err != nil {
		t.Fatal(err)
	}
	b, err := simulate(cfg, 45, 0, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestSimulateRejectsBadDifficulty(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Enemy.Difficulty = "nightmare"
	cfg.Journal.Path = filepath.Join(t.TempDir(), "run.jsonl.zst")
	if _, err := simulate(cfg, 1, 0, quiet()); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := os.Stat(cfg.Journal.Path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("journal opened before the controllers were built: %v", err)
	}
}

func TestSimulateWarnsWhenForcingAI(t *testing.T) {
	cfg := config.Default()
	cfg.AI.Player.Enabled = false
	cfg.AI.Enemy.Enabled = false

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := simulate(cfg, 1, 0, log); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, f := range []string{"faction=player", "faction=enemy"} {
		if !strings.Contains(out, "headless forces AI on") || !strings.Contains(out, f) {
			t.Errorf("no warning for %s in:\n%s", f, out)
		}
	}
}
