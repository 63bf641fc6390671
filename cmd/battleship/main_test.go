package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--persist-path", t.TempDir(), "--log-level", "error"))
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("battleship %v: %v", args, err)
	}
	return out.String()
}

func TestOverlapCommand(t *testing.T) {
	out := run(t, "overlap", "C", "71", "P", "9")
	if strings.TrimSpace(out) != "carrier B2-F2 / patrol B1-B2: true" {
		t.Fatalf("output = %q", out)
	}
}

func TestSolveCommand(t *testing.T) {
	log := filepath.Join(t.TempDir(), "moves.txt")
	if err := os.WriteFile(log, []byte("A1P\nB1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := run(t, "solve", log, "--size", "5", "--heatmap")
	if !strings.Contains(out, "patrol       1/40") {
		t.Fatalf("output:\n%s", out)
	}
	if !strings.Contains(out, "A1-A2") {
		t.Fatalf("remaining patrol placement not listed:\n%s", out)
	}
}

func TestGenerateFeedsSolve(t *testing.T) {
	gen := run(t, "generate", "--size", "6", "--seed", "9", "--shots", "12", "--show-fleet")
	log := filepath.Join(t.TempDir(), "moves.txt")
	if err := os.WriteFile(log, []byte(gen), 0o644); err != nil {
		t.Fatal(err)
	}
	out := run(t, "solve", log, "--size", "6")
	if strings.Count(out, "/") < 5 {
		t.Fatalf("output:\n%s", out)
	}
}
