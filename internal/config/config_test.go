package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.BoardSize != 10 || c.Addr != ":8080" || c.PersistPath != "./data" {
		t.Fatalf("defaults = %+v", c)
	}
	if c.Level() != slog.LevelInfo {
		t.Fatalf("level = %v", c.Level())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "battleship.yaml")
	if err := os.WriteFile(file, []byte("size: 8\nlog-level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BATTLESHIP_ADDR", ":9090")

	c, err := Load(viper.New(), file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.BoardSize != 8 || c.Addr != ":9090" || c.Level() != slog.LevelDebug {
		t.Fatalf("loaded %+v", c)
	}
}

func TestLoadRejectsBadSize(t *testing.T) {
	t.Setenv("BATTLESHIP_SIZE", "40")
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := Load(viper.New(), ""); err == nil {
		t.Fatalf("expected error for size 40")
	}
}
