package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-registry/internal/config"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:            ":0",
		StorageDriver:       config.StorageMemory,
		CacheEnabled:        true,
		CacheTTL:            time.Minute,
		CORSAllowedOrigins:  []string{"*"},
		RosterImportWorkers: 2,
	}
}

func TestNewHTTPServer_Memory(t *testing.T) {
	server, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	if server.Handler == nil {
		t.Fatalf("expected router to be wired")
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNewHTTPServer_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	raw := `
[[teams]]
name = "Pumas"

[teams.representative]
first_name = "Elena"
last_name = "Mora"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	cfg := memoryConfig()
	cfg.SeedFile = path
	teams, err := loadSeedTeams(cfg)
	if err != nil {
		t.Fatalf("load seed teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name() != "Pumas" {
		t.Fatalf("unexpected seed teams: %d", len(teams))
	}

	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.toml")
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}
