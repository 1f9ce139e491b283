package system

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# local overrides\nLOG_LEVEL = debug\n\nnot a pair\nSTUN_SERVERS=stun:one,stun:two\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STUN_SERVERS", "")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() = %v", err)
	}
	if got := os.Getenv("LOG_LEVEL"); got != "debug" {
		t.Errorf("LOG_LEVEL = %q, want debug", got)
	}
	if got := os.Getenv("STUN_SERVERS"); got != "stun:one,stun:two" {
		t.Errorf("STUN_SERVERS = %q", got)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	if err := LoadEnv("no-such-file-anywhere.env"); err == nil {
		t.Fatal("expected an error for a missing env file")
	}
}
