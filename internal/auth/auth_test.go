package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadClear(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	key, err := LoadAPIKey()
	if err != nil || key != "" {
		t.Fatalf("LoadAPIKey() on empty home = %q, %v; want \"\", nil", key, err)
	}

	if err := SaveAPIKey("  stored-key \n"); err != nil {
		t.Fatalf("SaveAPIKey: %v", err)
	}
	info, err := os.Stat(filepath.Join(home, ".dispatch", "auth.json"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("auth.json perm = %o, want 600", perm)
	}

	key, err = LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey: %v", err)
	}
	if key != "stored-key" {
		t.Fatalf("LoadAPIKey() = %q, want %q", key, "stored-key")
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
	key, err = LoadAPIKey()
	if err != nil || key != "" {
		t.Fatalf("LoadAPIKey() after Clear = %q, %v", key, err)
	}
}

func TestSaveAPIKey_RejectsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := SaveAPIKey("   "); err == nil {
		t.Fatalf("SaveAPIKey(blank) = nil, want error")
	}
}

func TestResolveAPIKey_PrefersEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := SaveAPIKey("stored-key"); err != nil {
		t.Fatalf("SaveAPIKey: %v", err)
	}

	got, err := ResolveAPIKey(" env-key ")
	if err != nil || got != "env-key" {
		t.Fatalf("ResolveAPIKey(env) = %q, %v", got, err)
	}
	got, err = ResolveAPIKey("")
	if err != nil || got != "stored-key" {
		t.Fatalf("ResolveAPIKey(\"\") = %q, %v", got, err)
	}
}
