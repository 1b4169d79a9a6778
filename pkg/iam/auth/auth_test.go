package auth

import (
	"testing"

	"github.com/talentrail/screening/pkg/kernel"
)

func TestParseKeysMapsEmployerAndUser(t *testing.T) {
	cfg := ParseKeys("k-1:emp-1:usr-1, k-2:emp-2")

	if len(cfg.Keys) != 2 {
		t.Fatalf("parsed %d keys, want 2", len(cfg.Keys))
	}

	full, ok := cfg.Keys["k-1"]
	if !ok {
		t.Fatal("k-1 not parsed")
	}
	if full.EmployerID != kernel.EmployerID("emp-1") {
		t.Errorf("k-1 employer = %q, want emp-1", full.EmployerID)
	}
	if full.UserID != kernel.UserID("usr-1") {
		t.Errorf("k-1 user = %q, want usr-1", full.UserID)
	}

	short, ok := cfg.Keys["k-2"]
	if !ok {
		t.Fatal("k-2 not parsed")
	}
	if short.EmployerID != kernel.EmployerID("emp-2") {
		t.Errorf("k-2 employer = %q, want emp-2", short.EmployerID)
	}
	if short.UserID != "" {
		t.Errorf("k-2 user = %q, want empty (no user segment)", short.UserID)
	}
}

func TestParseKeysSkipsMalformedEntries(t *testing.T) {
	cfg := ParseKeys("orphan-key, ,k-1:emp-1:usr-1")

	if len(cfg.Keys) != 1 {
		t.Fatalf("parsed %d keys, want 1 (blank and keyless entries skipped)", len(cfg.Keys))
	}
	if _, ok := cfg.Keys["orphan-key"]; ok {
		t.Error("entry without an employer segment should be skipped")
	}
}

func TestParseKeysEmptyInput(t *testing.T) {
	cfg := ParseKeys("")

	if len(cfg.Keys) != 0 {
		t.Errorf("parsed %d keys from empty input, want 0", len(cfg.Keys))
	}
}
