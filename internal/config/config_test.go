package config

import (
	"testing"
	"time"
)

func TestUpdateFromKeepsUnsetFields(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":9090", HistoryLimit: 50})

	if cfg.Addr != ":9090" {
		t.Fatalf("addr not overridden: %q", cfg.Addr)
	}
	if cfg.HistoryLimit != 50 {
		t.Fatalf("history limit not overridden: %d", cfg.HistoryLimit)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("unset field changed: %v", cfg.ReadHeaderTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unset field changed: %q", cfg.LogLevel)
	}
}
