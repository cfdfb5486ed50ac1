package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Model != "gemini-2.5-flash" {
		t.Fatalf("default model = %q", cfg.Model)
	}
	if cfg.TargetCount != 50 {
		t.Fatalf("default target = %d", cfg.TargetCount)
	}
	if cfg.AITimeout != 30*time.Minute {
		t.Fatalf("default timeout = %s", cfg.AITimeout)
	}
	if cfg.SkipAI {
		t.Fatalf("SkipAI must default to false")
	}
	if cfg.Snapshot.S3Bucket != "codeatlas-graphs" {
		t.Fatalf("default bucket = %q", cfg.Snapshot.S3Bucket)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONSOLIDATE_MODEL", "gemini-2.5-pro")
	t.Setenv("CONSOLIDATE_TARGET", "25")
	t.Setenv("CONSOLIDATE_TIMEOUT_MINUTES", "5")
	t.Setenv("CONSOLIDATE_SKIP_AI", "true")
	t.Setenv("SNAPSHOT_CACHE_ENTRIES", "16")

	cfg := Load()
	if cfg.Model != "gemini-2.5-pro" {
		t.Fatalf("model = %q", cfg.Model)
	}
	if cfg.TargetCount != 25 {
		t.Fatalf("target = %d", cfg.TargetCount)
	}
	if cfg.AITimeout != 5*time.Minute {
		t.Fatalf("timeout = %s", cfg.AITimeout)
	}
	if !cfg.SkipAI {
		t.Fatalf("SkipAI must honor the env var")
	}
	if cfg.Snapshot.CacheMaxEntries != 16 {
		t.Fatalf("cache entries = %d", cfg.Snapshot.CacheMaxEntries)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CONSOLIDATE_TARGET", "not-a-number")
	cfg := Load()
	if cfg.TargetCount != 50 {
		t.Fatalf("malformed target must fall back to the default, got %d", cfg.TargetCount)
	}
}
