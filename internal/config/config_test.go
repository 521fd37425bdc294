package config

import (
	"runtime"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected workers = CPU count, got %d", cfg.Workers)
	}
	if len(cfg.Exclude) == 0 {
		t.Error("expected default exclude list")
	}
	found := false
	for _, e := range cfg.Exclude {
		if e == "Library" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Library in default excludes, got %v", cfg.Exclude)
	}
	if cfg.DisableCache {
		t.Error("cache should be enabled by default")
	}
	if cfg.DebounceMillis != 500 {
		t.Errorf("expected 500ms debounce, got %d", cfg.DebounceMillis)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TIDYCRAFT_WORKERS", "7")
	t.Setenv("TIDYCRAFT_DISABLE_CACHE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Workers != 7 {
		t.Errorf("expected workers 7 from env, got %d", cfg.Workers)
	}
	if !cfg.DisableCache {
		t.Error("expected cache disabled from env")
	}
}

func TestWorkerCount(t *testing.T) {
	c := &Config{Workers: 4}
	if got := c.WorkerCount(); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}

	c.Workers = 0
	if got := c.WorkerCount(); got != runtime.NumCPU() {
		t.Errorf("expected CPU count fallback, got %d", got)
	}
}
