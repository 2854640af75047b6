package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ratios.Standard != 0.5 {
		t.Errorf("expected standard ratio 0.5, got %g", cfg.Ratios.Standard)
	}
	if cfg.Ratios.Aggressive != 0.2 {
		t.Errorf("expected aggressive ratio 0.2, got %g", cfg.Ratios.Aggressive)
	}
	if len(cfg.Keywords.Preserve) != 6 {
		t.Errorf("expected 6 preserve keywords, got %d", len(cfg.Keywords.Preserve))
	}
	if len(cfg.Keywords.Aggressive) != 7 {
		t.Errorf("expected 7 aggressive keywords, got %d", len(cfg.Keywords.Aggressive))
	}
	if !cfg.Decimate.Triangulate || cfg.Decimate.UseSymmetry {
		t.Errorf("unexpected decimate defaults: %+v", cfg.Decimate)
	}
	if cfg.Export.Suffix != "_QUEST_SMART" {
		t.Errorf("expected suffix _QUEST_SMART, got %q", cfg.Export.Suffix)
	}
	if cfg.Blender.Binary != "blender" {
		t.Errorf("expected blender binary, got %q", cfg.Blender.Binary)
	}
	if cfg.Blender.Timeout() != 10*time.Minute {
		t.Errorf("expected 10m timeout, got %v", cfg.Blender.Timeout())
	}
	if !cfg.Textures.Enabled || cfg.Textures.MaxSize != 1024 {
		t.Errorf("unexpected texture defaults: %+v", cfg.Textures)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %q", cfg.Logging.Level)
	}

	if err := cfg.Rules().Validate(); err != nil {
		t.Errorf("default rules should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "optimizer.yaml")

	yamlContent := `
keywords:
  preserve: [skull]
  aggressive: [crate, barrel]

ratios:
  standard: 0.6
  aggressive: 0.15

export:
  suffix: _MOBILE

blender:
  binary: /opt/blender/blender
  timeout_seconds: 120

textures:
  enabled: false
  max_size: 512

logging:
  level: debug
  log_file: opt.log
`
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Keywords.Preserve) != 1 || cfg.Keywords.Preserve[0] != "skull" {
		t.Errorf("preserve list not loaded: %v", cfg.Keywords.Preserve)
	}
	if len(cfg.Keywords.Aggressive) != 2 {
		t.Errorf("aggressive list not loaded: %v", cfg.Keywords.Aggressive)
	}
	if cfg.Ratios.Standard != 0.6 || cfg.Ratios.Aggressive != 0.15 {
		t.Errorf("ratios not loaded: %+v", cfg.Ratios)
	}
	if cfg.Export.Suffix != "_MOBILE" {
		t.Errorf("suffix not loaded: %q", cfg.Export.Suffix)
	}
	if cfg.Blender.Binary != "/opt/blender/blender" || cfg.Blender.Timeout() != 2*time.Minute {
		t.Errorf("blender config not loaded: %+v", cfg.Blender)
	}
	if cfg.Textures.Enabled || cfg.Textures.MaxSize != 512 {
		t.Errorf("texture config not loaded: %+v", cfg.Textures)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "opt.log" {
		t.Errorf("logging config not loaded: %+v", cfg.Logging)
	}

	// Fields the file omits keep their defaults.
	if !cfg.Decimate.Triangulate {
		t.Error("omitted decimate section should keep defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/optimizer.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(path, []byte("ratios:\n  standard: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Export.Suffix != "_QUEST_SMART" {
		t.Errorf("expected defaults, got suffix %q", cfg.Export.Suffix)
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{
		Blender:      "/usr/local/bin/blender",
		Suffix:       "_LOW",
		MaxTexture:   256,
		SkipTextures: true,
		Verbose:      true,
	})

	if cfg.Blender.Binary != "/usr/local/bin/blender" {
		t.Errorf("blender flag not applied: %q", cfg.Blender.Binary)
	}
	if cfg.Export.Suffix != "_LOW" {
		t.Errorf("suffix flag not applied: %q", cfg.Export.Suffix)
	}
	if cfg.Textures.MaxSize != 256 || cfg.Textures.Enabled {
		t.Errorf("texture flags not applied: %+v", cfg.Textures)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("verbose flag not applied: %q", cfg.Logging.Level)
	}

	// Zero-value flags change nothing.
	cfg2 := Default()
	cfg2.Resolve(Flags{})
	if cfg2.Blender.Binary != "blender" || cfg2.Export.Suffix != "_QUEST_SMART" {
		t.Errorf("empty flags should not override defaults: %+v", cfg2)
	}
}

func TestRulesMapping(t *testing.T) {
	cfg := Default()
	rs := cfg.Rules()
	out := rs.Classify("Head_Strap", false)
	if out.Decision.String() != "PROTECT" {
		t.Errorf("config-built ruleset lost precedence: %v", out.Decision)
	}
}
