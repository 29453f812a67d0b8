package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/radtype/internal/config"
	"github.com/verte-zerg/radtype/internal/layout"
)

func resetRunFlags() {
	runLayout = defaultLayout
	runDevice = 0
	runFPS = defaultFPS
	runDebounce = 2
	runKeyShift = 1
	runTargetRadius = layout.DefaultTargetRadius
	runTinyRadius = layout.DefaultTinyRadius
	runNoHaptics = false
	logLevel = defaultLogLevel
	logFile = ""
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{"DEBUG": LogLevelDebug, "warning": LogLevelWarn, " info ": LogLevelInfo, "error": LogLevelError} {
		got, err := parseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("parseLogLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseLogLevel("loud"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := writeConfig(t, defaultConfigTemplate())
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Layout.Preset != nil || len(cfg.Rings) != 0 {
		t.Fatalf("expected every template value to be commented out")
	}
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	path := writeConfig(t, `
[input]
device = 2
fps = 30.0

[layout]
preset = "split8"
debounce = 3

[haptics]
enabled = false
`)
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--config", path, "--debounce", "4"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if _, err := loadRunConfig(cmd); err != nil {
		t.Fatalf("loadRunConfig: %v", err)
	}
	if runDevice != 2 || runFPS != 30 || runLayout != "split8" {
		t.Fatalf("expected file values, got device=%d fps=%v layout=%s", runDevice, runFPS, runLayout)
	}
	if configPath != path {
		t.Fatalf("expected --config to select %s, got %s", path, configPath)
	}
	if runDebounce != 4 {
		t.Fatalf("expected the flag to win over the file, got %d", runDebounce)
	}
	if !runNoHaptics {
		t.Fatalf("expected haptics disabled from the file")
	}
}

func TestValidateRunConfig(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	if err := validateRunConfig(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	runTinyRadius = 0.9
	if err := validateRunConfig(); err == nil {
		t.Fatalf("expected tiny radius beyond target to fail")
	}
	resetRunFlags()
	runFPS = 0
	if err := validateRunConfig(); err == nil {
		t.Fatalf("expected zero fps to fail")
	}
}

func TestBuildTuningAppliesFileSettings(t *testing.T) {
	resetRunFlags()
	defer resetRunFlags()
	runKeyShift = 0
	dur := 80
	strong := 0.5
	space := 7
	invert := false
	tuning, err := buildTuning(config.FileConfig{
		Layout:  config.LayoutConfig{SpaceButton: &space, InvertY: &invert},
		Haptics: config.HapticsConfig{DurationMs: &dur, Strong: &strong},
	})
	if err != nil {
		t.Fatalf("buildTuning: %v", err)
	}
	if tuning.KeyShift != 0 || tuning.SpaceButton != 7 || tuning.InvertY {
		t.Fatalf("unexpected tuning: %+v", tuning)
	}
	if tuning.Pulse.Duration != 80*time.Millisecond || tuning.Pulse.Strong != 0.5 || tuning.Pulse.Weak != 1 {
		t.Fatalf("unexpected pulse: %+v", tuning.Pulse)
	}

	bad := 2.0
	if _, err := buildTuning(config.FileConfig{Haptics: config.HapticsConfig{Weak: &bad}}); err == nil {
		t.Fatalf("expected out-of-range weak magnitude to fail")
	}
}

func TestBoardBuilderAppliesOverrides(t *testing.T) {
	keys := "ABCDEFGH"
	build := boardBuilder(layout.DefaultTuning(), []config.RingConfig{{Name: "left", Keys: &keys}})
	cfg, err := build("classic")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if string(cfg.Rings[0].Ring.DefaultKeys) != keys {
		t.Fatalf("expected overridden keys, got %q", string(cfg.Rings[0].Ring.DefaultKeys))
	}
	if _, err := build("missing"); err == nil {
		t.Fatalf("expected unknown layout to fail")
	}
}

func TestWriteLayoutsListsEveryPreset(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLayouts(&buf, layout.Presets()); err != nil {
		t.Fatalf("writeLayouts: %v", err)
	}
	out := buf.String()
	for _, name := range layout.Names() {
		if !strings.Contains(out, name) {
			t.Fatalf("missing preset %s in:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "center=E") || !strings.Contains(out, "alt=") {
		t.Fatalf("expected ring details in:\n%s", out)
	}
}
