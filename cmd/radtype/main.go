// Package main provides the CLI entrypoint for radtype.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/radtype/internal/config"
	"github.com/verte-zerg/radtype/internal/gamepad"
	"github.com/verte-zerg/radtype/internal/layout"
	"github.com/verte-zerg/radtype/internal/model"
	"github.com/verte-zerg/radtype/internal/radial"
	"github.com/verte-zerg/radtype/internal/tui"
)

const (
	defaultLayout   = "classic"
	defaultFPS      = 60.0
	defaultLogLevel = "info"
	maxFPS          = 1000.0
	maxJoysticks    = 8
)

var (
	configPath string
	logLevel   string
	logFile    string

	runLayout       string
	runDevice       int
	runFPS          float64
	runDebounce     int
	runKeyShift     int
	runTargetRadius float64
	runTinyRadius   float64
	runNoHaptics    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "radtype",
		Short:         "Type with a gamepad's analog sticks",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTypeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level: error, warn, info, debug")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file (TUI commands discard logs by default)")

	addRunFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDevicesCmd())
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newMonitorCmd())

	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runLayout, "layout", defaultLayout, "layout preset ("+strings.Join(layout.Names(), ", ")+")")
	cmd.Flags().IntVar(&runDevice, "device", 0, "joystick index (/dev/input/jsN)")
	cmd.Flags().Float64Var(&runFPS, "fps", defaultFPS, "frames sampled per second")
	cmd.Flags().IntVar(&runDebounce, "debounce", radial.DefaultDebounceDepth, "frames a stick must rest before a key commits")
	cmd.Flags().IntVar(&runKeyShift, "key-shift", radial.DefaultKeyShift, "segment to key index shift")
	cmd.Flags().Float64Var(&runTargetRadius, "target-radius", layout.DefaultTargetRadius, "stick radius beyond which a segment is selected (0-1)")
	cmd.Flags().Float64Var(&runTinyRadius, "tiny-radius", layout.DefaultTinyRadius, "stick radius of the center-key zone")
	cmd.Flags().BoolVar(&runNoHaptics, "no-haptics", false, "disable rumble feedback")
}

func runTypeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return err
	}
	tuning, err := buildTuning(fileCfg)
	if err != nil {
		return err
	}
	builder := boardBuilder(tuning, fileCfg.Rings)
	if _, err := builder(runLayout); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("radtype needs an interactive terminal")
	}

	w, err := openLogFile(logFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	log := setupLogger(level, w)

	pad := gamepad.NewManager(gamepad.Options{
		Index:       runDevice,
		RetryFrames: int(runFPS),
		Logger:      log,
	})
	defer pad.Close()

	m, err := tui.NewModel(tui.Options{
		Layout:  runLayout,
		Build:   builder,
		Input:   pad,
		FPS:     runFPS,
		Haptics: !runNoHaptics,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadRunConfig reads the config file and applies it to every flag the user did not set.
func loadRunConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Logging.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Logging.File)
	applyStringConfig(cmd, "layout", &runLayout, fileCfg.Layout.Preset)
	applyIntConfig(cmd, "device", &runDevice, fileCfg.Input.Device)
	applyFloatConfig(cmd, "fps", &runFPS, fileCfg.Input.FPS)
	applyIntConfig(cmd, "debounce", &runDebounce, fileCfg.Layout.Debounce)
	applyIntConfig(cmd, "key-shift", &runKeyShift, fileCfg.Layout.KeyShift)
	applyFloatConfig(cmd, "target-radius", &runTargetRadius, fileCfg.Layout.TargetRadius)
	applyFloatConfig(cmd, "tiny-radius", &runTinyRadius, fileCfg.Layout.TinyRadius)
	if fileCfg.Haptics.Enabled != nil && !flagChanged(cmd, "no-haptics") {
		runNoHaptics = !*fileCfg.Haptics.Enabled
	}
	if err := validateRunConfig(); err != nil {
		return config.FileConfig{}, err
	}
	return fileCfg, nil
}

func validateRunConfig() error {
	if runDevice < 0 {
		return fmt.Errorf("--device must be >= 0")
	}
	if runFPS <= 0 || runFPS > maxFPS {
		return fmt.Errorf("--fps must be between 0 and %.0f", maxFPS)
	}
	if runDebounce < 1 {
		return fmt.Errorf("--debounce must be >= 1")
	}
	if runTargetRadius <= 0 || runTargetRadius >= 1 {
		return fmt.Errorf("--target-radius must be between 0 and 1")
	}
	if runTinyRadius <= 0 || runTinyRadius > runTargetRadius {
		return fmt.Errorf("--tiny-radius must be > 0 and <= --target-radius")
	}
	return nil
}

// buildTuning combines the resolved flags with the file-only layout and haptics settings.
func buildTuning(fileCfg config.FileConfig) (layout.Tuning, error) {
	t := layout.DefaultTuning()
	t.DebounceDepth = runDebounce
	t.KeyShift = runKeyShift
	t.TargetRadius = runTargetRadius
	t.TinyRadius = runTinyRadius

	lc := fileCfg.Layout
	if lc.OffsetFraction != nil {
		t.OffsetFraction = *lc.OffsetFraction
	}
	if lc.InvertY != nil {
		t.InvertY = *lc.InvertY
	}
	if lc.BackspaceButton != nil {
		t.BackspaceButton = *lc.BackspaceButton
	}
	if lc.SpaceButton != nil {
		t.SpaceButton = *lc.SpaceButton
	}

	hc := fileCfg.Haptics
	if hc.DurationMs != nil {
		if *hc.DurationMs < 0 {
			return layout.Tuning{}, fmt.Errorf("haptics duration-ms must be >= 0")
		}
		t.Pulse.Duration = time.Duration(*hc.DurationMs) * time.Millisecond
	}
	if hc.Strong != nil {
		t.Pulse.Strong = *hc.Strong
	}
	if hc.Weak != nil {
		t.Pulse.Weak = *hc.Weak
	}
	if t.Pulse.Strong < 0 || t.Pulse.Strong > 1 || t.Pulse.Weak < 0 || t.Pulse.Weak > 1 {
		return layout.Tuning{}, fmt.Errorf("haptics strong and weak must be between 0 and 1")
	}
	return t, nil
}

// boardBuilder resolves presets with the config file's ring overrides applied.
func boardBuilder(t layout.Tuning, overrides []config.RingConfig) tui.BoardBuilder {
	return func(name string) (model.BoardConfig, error) {
		p, err := layout.Lookup(name)
		if err != nil {
			return model.BoardConfig{}, err
		}
		p, err = layout.ApplyRings(p, overrides)
		if err != nil {
			return model.BoardConfig{}, fmt.Errorf("failed to apply ring overrides: %w", err)
		}
		cfg := layout.Build(p, t)
		if _, err := radial.NewBoard(cfg); err != nil {
			return model.BoardConfig{}, fmt.Errorf("invalid layout %s: %w", p.Name, err)
		}
		return cfg, nil
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# radtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[input]
# device = 0                # Joystick index (/dev/input/jsN)
# fps = %.0f                 # Frames sampled per second

[layout]
# preset = %q          # One of: %s
# debounce = %d              # Frames a stick must rest before a key commits
# key-shift = %d             # Segment to key index shift
# target-radius = %.2f     # Stick radius beyond which a segment is selected
# tiny-radius = %.2f        # Stick radius of the center-key zone
# offset-fraction = %.1f     # Boundary rotation as a fraction of a segment
# invert-y = true           # Device reports down as positive
# backspace-button = %d      # Released to delete the last character
# space-button = %d          # Released to insert a space

[haptics]
# enabled = true
# duration-ms = %d
# strong = %.1f
# weak = %.1f

[logging]
# level = %q
# file = %q

# Per-ring overrides, matched by name. An unknown name adds a ring.
# [[rings]]
# name = "left"
# center = "E"
# keys = "FVGRWQASZXCD"
# alt-keys = ""
# x-axis = 0
# y-axis = 1
# alt-button = 4
`,
		defaultFPS,
		defaultLayout,
		strings.Join(layout.Names(), ", "),
		radial.DefaultDebounceDepth,
		radial.DefaultKeyShift,
		layout.DefaultTargetRadius,
		layout.DefaultTinyRadius,
		radial.DefaultOffsetFraction,
		layout.DefaultBackspaceButton,
		layout.DefaultSpaceButton,
		radial.DefaultPulse.Duration.Milliseconds(),
		radial.DefaultPulse.Strong,
		radial.DefaultPulse.Weak,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
