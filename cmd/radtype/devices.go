package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/radtype/internal/gamepad"
	"github.com/verte-zerg/radtype/internal/layout"
	"github.com/verte-zerg/radtype/internal/model"
	"github.com/verte-zerg/radtype/internal/monitorui"
)

var monitorHeadless bool

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List joysticks and rumble-capable event devices",
		Args:  cobra.NoArgs,
		RunE:  runDevicesCmd,
	}
}

func runDevicesCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	joysticks := gamepad.List(nil, maxJoysticks)
	if len(joysticks) == 0 {
		logErrf("No joysticks found under /dev/input/js*\n")
	}
	for _, js := range joysticks {
		if _, err := fmt.Fprintf(out, "js%d\t%s\taxes=%d buttons=%d\n", js.Index, js.Name, js.Axes, js.Buttons); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	nodes, err := gamepad.ListHaptics()
	if err != nil {
		return fmt.Errorf("failed to list rumble devices: %w", err)
	}
	for _, n := range nodes {
		if _, err := fmt.Fprintf(out, "%s\t%s\trumble\n", n.Path, n.Name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List layout presets",
		Args:  cobra.NoArgs,
		RunE:  runLayoutsCmd,
	}
}

func runLayoutsCmd(cmd *cobra.Command, _ []string) error {
	return writeLayouts(cmd.OutOrStdout(), layout.Presets())
}

func writeLayouts(w io.Writer, presets []layout.Preset) error {
	for _, p := range presets {
		lines := []string{fmt.Sprintf("%s\t%s", p.Name, p.Description)}
		for _, r := range p.Rings {
			line := fmt.Sprintf("  %-6s center=%c keys=%s", r.Name, r.CenterKey, r.DefaultKeys)
			if r.AltKeys != "" {
				line += fmt.Sprintf(" alt=%s (button %d)", r.AltKeys, r.AltButton)
			}
			line += fmt.Sprintf(" axes=%d/%d", r.XAxis, r.YAxis)
			lines = append(lines, line)
		}
		if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newMonitorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show live button and axis state",
		Args:  cobra.NoArgs,
		RunE:  runMonitorCmd,
	}
	addRunFlags(cmd)
	cmd.Flags().BoolVar(&monitorHeadless, "headless", false, "log changes to stderr instead of opening the monitor UI")
	return cmd
}

func runMonitorCmd(cmd *cobra.Command, _ []string) error {
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
	board, err := boardBuilder(tuning, fileCfg.Rings)(runLayout)
	if err != nil {
		return err
	}

	interactive := !monitorHeadless && term.IsTerminal(int(os.Stdout.Fd()))
	var w io.WriteCloser = nopCloser{os.Stderr}
	if interactive || logFile != "" {
		if w, err = openLogFile(logFile); err != nil {
			return err
		}
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	log := setupLogger(level, w)

	pad := gamepad.NewManager(gamepad.Options{Index: runDevice, RetryFrames: int(runFPS), Logger: log})
	defer pad.Close()

	if interactive {
		program := tea.NewProgram(monitorui.NewModel(pad, board, runFPS, log), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run monitor: %w", err)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runHeadlessMonitor(ctx, pad, board, time.Duration(float64(time.Second)/runFPS), log)
	return nil
}

// runHeadlessMonitor logs input changes until ctx is cancelled.
func runHeadlessMonitor(ctx context.Context, pad *gamepad.Manager, board model.BoardConfig, interval time.Duration, log *slog.Logger) {
	log.Info("monitoring input", "layout", board.Name, "interval", interval)
	var last model.Snapshot
	gamepad.Poll(ctx, pad, interval, func(snap model.Snapshot) {
		for _, c := range gamepad.Diff(last, snap, monitorui.AxisThreshold) {
			if c.Kind == gamepad.ButtonChange {
				log.Info("button", "id", c.ID, "pressed", c.Pressed)
				continue
			}
			log.Info("axis", "id", c.ID, "value", fmt.Sprintf("%+.2f", c.Value))
		}
		last = snap
	})
	log.Info("monitor stopped")
}
