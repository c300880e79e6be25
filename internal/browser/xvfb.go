package browser

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// xvfbScreen is deliberately desktop-sized: element geometry depends on
// the viewport, and a cramped virtual display would shift the very layout
// domalign is about to measure.
const xvfbScreen = "1920x1080x24"

// startXvfb launches a virtual display for headful mode and waits until
// its X socket exists, so Chrome never races the display coming up.
func (m *Manager) startXvfb() error {
	if m.xvfb != nil {
		return nil // already running
	}

	display := m.cfg.XvfbDisplay
	cmd := exec.Command("Xvfb", display, "-screen", "0", xvfbScreen, "-ac")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start xvfb: %w", err)
	}
	m.xvfb = cmd

	if err := waitForDisplay(display, 5*time.Second); err != nil {
		m.stopXvfb()
		return err
	}

	m.cfg.Logger.Info("browser: xvfb started",
		"display", display, "screen", xvfbScreen, "pid", cmd.Process.Pid)
	return nil
}

// waitForDisplay polls for the X socket of a display (":99" maps to
// /tmp/.X11-unix/X99).
func waitForDisplay(display string, timeout time.Duration) error {
	socket := "/tmp/.X11-unix/X" + strings.TrimPrefix(display, ":")
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socket); err == nil {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("xvfb display %s not ready after %s", display, timeout)
}

// stopXvfb kills the Xvfb process if running.
func (m *Manager) stopXvfb() {
	if m.xvfb == nil {
		return
	}
	if m.xvfb.Process != nil {
		m.xvfb.Process.Kill()
		m.xvfb.Wait()
	}
	m.cfg.Logger.Info("browser: xvfb stopped")
	m.xvfb = nil
}
