package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Runner executes an external notification command.
type Runner func(ctx context.Context, name string, args ...string) error

// Notifier delivers alerts as desktop notifications. Alerts that cannot be
// delivered are written to Fallback.
type Notifier struct {
	App      string
	GOOS     string
	Run      Runner
	LookPath func(string) (string, error)
	Fallback io.Writer
}

// NewNotifier returns a Notifier for the current platform.
func NewNotifier(app string) *Notifier {
	return &Notifier{
		App:      app,
		GOOS:     runtime.GOOS,
		Run:      execRun,
		LookPath: exec.LookPath,
		Fallback: os.Stderr,
	}
}

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Notify sends a single alert.
func (n *Notifier) Notify(ctx context.Context, a Alert) error {
	var name string
	var args []string
	switch n.GOOS {
	case "darwin":
		name, args = "osascript", []string{"-e", appleScript(n.App, a)}
	case "linux":
		if _, err := n.LookPath("notify-send"); err != nil {
			return n.fallback(a)
		}
		name = "notify-send"
		args = []string{"-u", urgency(a.Level), "-a", n.App, n.App + ": " + a.Title, a.Message}
	default:
		return n.fallback(a)
	}
	if err := n.Run(ctx, name, args...); err != nil {
		return n.fallback(a)
	}
	return nil
}

func appleScript(app string, a Alert) string {
	script := fmt.Sprintf(`display notification %q with title %q subtitle %q`, a.Message, app, a.Title)
	if a.Level == LevelCritical {
		script += ` sound name "Basso"`
	}
	return script
}

// urgency maps an alert level onto notify-send's urgency names.
func urgency(level string) string {
	switch level {
	case LevelCritical:
		return "critical"
	case LevelWarning:
		return "normal"
	default:
		return "low"
	}
}

func (n *Notifier) fallback(a Alert) error {
	if n.Fallback == nil {
		return nil
	}
	_, err := fmt.Fprintf(n.Fallback, "[%s] %s: %s\n", a.Level, a.Title, a.Message)
	return err
}
