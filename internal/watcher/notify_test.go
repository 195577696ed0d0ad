package watcher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

func testNotifier(goos string, runErr error, hasNotifySend bool) (*Notifier, *[]call, *bytes.Buffer) {
	var calls []call
	var buf bytes.Buffer
	n := &Notifier{
		App:  "gymdesk",
		GOOS: goos,
		Run: func(_ context.Context, name string, args ...string) error {
			calls = append(calls, call{name, args})
			return runErr
		},
		LookPath: func(string) (string, error) {
			if hasNotifySend {
				return "/usr/bin/notify-send", nil
			}
			return "", errors.New("not found")
		},
		Fallback: &buf,
	}
	return n, &calls, &buf
}

func TestNotify_Linux(t *testing.T) {
	n, calls, buf := testNotifier("linux", nil, true)
	alert := Alert{Level: LevelCritical, Title: "Over budget: Equipment", Message: "$120.00 over"}

	if err := n.Notify(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(*calls))
	}
	c := (*calls)[0]
	if c.name != "notify-send" {
		t.Errorf("command = %q, want notify-send", c.name)
	}
	want := []string{"-u", "critical", "-a", "gymdesk", "gymdesk: Over budget: Equipment", "$120.00 over"}
	if strings.Join(c.args, "|") != strings.Join(want, "|") {
		t.Errorf("args = %v, want %v", c.args, want)
	}
	if buf.Len() != 0 {
		t.Errorf("fallback written: %q", buf.String())
	}
}

func TestNotify_LinuxWithoutNotifySend(t *testing.T) {
	n, calls, buf := testNotifier("linux", nil, false)
	alert := Alert{Level: LevelInfo, Title: "Members added", Message: "2 new members (42 total)"}

	if err := n.Notify(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("calls = %d, want 0", len(*calls))
	}
	if got, want := buf.String(), "[info] Members added: 2 new members (42 total)\n"; got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

func TestNotify_DarwinCriticalPlaysSound(t *testing.T) {
	n, calls, _ := testNotifier("darwin", nil, false)
	if err := n.Notify(context.Background(), Alert{Level: LevelCritical, Title: "t", Message: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0].name != "osascript" {
		t.Fatalf("calls = %+v, want one osascript call", *calls)
	}
	if script := (*calls)[0].args[1]; !strings.Contains(script, `sound name`) {
		t.Errorf("script %q has no sound", script)
	}
}

func TestNotify_RunFailureFallsBack(t *testing.T) {
	n, _, buf := testNotifier("darwin", errors.New("boom"), false)
	if err := n.Notify(context.Background(), Alert{Level: LevelWarning, Title: "t", Message: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "[warning] t: m") {
		t.Errorf("fallback = %q", buf.String())
	}
}

func TestNotify_UnsupportedPlatform(t *testing.T) {
	n, calls, buf := testNotifier("plan9", nil, true)
	if err := n.Notify(context.Background(), Alert{Level: LevelInfo, Title: "t", Message: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 0 || buf.Len() == 0 {
		t.Errorf("calls = %d, fallback = %q", len(*calls), buf.String())
	}
}

func TestUrgency(t *testing.T) {
	tests := map[string]string{
		LevelCritical: "critical",
		LevelWarning:  "normal",
		LevelInfo:     "low",
		"":            "low",
	}
	for level, want := range tests {
		if got := urgency(level); got != want {
			t.Errorf("urgency(%q) = %q, want %q", level, got, want)
		}
	}
}
