package output

import (
	"bytes"
	"strings"
	"testing"
)

func plain(t *testing.T) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
}

func TestTable_Leaderboard(t *testing.T) {
	plain(t)

	tbl := NewTable("#", "Trainer", "Score").AlignRight(0, 2)
	tbl.AddRow("1", "Priya Nair", "41.25")
	tbl.AddRow("2", "Sam Ortiz", "39.8")
	tbl.AddRow("10", "Jo", "7")

	want := strings.Join([]string{
		" #  Trainer     Score",
		"──  ──────────  ─────",
		" 1  Priya Nair  41.25",
		" 2  Sam Ortiz    39.8",
		"10  Jo              7",
	}, "\n") + "\n"
	if got := tbl.Render(); got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len = %d, want 3", tbl.Len())
	}
}

func TestTable_ShortAndLongRows(t *testing.T) {
	plain(t)

	tbl := NewTable("Member", "Plan")
	tbl.AddRow("Ana")
	tbl.AddRow("Ben", "annual", "ignored")

	lines := strings.Split(strings.TrimRight(tbl.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}
	if strings.Contains(lines[3], "ignored") {
		t.Errorf("extra cell rendered: %q", lines[3])
	}
	if lines[2] != "Ana           " {
		t.Errorf("short row = %q", lines[2])
	}
}

func TestTable_NoHeaders(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render = %q, want empty", got)
	}
}

func TestTable_FprintMatchesString(t *testing.T) {
	plain(t)

	tbl := NewTable("Room")
	tbl.AddRow("Studio B")

	var buf bytes.Buffer
	tbl.Fprint(&buf)
	if buf.String() != tbl.String() {
		t.Errorf("Fprint = %q, String = %q", buf.String(), tbl.String())
	}
}

func TestTable_WidthIgnoresANSI(t *testing.T) {
	tbl := NewTable("Status")
	tbl.AddRow("\x1b[31mwaitlisted\x1b[0m")
	if tbl.widths[0] != len("waitlisted") {
		t.Errorf("width = %d, want %d", tbl.widths[0], len("waitlisted"))
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string, int) string
		in    string
		width int
		want  string
	}{
		{"pad", pad, "yoga", 6, "yoga  "},
		{"pad wide", pad, "kettlebell", 4, "kettlebell"},
		{"padLeft", padLeft, "42", 5, "   42"},
		{"padLeft exact", padLeft, "100", 3, "100"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in, tc.width); got != tc.want {
				t.Errorf("%s(%q, %d) = %q, want %q", tc.name, tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	if !IsNoColor() {
		t.Error("IsNoColor() = false after SetNoColor(true)")
	}
	if got := StyleError.Render("over budget"); strings.Contains(got, "\x1b[") {
		t.Errorf("styled output has ANSI codes: %q", got)
	}

	SetNoColor(false)
	if IsNoColor() {
		t.Error("IsNoColor() = true after SetNoColor(false)")
	}
	if got := StyleError.GetForeground(); got != ColorError {
		t.Errorf("StyleError foreground = %v, want %v", got, ColorError)
	}
}
