package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/testutil"
)

var now = time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)

func useMono(t *testing.T) {
	t.Helper()
	SetTheme(ThemeMono)
	t.Cleanup(func() { SetTheme(ThemeClassic) })
}

func fixture() []model.Todo {
	return []model.Todo{
		{ID: "1", Text: "Buy milk"},
		{ID: "2", Text: "Pay rent", DueDate: "2024-03-01"},
		{ID: "3", Text: "File taxes", DueDate: "2024-04-15", Completed: true},
		{ID: "4", Text: "Old chore", DueDate: "2024-01-01", Completed: true},
	}
}

func render(lines []string) string {
	return StripANSI(strings.Join(lines, "\n")) + "\n"
}

func TestLinesGolden(t *testing.T) {
	useMono(t)
	testutil.GoldenString(t, "lines", render(Lines(fixture(), now)))
}

func TestGroupLinesGolden(t *testing.T) {
	useMono(t)
	testutil.GoldenString(t, "group", render(GroupLines(fixture(), now)))
}

func TestLinesEmpty(t *testing.T) {
	got := Lines(nil, now)
	if len(got) != 1 || StripANSI(got[0]) != EmptyState {
		t.Errorf("empty list: got %q", got)
	}
}

func TestLineTruncatesLongText(t *testing.T) {
	useMono(t)
	long := strings.Repeat("x", 100)
	got := StripANSI(Line(model.Todo{Text: long}, now))
	if want := "[ ] " + strings.Repeat("x", 77) + "..."; got != want {
		t.Errorf("got %q", got)
	}
}

func TestHeaderCounts(t *testing.T) {
	useMono(t)
	got := StripANSI(Header(fixture()))
	if got != "Todos  x 2  - 2  Total 4" {
		t.Errorf("Header: got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 2, "█████ 100%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d): got %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestPanelAndMessages(t *testing.T) {
	useMono(t)
	var buf bytes.Buffer
	Panel(&buf, Summary(fixture(), now, false))
	out := StripANSI(buf.String())
	for _, want := range []string{"Todos", "Pay rent", "(overdue)", "+"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	OK(&buf, "added")
	Fail(&buf, "boom")
	if got := StripANSI(buf.String()); got != "ok: added\nerror: boom\n" {
		t.Errorf("messages: got %q", got)
	}
}

func TestValidTheme(t *testing.T) {
	for _, name := range []string{"classic", "NEON", "mono"} {
		if !ValidTheme(name) {
			t.Errorf("ValidTheme(%q) = false", name)
		}
	}
	if ValidTheme("solarized") {
		t.Error("unknown theme accepted")
	}
}
