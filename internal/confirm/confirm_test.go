package confirm

import (
	"strings"
	"testing"
)

type recorder struct {
	calls []bool
}

func (r *recorder) onResult(confirmed bool) { r.calls = append(r.calls, confirmed) }

func TestShowDoesNotInvokeCallback(t *testing.T) {
	l := NewLayer()
	var r recorder
	d := l.Show("Are you sure?", r.onResult)

	if len(r.calls) != 0 {
		t.Fatalf("callback fired before any activation: %v", r.calls)
	}
	if l.Len() != 1 || l.Top() != d {
		t.Fatalf("overlay not inserted")
	}
	if d.Message() != "Are you sure?" {
		t.Errorf("Message: got %q", d.Message())
	}
	if d.Answered() {
		t.Errorf("new dialog reported answered")
	}
}

func TestActivateRemovesOverlayAndReportsOnce(t *testing.T) {
	tests := []struct {
		marker string
		want   bool
	}{
		{MarkerYes, true},
		{MarkerNo, false},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			l := NewLayer()
			var r recorder
			lenInCallback := -1
			d := l.Show("Are you sure?", func(c bool) {
				lenInCallback = l.Len()
				r.onResult(c)
			})

			if !d.Activate(tt.marker) {
				t.Fatal("Activate returned false")
			}
			if l.Len() != 0 {
				t.Errorf("overlay still present after %s", tt.marker)
			}
			if lenInCallback != 0 {
				t.Errorf("overlay removed after callback, not before")
			}
			if len(r.calls) != 1 || r.calls[0] != tt.want {
				t.Fatalf("calls: got %v, want [%v]", r.calls, tt.want)
			}

			// Further activations are ignored.
			if d.Activate(MarkerYes) || d.Activate(MarkerNo) {
				t.Error("answered dialog accepted another activation")
			}
			if len(r.calls) != 1 {
				t.Errorf("callback fired again: %v", r.calls)
			}
		})
	}
}

func TestActivateUnknownMarker(t *testing.T) {
	l := NewLayer()
	var r recorder
	d := l.Show("?", r.onResult)
	if d.Activate(MarkerOverlay) {
		t.Error("overlay marker is not a control")
	}
	if l.Len() != 1 || len(r.calls) != 0 {
		t.Error("unknown marker changed state")
	}
}

func TestStackedDialogs(t *testing.T) {
	l := NewLayer()
	var first, second recorder
	d1 := l.Show("first", first.onResult)
	d2 := l.Show("second", second.onResult)

	if l.Len() != 2 || l.Top() != d2 {
		t.Fatalf("expected two stacked overlays with the newest on top")
	}

	// Answering the older one leaves the newer one open.
	d1.Activate(MarkerYes)
	if l.Len() != 1 || l.Top() != d2 {
		t.Fatalf("wrong overlay removed")
	}
	if len(first.calls) != 1 || len(second.calls) != 0 {
		t.Fatalf("callbacks: first=%v second=%v", first.calls, second.calls)
	}

	l.HandleKey("n")
	if l.Len() != 0 || len(second.calls) != 1 || second.calls[0] {
		t.Fatalf("second dialog: calls=%v len=%d", second.calls, l.Len())
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []bool
	}{
		{"y", []string{"y"}, []bool{true}},
		{"N", []string{"N"}, []bool{false}},
		{"enter defaults to No", []string{"enter"}, []bool{false}},
		{"focus left then enter", []string{"left", "enter"}, []bool{true}},
		{"tab wraps", []string{"tab", "tab", "enter"}, []bool{false}},
		{"esc is ignored", []string{"esc", "q"}, nil},
		{"space is ignored", []string{" "}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayer()
			var r recorder
			l.Show("Are you sure?", r.onResult)
			for _, k := range tt.keys {
				if !l.HandleKey(k) {
					t.Fatalf("key %q not consumed while overlay open", k)
				}
			}
			if len(r.calls) != len(tt.want) {
				t.Fatalf("calls: got %v, want %v", r.calls, tt.want)
			}
			for i := range tt.want {
				if r.calls[i] != tt.want[i] {
					t.Errorf("calls: got %v, want %v", r.calls, tt.want)
				}
			}
			if wantOpen := len(tt.want) == 0; (l.Len() == 1) != wantOpen {
				t.Errorf("overlay open=%v, want %v", l.Len() == 1, wantOpen)
			}
		})
	}

	if NewLayer().HandleKey("y") {
		t.Error("empty layer consumed a key")
	}
}

func TestView(t *testing.T) {
	l := NewLayer()
	if got := l.View(DefaultStyles(), 40, 10); got != "" {
		t.Errorf("empty layer view: %q", got)
	}
	l.Show("Are you sure?", nil)
	out := l.View(DefaultStyles(), 40, 10)
	for _, want := range []string{"Are you sure?", "Yes", "No"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestOverlayKeepsBackground(t *testing.T) {
	bg := strings.Join([]string{
		strings.Repeat("a", 40),
		"short",
		strings.Repeat("b", 40),
	}, "\n")

	l := NewLayer()
	if got := l.Overlay(DefaultStyles(), bg, 40, 3); got != bg {
		t.Errorf("empty layer changed background:\n%s", got)
	}

	st := Styles{} // bare 13x3 box, placed on rows 4-6
	l.Show("Are you sure?", nil)
	out := l.Overlay(st, bg+"\n"+strings.Repeat("c", 40)+"\n"+strings.Repeat("d", 40), 40, 12)
	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("lines: got %d, want 12", len(lines))
	}
	if lines[0] != strings.Repeat("a", 40) {
		t.Errorf("row above box changed: %q", lines[0])
	}
	if !strings.Contains(out, "Are you sure?") {
		t.Errorf("prompt missing:\n%s", out)
	}
	// rows the box covers keep their edges
	for _, ln := range lines {
		if strings.Contains(ln, "Are you sure?") && (!strings.HasPrefix(ln, "d") || !strings.HasSuffix(ln, "d")) {
			t.Errorf("background edges lost: %q", ln)
		}
	}
}
