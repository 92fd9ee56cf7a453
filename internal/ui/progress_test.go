package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"codinglint/internal/driver"
)

func TestApplyEvents(t *testing.T) {
	m := newProgressModel("checking", nil)
	events := []driver.Event{
		{File: "a.py", Stage: driver.StageCheck, Status: driver.StatusQueued},
		{File: "b.py", Stage: driver.StageCheck, Status: driver.StatusQueued},
		{File: "c.py", Stage: driver.StageLoad, Status: driver.StatusError, Err: errors.New("denied")},
		{File: "a.py", Stage: driver.StageCheck, Status: driver.StatusWorking},
		{File: "a.py", Stage: driver.StageCheck, Status: driver.StatusDone, Found: 1},
		{File: "b.py", Stage: driver.StageCheck, Status: driver.StatusDone, Cached: true},
		// повтор финального события не должен считаться дважды
		{File: "b.py", Stage: driver.StageCheck, Status: driver.StatusDone, Cached: true},
		{Stage: driver.StageCheck, Status: driver.StatusDone},
	}
	for _, ev := range events {
		m.applyEvent(ev)
	}

	if len(m.items) != 3 || m.finished != 3 || m.cached != 1 || m.failed != 1 || m.found != 1 {
		t.Fatalf("model = items:%d finished:%d cached:%d failed:%d found:%d",
			len(m.items), m.finished, m.cached, m.failed, m.found)
	}
	want := map[string]string{"a.py": "done", "b.py": "cached", "c.py": "error"}
	for _, item := range m.items {
		if item.status != want[item.path] {
			t.Errorf("%s status = %q, want %q", item.path, item.status, want[item.path])
		}
	}
}

func TestViewAndQuit(t *testing.T) {
	ch := make(chan driver.Event)
	close(ch)
	m := newProgressModel("checking", ch)
	m.applyEvent(driver.Event{File: "pkg/module.py", Stage: driver.StageCheck, Status: driver.StatusDone, Found: 2})

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel must yield doneMsg, got %T", msg)
	}
	if _, cmd := m.Update(msg); cmd == nil {
		t.Fatal("doneMsg must return tea.Quit")
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"done: checking 1/1", "pkg/module.py (2)", "found 2, cached 0, failed 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.py", 20, "short.py"},
		{"very/long/path/module.py", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
