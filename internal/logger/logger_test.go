package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestLogger_MemoryOnly(t *testing.T) {
	l := New("")
	l.now = fixedClock
	l.Log("initialized")
	l.Logf("step %d", 3)

	got := l.Lines()
	want := []string{
		"[2024-03-01 12:30:00] initialized",
		"[2024-03-01 12:30:00] step 3",
	}
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	got[0] = "mutated"
	if l.Lines()[0] == "mutated" {
		t.Error("Lines should return a copy")
	}
}

func TestLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sim.txt")
	l := New(path)
	l.now = fixedClock
	l.Log("a")
	l.Log("b")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "] b") {
		t.Errorf("file = %q, want two stamped lines", data)
	}
	if l.Path() != path {
		t.Errorf("Path() = %q, want %q", l.Path(), path)
	}
}

func TestLogger_Tail(t *testing.T) {
	l := New("")
	for _, s := range []string{"1", "2", "3"} {
		l.Log(s)
	}
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{2, 2},
		{10, 3},
	}
	for _, tt := range tests {
		if got := l.Tail(tt.n); len(got) != tt.want {
			t.Errorf("Tail(%d) has %d lines, want %d", tt.n, len(got), tt.want)
		}
	}
	if got := l.Tail(1); !strings.HasSuffix(got[0], "] 3") {
		t.Errorf("Tail(1) = %v, want last line", got)
	}
}
