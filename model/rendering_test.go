package model

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"
)

func TestTerminalRendererDisplay(t *testing.T) {
	u := newTestUniverse(t, 3, 2, Coord{0, 0}, Coord{1, 2})

	var out bytes.Buffer
	if err := NewTerminalRenderer(&out).Display(u.Cells()); err != nil {
		t.Fatalf("Display: %v", err)
	}

	want := gridPosBlock + gridPosEmpty + gridPosEmpty + "\n" +
		gridPosEmpty + gridPosEmpty + gridPosBlock + "\n"
	if got := out.String(); got != want {
		t.Fatalf("Display wrote %q, want %q", got, want)
	}
	if strings.Count(out.String(), "\n") != 2 {
		t.Fatalf("expected one line per row")
	}
}

func TestTerminalRendererClearWritesToOut(t *testing.T) {
	if _, err := exec.LookPath(clearCmd); err != nil {
		t.Skipf("%s not installed", clearCmd)
	}
	t.Setenv("TERM", "xterm")

	var out bytes.Buffer
	err := NewTerminalRenderer(&out).Clear()
	if err != nil {
		if !strings.HasPrefix(err.Error(), "[Clear]") {
			t.Fatalf("unexpected error format: %v", err)
		}
		t.Skipf("clear failed in this environment: %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("clear sequence was not written to the renderer's writer")
	}
}
