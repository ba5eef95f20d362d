package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/flappish/internal/config"
	"github.com/vovakirdan/flappish/internal/core"
	"github.com/vovakirdan/flappish/internal/games/flappy"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "hello")
	s.DrawTextColor(2, 2, "ab", core.ColorGround)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "hello") {
		t.Errorf("first line %q should contain hello", lines[0])
	}
	if !strings.Contains(lines[2], "ab") {
		t.Errorf("last line %q should contain ab", lines[2])
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	// Unknown colours render unstyled instead of panicking.
	got := styleFor(core.Color(200)).Render("x")
	if !strings.Contains(got, "x") {
		t.Errorf("styleFor(unknown).Render = %q", got)
	}
}

func TestEveryRoleHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorText; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("colour role %d has no style", c)
		}
	}
}

func TestScreenRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewScreenRenderer(&buf, 80, 24)

	s := flappy.NewSession(config.DefaultFlappyConfig(config.VariantFlappish), 120, 1)
	r.RenderFrame(s.Snapshot())

	out := buf.String()
	if !strings.HasPrefix(out, "\x1b[H") {
		t.Errorf("frame should start by homing the cursor, got %q", out[:min(len(out), 8)])
	}
	if !strings.Contains(out, "Score: 0") {
		t.Error("frame should contain the score HUD")
	}
	if !strings.ContainsRune(out, flappy.BirdChar) {
		t.Error("frame should contain the bird")
	}
}
