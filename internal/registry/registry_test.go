package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/flappish/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered variant should exist")
	}
	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub zz-stub"
		}
	}
	if !found {
		t.Error("List should include the stub with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-variant")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	Register("zz-b", func() Game { return &stubGame{id: "zz-b"} })
	Register("zz-a", func() Game { return &stubGame{id: "zz-a"} })

	var ids []string
	for _, info := range List() {
		if info.ID == "zz-a" || info.ID == "zz-b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "zz-b" || ids[1] != "zz-a" {
		t.Errorf("List order = %v, want [zz-b zz-a]", ids)
	}
}

func TestListReturnsCopy(t *testing.T) {
	Register("zz-copy", func() Game { return &stubGame{id: "zz-copy"} })

	list := List()
	list[0].ID = "mutated"
	if List()[0].ID == "mutated" {
		t.Error("List should not expose the registry's own slice")
	}
}
