package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
)

type loginStub struct{}

func (loginStub) Init() tea.Cmd                             { return nil }
func (l loginStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return l, nil }
func (loginStub) View(int, int) string                      { return "login" }
func (loginStub) Title() string                             { return "Log In" }

func splash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return loginStub{}
	}), &built
}

func advance(t *testing.T, w *WelcomeScreen, frames int) {
	t.Helper()
	for range frames {
		if _, cmd := w.Update(frameMsg{}); cmd == nil {
			t.Fatal("a frame must schedule the next one")
		}
	}
}

func TestIntroStages(t *testing.T) {
	w, _ := splash()

	view := w.View(100, 30)
	if !strings.Contains(view, "(+)") || !strings.Contains(view, "●") {
		t.Fatalf("expected the atom first:\n%s", view)
	}
	if strings.Contains(view, "██") {
		t.Error("banner shown too early")
	}

	advance(t, w, bannerFrame+5)
	view = w.View(100, 30)
	if !strings.Contains(view, "██") {
		t.Error("banner should show after the atom intro")
	}
	if !strings.Contains(view, "Learn") || strings.Contains(view, "periodic table!") {
		t.Errorf("tagline should be partly typed:\n%s", view)
	}
	if w.Ready() {
		t.Error("not ready while typing")
	}

	advance(t, w, len(tagline))
	view = w.View(100, 30)
	if !w.Ready() || !strings.Contains(view, "Learn the periodic table!") || !strings.Contains(view, "press any key") {
		t.Errorf("intro should have finished:\n%s", view)
	}
}

func TestElectronMoves(t *testing.T) {
	w, _ := splash()
	first := w.atom()
	advance(t, w, 1)
	if w.atom() == first {
		t.Error("electron should move between frames")
	}
	advance(t, w, len(orbitSlots)-1)
	if w.atom() != first {
		t.Error("electron should complete an orbit in len(orbitSlots) frames")
	}
	if strings.Count(first, "●") != 1 || strings.Count(first, "∘") != len(orbitSlots)-1 {
		t.Errorf("one electron expected:\n%s", first)
	}
}

func TestNarrowBanner(t *testing.T) {
	if banner(40) == banner(80) {
		t.Error("narrow terminals get the compact banner")
	}
	if !strings.Contains(banner(40), "C · H") {
		t.Errorf("compact banner = %q", banner(40))
	}
}

func TestAnyKeyLeavesOnce(t *testing.T) {
	w, built := splash()
	advance(t, w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("a key during the intro should leave")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen == nil {
		t.Fatalf("expected ReplaceScreenMsg with a screen, got %#v", cmd())
	}

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'x'}); cmd != nil {
		t.Error("second key should do nothing")
	}
	if *built != 1 {
		t.Errorf("next screen built %d times, want 1", *built)
	}
}

func TestStaysWithoutKey(t *testing.T) {
	w, built := splash()
	advance(t, w, readyFrame*3)
	if *built != 0 {
		t.Error("splash must wait for a key")
	}
	if w.Title() != "" {
		t.Errorf("Title() = %q", w.Title())
	}
}
