// Package welcome is the splash screen: an atom whose electron circles
// the nucleus, then the banner and a typed-out tagline.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/ui/theme"
)

const frameEvery = 120 * time.Millisecond

const (
	// Frames of atom alone before the banner shows.
	bannerFrame = 8
	tagline     = "Learn the periodic table!"
	// The tagline types one letter per frame after the banner.
	readyFrame = bannerFrame + len(tagline)
)

// The electron sits on one of the marked orbit slots per frame.
const atomArt = `   ╭─── a ───╮
  │           │
  d    (+)    b
  │           │
   ╰─── c ───╯`

const orbitSlots = "abcd"

type frameMsg struct{}

type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	left  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns the splash. Any key leaves it for the screen built by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameEvery, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.left {
			return w, nil
		}
		w.left = true
		to := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: to} }
	}
	return w, nil
}

// Ready reports whether the intro has finished playing.
func (w *WelcomeScreen) Ready() bool { return w.frame >= readyFrame }

func (w *WelcomeScreen) atom() string {
	lit := orbitSlots[w.frame%len(orbitSlots)]
	art := strings.Map(func(r rune) rune {
		switch {
		case r == rune(lit):
			return '●'
		case strings.ContainsRune(orbitSlots, r):
			return '∘'
		}
		return r
	}, atomArt)

	nucleus := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("(+)")
	art = lipgloss.NewStyle().Foreground(theme.Secondary).Render(art)
	return strings.Replace(art, "(+)", nucleus, 1)
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{w.atom()}

	if w.frame >= bannerFrame {
		typed := tagline[:min(w.frame-bannerFrame, len(tagline))]
		parts = append(parts, "", banner(width), "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(typed))
	}
	if w.Ready() {
		parts = append(parts, "", theme.Hint.Render("press any key to continue"))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...))
}
