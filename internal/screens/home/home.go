package home

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/screens/gemvault"
	"github.com/abhisek/chemiz/internal/screens/history"
	"github.com/abhisek/chemiz/internal/screens/play"
	"github.com/abhisek/chemiz/internal/screens/profile"
	"github.com/abhisek/chemiz/internal/screens/table"
	"github.com/abhisek/chemiz/internal/ui/components"
	"github.com/abhisek/chemiz/internal/users"
)

// celebrateAccuracy is the account accuracy, in percent, at which the
// mascot celebrates once enough questions were answered.
const (
	celebrateAccuracy = 80
	celebrateMinimum  = 10
)

type statsLoadedMsg struct {
	stats *users.Stats
	err   error
}

// HomeScreen is the main menu shown after sign-in.
type HomeScreen struct {
	env      *screen.Env
	identity users.Identity

	menu   components.Menu
	stats  *users.Stats
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates the home screen for id. logout builds the screen shown
// after LOG OUT.
func New(env *screen.Env, id users.Identity, logout func() screen.Screen) *HomeScreen {
	h := &HomeScreen{env: env, identity: id}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "PERIODIC TABLE", Action: push(func() screen.Screen { return table.New(env) })},
		{Label: "QUIZ", Action: push(func() screen.Screen { return play.New(env, id) })},
		{Label: "PROFILE", Disabled: !id.Persisted() || env.Users == nil,
			Action: push(func() screen.Screen { return profile.New(env, id) })},
		{Label: "HISTORY", Disabled: !id.Persisted() || env.Events == nil,
			Action: push(func() screen.Screen { return history.New(env, id) })},
		{Label: "GEMS", Disabled: !id.Persisted() || env.Events == nil,
			Action: push(func() screen.Screen { return gemvault.New(env, id) })},
		{Label: "LOG OUT", Action: func() tea.Cmd {
			env.Log().Info("logged out", "username", id.Username)
			next := logout()
			return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
		}},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)

	if env.UsersErr != nil {
		h.notice = "Statistics are disabled: the account store is unavailable."
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if !h.identity.Persisted() || h.env.Users == nil {
		return nil
	}
	repo, username := h.env.Users, h.identity.Username
	return func() tea.Msg {
		u, err := repo.Get(context.Background(), username)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{stats: &u.Stats}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			h.env.Log().Warn("load account stats", "username", h.identity.Username, "error", msg.err)
			h.notice = "Could not load your statistics."
			return h, nil
		}
		h.stats = msg.stats
		return h, nil
	case screen.RefreshMsg:
		return h, h.loadStats()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// Status shows the signed-in user in the header.
func (h *HomeScreen) Status() (string, string) {
	return h.identity.Username, ""
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.env.UsersErr != nil:
		return MascotAlert
	case h.stats != nil && h.stats.TotalQuestions >= celebrateMinimum:
		if pct, _ := h.stats.Accuracy(); pct >= celebrateAccuracy {
			return MascotCelebrating
		}
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cab := components.NewCabinet(width, height)
	cw := cab.Inner()

	cab.Add(renderTitle(cw, compact))
	if !compact {
		cab.Add(renderMascotBox(h.mascot(), cw))
	}

	var stats *users.Stats
	if h.identity.Persisted() {
		stats = h.stats
		if stats == nil {
			stats = &users.Stats{}
		}
	}
	cab.Add(renderStatsBar(stats, cw, compact))
	if h.notice != "" {
		cab.Add(renderNotice(h.notice, cw))
	}

	labels, disabled := h.menu.Labels(), h.menu.DisabledSet()
	if termHeight < 36 {
		cab.Add(renderArcadeMenuCompact(labels, h.menu.Selected, cw, disabled))
	} else {
		cab.Add(renderArcadeMenu(labels, h.menu.Selected, cw, disabled))
	}
	return cab.View()
}

func (h *HomeScreen) Title() string {
	return "Home"
}
