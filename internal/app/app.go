package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/screens/home"
	"github.com/abhisek/chemiz/internal/screens/login"
	"github.com/abhisek/chemiz/internal/screens/welcome"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/users"
)

// Options configures the TUI.
type Options struct {
	Env *screen.Env

	// SkipSplash starts on the login screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel wires the welcome, login and home screens together.
func newAppModel(opts Options) AppModel {
	env := opts.Env

	var toLogin func() screen.Screen
	toHome := func(id users.Identity) screen.Screen {
		env.Log().Info("signed in", "username", id.Username, "role", id.Role)
		return home.New(env, id, toLogin)
	}
	toLogin = func() screen.Screen {
		return login.New(env, toHome)
	}

	var initial screen.Screen = welcome.New(toLogin)
	if opts.SkipSplash {
		initial = toLogin()
	}
	return AppModel{router: router.New(initial, env.Log())}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscCapturer); ok && c.CapturesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}

	var chrome layout.Chrome
	active := m.router.Active()
	if active != nil {
		chrome.Title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			chrome.User, chrome.Score = sp.Status()
		}
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		chrome.Hints = kp.KeyHints()
	} else {
		chrome.Hints = layout.DefaultHints(m.router.Depth() > 1)
	}

	v.SetContent(chrome.Render(m.width, m.height, m.router.View))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
