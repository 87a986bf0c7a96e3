// Package login is the entry screen: sign in, register, try the demo
// account or continue as a guest.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chemiz/internal/auth"
	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/ui/components"
	"github.com/abhisek/chemiz/internal/ui/layout"
	"github.com/abhisek/chemiz/internal/ui/theme"
	"github.com/abhisek/chemiz/internal/users"
)

type mode int

const (
	modeMenu mode = iota
	modeLogin
	modeRegister
)

// authDoneMsg carries the result of a login, registration or demo login.
type authDoneMsg struct {
	user       *users.User
	registered string // username of a new account
	err        error
}

// LoginScreen lets the player pick an identity.
type LoginScreen struct {
	env  *screen.Env
	next func(users.Identity) screen.Screen

	mode     mode
	menu     components.Menu
	username components.TextInput
	password components.TextInput
	confirm  components.TextInput
	email    components.TextInput
	focus    int

	busy   bool
	errMsg string
	notice string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)
var _ screen.EscCapturer = (*LoginScreen)(nil)

// New creates the login screen. next builds the screen shown once an
// identity is established.
func New(env *screen.Env, next func(users.Identity) screen.Screen) *LoginScreen {
	s := &LoginScreen{
		env:      env,
		next:     next,
		username: components.NewTextInput("Username", "at least 3 characters", false, 32),
		password: components.NewTextInput("Password", "at least 6 characters", true, 64),
		confirm:  components.NewTextInput("Confirm", "repeat the password", true, 64),
		email:    components.NewTextInput("Email", "optional", false, 64),
	}

	accounts := env.UsersAvailable()
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "LOG IN", Disabled: !accounts, Action: func() tea.Cmd { return s.openForm(modeLogin) }},
		{Label: "REGISTER", Disabled: !accounts, Action: func() tea.Cmd { return s.openForm(modeRegister) }},
		{Label: "TRY DEMO", Hint: auth.DemoUsername + " / " + auth.DemoPassword, Disabled: !accounts, Action: s.demo},
		{Label: "PLAY AS GUEST", Hint: "statistics are not saved", Action: s.guest},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	})

	if !accounts {
		s.notice = "Accounts are unavailable, continuing in guest mode."
		if env.UsersErr != nil {
			s.notice += "\n" + env.UsersErr.Error()
		}
	}
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return nil
}

func (s *LoginScreen) Title() string {
	return "Welcome"
}

// CapturesEsc keeps the screen in charge of Esc while a form is open.
func (s *LoginScreen) CapturesEsc() bool {
	return s.mode != modeMenu
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeMenu {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) fields() []*components.TextInput {
	if s.mode == modeRegister {
		return []*components.TextInput{&s.username, &s.password, &s.confirm, &s.email}
	}
	return []*components.TextInput{&s.username, &s.password}
}

func (s *LoginScreen) openForm(m mode) tea.Cmd {
	s.mode = m
	s.errMsg = ""
	s.password.Reset()
	s.confirm.Reset()
	s.email.Reset()
	return s.setFocus(0)
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	fields := s.fields()
	s.focus = (i + len(fields)) % len(fields)
	for j, f := range fields {
		if j != s.focus {
			f.Blur()
		}
	}
	return fields[s.focus].Focus()
}

func (s *LoginScreen) guest() tea.Cmd {
	id := users.Guest()
	if s.env.Auth != nil {
		id = s.env.Auth.Guest()
	}
	next := s.next(id)
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

func (s *LoginScreen) demo() tea.Cmd {
	s.busy = true
	svc := s.env.Auth
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := svc.SeedDemo(ctx); err != nil {
			return authDoneMsg{err: err}
		}
		u, err := svc.Login(ctx, auth.DemoUsername, auth.DemoPassword)
		return authDoneMsg{user: u, err: err}
	}
}

func (s *LoginScreen) submit() tea.Cmd {
	username := strings.TrimSpace(s.username.Value())
	password := s.password.Value()
	email := strings.TrimSpace(s.email.Value())
	svc := s.env.Auth
	register := s.mode == modeRegister

	if register && password != s.confirm.Value() {
		s.errMsg = "Passwords do not match"
		s.confirm.Reset()
		return s.setFocus(2)
	}

	s.busy = true
	s.errMsg = ""
	return func() tea.Msg {
		ctx := context.Background()
		if register {
			if err := svc.Register(ctx, username, password, email); err != nil {
				return authDoneMsg{err: err}
			}
			return authDoneMsg{registered: username}
		}
		u, err := svc.Login(ctx, username, password)
		return authDoneMsg{user: u, err: err}
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		return s.handleAuthDone(msg)

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		if s.mode == modeMenu {
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		}
		return s.handleFormKey(msg)
	}

	if s.mode != modeMenu {
		return s, s.updateFocused(msg)
	}
	return s, nil
}

func (s *LoginScreen) handleFormKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeMenu
		s.errMsg = ""
		for _, f := range s.fields() {
			f.Blur()
		}
		return s, nil
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "enter":
		if s.focus < len(s.fields())-1 {
			return s, s.setFocus(s.focus + 1)
		}
		return s, s.submit()
	}
	return s, s.updateFocused(msg)
}

func (s *LoginScreen) updateFocused(msg tea.Msg) tea.Cmd {
	fields := s.fields()
	if s.focus >= len(fields) {
		return nil
	}
	var cmd tea.Cmd
	*fields[s.focus], cmd = fields[s.focus].Update(msg)
	return cmd
}

func (s *LoginScreen) handleAuthDone(msg authDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.err != nil {
		s.errMsg = describeError(msg.err)
		s.env.Log().Info("sign-in failed", "error", msg.err)
		return s, nil
	}

	if msg.registered != "" {
		cmd := s.openForm(modeLogin)
		s.username.Model.SetValue(msg.registered)
		s.notice = "Account created. Log in to start."
		return s, tea.Batch(cmd, s.setFocus(1))
	}

	next := s.next(msg.user.Identity())
	return s, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

// describeError turns credential errors into short user-facing text.
func describeError(err error) string {
	var re *auth.RegistrationError
	var ae *auth.AuthError
	switch {
	case errors.As(err, &re), errors.As(err, &ae):
		return err.Error()
	case users.IsUnavailable(err):
		return "The account store is unavailable. Try again or play as guest."
	default:
		return "Something went wrong: " + err.Error()
	}
}

func (s *LoginScreen) View(width, height int) string {
	cab := components.NewCabinet(width, height)
	cab.Line(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "C · H · E · M · I · Z")

	if s.mode == modeMenu {
		cab.Line(lipgloss.NewStyle(), s.menu.View())
	} else {
		heading := "Log in"
		if s.mode == modeRegister {
			heading = "Create an account"
		}
		form := []string{theme.Title.Render(heading), ""}
		for _, f := range s.fields() {
			form = append(form, f.View())
		}
		if s.busy {
			form = append(form, "", theme.Hint.Render("Checking..."))
		}
		cab.Add(components.Card(strings.Join(form, "\n"), cab.Inner()))
	}

	return cab.Line(theme.Incorrect, s.errMsg).Line(theme.Notice, s.notice).View()
}
