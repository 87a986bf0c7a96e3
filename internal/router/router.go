// Package router keeps the stack of open screens. Screens navigate by
// returning one of the *ScreenMsg messages from a command.
package router

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemiz/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct{ Screen screen.Screen }

// PopScreenMsg closes the current screen. The bottom screen never closes.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen.
type ReplaceScreenMsg struct{ Screen screen.Screen }

// ResetScreenMsg closes every screen and opens Screen, as on logout.
type ResetScreenMsg struct{ Screen screen.Screen }

type Router struct {
	stack []screen.Screen
	log   *slog.Logger
}

// New starts a router on initial. Transitions are logged at debug level
// when log is non-nil.
func New(initial screen.Screen, log *slog.Logger) *Router {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Router{stack: []screen.Screen{initial}, log: log}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return r.enter("push", s)
}

// Pop returns a RefreshMsg command so the uncovered screen can reload
// anything that changed while it was hidden. Nil at the bottom.
func (r *Router) Pop() tea.Cmd {
	n := len(r.stack)
	if n < 2 {
		return nil
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
	r.log.Debug("screen pop", "active", r.Active().Title(), "depth", n-1)
	return func() tea.Msg { return screen.RefreshMsg{} }
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.stack); n > 0 {
		r.stack = r.stack[:n-1]
	}
	r.stack = append(r.stack, s)
	return r.enter("replace", s)
}

func (r *Router) Reset(s screen.Screen) tea.Cmd {
	clear(r.stack)
	r.stack = append(r.stack[:0], s)
	return r.enter("reset", s)
}

func (r *Router) enter(op string, s screen.Screen) tea.Cmd {
	r.log.Debug("screen "+op, "active", s.Title(), "depth", len(r.stack))
	return s.Init()
}

// Active is the top screen, nil only for an empty stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	case ResetScreenMsg:
		return r.Reset(m.Screen)
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
