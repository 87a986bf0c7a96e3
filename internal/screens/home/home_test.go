package home

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/chemiz/internal/auth"
	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/screen"
	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return stubScreen{}, nil }
func (stubScreen) View(int, int) string                    { return "login" }
func (stubScreen) Title() string                           { return "Login" }

func testEnv(t *testing.T) *screen.Env {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	repo := users.NewMemory()
	return &screen.Env{
		Catalog: cat,
		Users:   repo,
		Auth:    auth.NewService(repo, auth.Config{BcryptCost: bcrypt.MinCost}, nil),
	}
}

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "chemiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func logout() screen.Screen { return stubScreen{} }

func selectLabel(t *testing.T, h *HomeScreen, label string) {
	t.Helper()
	for i, l := range h.menu.Labels() {
		if l == label {
			h.menu.Selected = i
			return
		}
	}
	t.Fatalf("menu item %q not found", label)
}

func TestGuestMenu(t *testing.T) {
	h := New(testEnv(t), users.Guest(), logout)

	disabled := h.menu.DisabledSet()
	if !disabled[2] {
		t.Error("PROFILE should be disabled for guests")
	}
	if !disabled[3] {
		t.Error("HISTORY should be disabled for guests")
	}
	if !disabled[4] {
		t.Error("GEMS should be disabled for guests")
	}

	env := testEnv(t)
	env.Events = openEvents(t)
	if !New(env, users.Guest(), logout).menu.DisabledSet()[3] {
		t.Error("HISTORY should be disabled for guests even with an event store")
	}
	if h.Init() != nil {
		t.Error("guests have no stats to load")
	}
	if !strings.Contains(h.View(120, 40), "GUEST MODE") {
		t.Error("expected guest mode banner")
	}
}

func TestLoadsAccountStats(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()
	if err := env.Auth.Register(ctx, "alice", "secret1", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := env.Auth.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	u.Stats = users.Stats{TestsCompleted: 2, CorrectAnswers: 9, TotalQuestions: 10}
	if err := env.Users.Upsert(ctx, *u); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	h := New(env, u.Identity(), logout)
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected a stats load command")
	}
	h.Update(cmd())

	if h.stats == nil || h.stats.CorrectAnswers != 9 {
		t.Fatalf("unexpected stats: %+v", h.stats)
	}
	if h.mascot() != MascotCelebrating {
		t.Error("expected the mascot to celebrate at 90% accuracy")
	}
	if !strings.Contains(h.View(120, 40), "9/10") {
		t.Error("stats bar should show 9/10")
	}

	if h.menu.DisabledSet()[2] {
		t.Error("PROFILE should be enabled for a persisted user")
	}
	if _, cmd := h.Update(screen.RefreshMsg{}); cmd == nil {
		t.Error("refresh should reload stats")
	}
}

func TestUnavailableStoreShowsNotice(t *testing.T) {
	env := testEnv(t)
	env.UsersErr = errors.New("sheet unreachable")

	h := New(env, users.Guest(), logout)
	if h.mascot() != MascotAlert {
		t.Error("expected the alert mascot")
	}
	if !strings.Contains(h.View(120, 40), "Statistics are disabled") {
		t.Error("expected the unavailable notice")
	}
}

func TestLogOutResetsToLogin(t *testing.T) {
	h := New(testEnv(t), users.Guest(), logout)
	selectLabel(t, h, "LOG OUT")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from LOG OUT")
	}
	msg, ok := cmd().(router.ResetScreenMsg)
	if !ok {
		t.Fatalf("expected ResetScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Login" {
		t.Errorf("expected the login screen, got %q", msg.Screen.Title())
	}
}

func TestQuizPushesPlayScreen(t *testing.T) {
	h := New(testEnv(t), users.Guest(), logout)
	selectLabel(t, h, "QUIZ")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from QUIZ")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("expected PushScreenMsg, got %T", cmd())
	}
}
