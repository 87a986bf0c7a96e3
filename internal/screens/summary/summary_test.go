package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/chemiz/internal/gems"
	"github.com/abhisek/chemiz/internal/quiz"
	"github.com/abhisek/chemiz/internal/router"
	"github.com/abhisek/chemiz/internal/session"
	"github.com/abhisek/chemiz/internal/stats"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Username: "alice",
		Duration: 4*time.Minute + 5*time.Second,
		Stats:    stats.SessionStats{Score: 3, Total: 4},
		Levels: []session.LevelResult{
			{Level: quiz.LevelEasy, Attempted: 3, Correct: 3},
			{Level: quiz.LevelHard, Attempted: 1, Correct: 0},
		},
		Discarded: 2,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"3/4 (75%)", "alice", "4:05", "easy", "hard", "2 question(s) skipped"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_Gems(t *testing.T) {
	sum := testSummary()
	sum.BestStreak = 5
	sum.Gems = []gems.GemAward{{Type: gems.GemStreak, Rarity: gems.RarityCommon, Reason: "5 correct in a row!"}}

	view := New(sum).View(80, 30)
	for _, want := range []string{"Best streak: 5", "Gems earned", "5 correct in a row!"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
	if strings.Contains(New(testSummary()).View(80, 30), "Gems earned") {
		t.Error("gems section should be hidden when none were earned")
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(nil)
	if view := s.View(80, 24); view != "" {
		t.Errorf("expected empty view for nil summary, got %q", view)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testSummary())
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		if cmd == nil {
			t.Fatalf("expected a command on key %q", code)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg, got %T", cmd())
		}
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
