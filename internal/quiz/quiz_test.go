package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/chemiz/internal/catalog"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

// miniCatalog builds a catalog from (symbol, valencies) pairs with
// sequential atomic numbers.
func miniCatalog(t *testing.T, specs ...elementSpec) *catalog.Catalog {
	t.Helper()
	var b strings.Builder
	b.WriteString(`{"version":"v1.0.0","elements":[`)
	for i, s := range specs {
		if i > 0 {
			b.WriteString(",")
		}
		config := s.config
		if config == "" {
			config = "cfg-" + s.symbol
		}
		vals := make([]string, len(s.valencies))
		for j, v := range s.valencies {
			vals[j] = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, `{"symbol":%q,"name":"Name%s","atomic_number":%d,"atomic_mass":%d,"type":%q,
			"valencies":[%s],"oxidation_states":[],"electron_configuration":%q}`,
			s.symbol, s.symbol, i+1, i+1, s.typ(), strings.Join(vals, ","), config)
	}
	b.WriteString("]}")

	c, err := catalog.Load(strings.NewReader(b.String()))
	require.NoError(t, err)
	return c
}

type elementSpec struct {
	symbol    string
	valencies []string
	config    string
	elemType  catalog.ElementType
}

func (s elementSpec) typ() string {
	if s.elemType == "" {
		return string(catalog.TypeNonmetal)
	}
	return string(s.elemType)
}

func assertWellFormed(t *testing.T, q *Question) {
	t.Helper()
	assert.Len(t, q.Options, OptionCount)
	assert.Contains(t, q.Options, q.Correct)
}

func assertDistinct(t *testing.T, options []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, o := range options {
		assert.False(t, seen[o], "duplicate option %q in %v", o, options)
		seen[o] = true
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels() {
		got, err := ParseLevel(strings.ToUpper(string(l)))
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	_, err := ParseLevel("expert")
	assert.Error(t, err)
}

func TestEasy_EveryElement(t *testing.T) {
	cat := defaultCatalog(t)
	g := NewGenerator(cat, seeded(1))

	seen := map[string]bool{}
	for i := 0; i < 2000; i++ {
		q, err := g.NewQuestion(LevelEasy, catalog.Filter{})
		require.NoError(t, err)

		e, ok := cat.Get(q.Symbol)
		require.True(t, ok)
		assert.Equal(t, e.Symbol, q.Correct)
		assert.Equal(t, fmt.Sprintf("What is the symbol of %s?", e.Name), q.Prompt)
		assertWellFormed(t, q)
		assertDistinct(t, q.Options)
		for _, o := range q.Options {
			_, ok := cat.Get(o)
			assert.True(t, ok, "option %q is not a catalog symbol", o)
		}
		seen[q.Symbol] = true
	}
	assert.Greater(t, len(seen), 100, "subjects should cover most of the catalog")
}

func TestHard_CorrectIsConfiguration(t *testing.T) {
	cat := defaultCatalog(t)
	g := NewGenerator(cat, seeded(2))

	for i := 0; i < 500; i++ {
		q, err := g.NewQuestion(LevelHard, catalog.Filter{})
		require.NoError(t, err)

		e, _ := cat.Get(q.Symbol)
		assert.Equal(t, e.ElectronConfiguration, q.Correct)
		assertWellFormed(t, q)

		matches := 0
		for _, o := range q.Options {
			if o == q.Correct {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "correct configuration must appear once")
	}
}

func TestHard_DistractorsMayRepeat(t *testing.T) {
	cat := miniCatalog(t,
		elementSpec{symbol: "A"}, elementSpec{symbol: "B"},
		elementSpec{symbol: "C"}, elementSpec{symbol: "D"},
	)
	g := NewGenerator(cat, seeded(3))

	sawRepeat := false
	for i := 0; i < 200 && !sawRepeat; i++ {
		q, err := g.NewQuestion(LevelHard, catalog.Filter{})
		require.NoError(t, err)
		assertWellFormed(t, q)
		seen := map[string]bool{}
		for _, o := range q.Options {
			if seen[o] {
				sawRepeat = true
			}
			seen[o] = true
		}
	}
	assert.True(t, sawRepeat)
}

func TestMedium_OxygenScenario(t *testing.T) {
	cat := miniCatalog(t,
		elementSpec{symbol: "H", valencies: []string{"I"}},
		elementSpec{symbol: "O", valencies: []string{"II"}},
	)
	g := NewGenerator(cat, seeded(4))

	for i := 0; i < 50; i++ {
		q, err := g.NewQuestion(LevelMedium, catalog.Filter{MinNumber: 2, MaxNumber: 2})
		require.NoError(t, err)
		assert.Equal(t, "O", q.Symbol)
		assert.Equal(t, "II", q.Correct)
		assert.Equal(t, "What is the valency of O?", q.Prompt)
		assertWellFormed(t, q)
		assertDistinct(t, q.Options)
		for _, o := range q.Options {
			assert.Contains(t, ValencyTokens, o)
		}
	}
}

func TestMedium_ValencyCounts(t *testing.T) {
	tests := []struct {
		name        string
		valencies   []string
		wantCorrect string
		mustContain []string
	}{
		{"none", nil, "0", []string{"0"}},
		{"one", []string{"III"}, "III", []string{"III"}},
		{"duplicates", []string{"II", "II", "IV"}, "II", []string{"II", "IV"}},
		{"four", []string{"II", "IV", "VI", "VIII"}, "II", []string{"II", "IV", "VI", "VIII"}},
		{"five", []string{"III", "I", "II", "IV", "V"}, "III", []string{"III", "I", "II", "IV"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := miniCatalog(t, elementSpec{symbol: "X", valencies: tt.valencies})
			g := NewGenerator(cat, seeded(5))

			for i := 0; i < 30; i++ {
				q, err := g.NewQuestion(LevelMedium, catalog.Filter{})
				require.NoError(t, err)
				assert.Equal(t, tt.wantCorrect, q.Correct)
				assertWellFormed(t, q)
				assertDistinct(t, q.Options)
				for _, want := range tt.mustContain {
					assert.Contains(t, q.Options, want)
				}
			}
		})
	}
}

func TestMedium_ElementsWithManyValencies(t *testing.T) {
	cat := defaultCatalog(t)
	g := NewGenerator(cat, seeded(6))

	mn, _ := cat.Get("Mn")
	require.Greater(t, len(mn.Valencies), OptionCount)

	q, err := g.NewQuestion(LevelMedium, catalog.Filter{MinNumber: mn.AtomicNumber, MaxNumber: mn.AtomicNumber})
	require.NoError(t, err)
	assert.Equal(t, mn.Valencies[0], q.Correct)
	assert.ElementsMatch(t, mn.Valencies[:OptionCount], q.Options)
}

func TestMedium_AllCatalogElements(t *testing.T) {
	cat := defaultCatalog(t)
	g := NewGenerator(cat, seeded(7))

	for _, e := range cat.All() {
		f := catalog.Filter{MinNumber: e.AtomicNumber, MaxNumber: e.AtomicNumber}
		q, err := g.NewQuestion(LevelMedium, f)
		require.NoError(t, err, e.Symbol)
		assertWellFormed(t, q)
		assertDistinct(t, q.Options)
	}
}

func TestInsufficientPool(t *testing.T) {
	cat := defaultCatalog(t)
	g := NewGenerator(cat, seeded(8))
	small := catalog.Filter{MinNumber: 1, MaxNumber: 3}

	for _, level := range []Level{LevelEasy, LevelHard} {
		q, err := g.NewQuestion(level, small)
		assert.Nil(t, q)
		var ipe *InsufficientPoolError
		require.True(t, errors.As(err, &ipe), "level %s", level)
		assert.Equal(t, 3, ipe.Available)
		assert.Equal(t, OptionCount, ipe.Need)
	}

	q, err := g.NewQuestion(LevelMedium, small)
	require.NoError(t, err)
	assertWellFormed(t, q)

	_, err = g.NewQuestion(LevelMedium, catalog.Filter{MinNumber: 200})
	var ipe *InsufficientPoolError
	assert.True(t, errors.As(err, &ipe))
}

func TestHard_IdenticalConfigurationsInsufficient(t *testing.T) {
	cat := miniCatalog(t,
		elementSpec{symbol: "A", config: "same"}, elementSpec{symbol: "B", config: "same"},
		elementSpec{symbol: "C", config: "same"}, elementSpec{symbol: "D", config: "same"},
	)
	_, err := NewGenerator(cat, seeded(9)).NewQuestion(LevelHard, catalog.Filter{})
	var ipe *InsufficientPoolError
	assert.True(t, errors.As(err, &ipe))
}

func TestNewQuestion_ClassFilter(t *testing.T) {
	cat := defaultCatalog(t)
	g := NewGenerator(cat, seeded(10))

	for i := 0; i < 200; i++ {
		q, err := g.NewQuestion(LevelEasy, catalog.Filter{Class: catalog.ClassNonmetal})
		require.NoError(t, err)
		for _, o := range q.Options {
			e, _ := cat.Get(o)
			assert.Equal(t, catalog.ClassNonmetal, e.Type.Class(), o)
		}
	}
}

func TestNewQuestion_InvalidInput(t *testing.T) {
	g := NewGenerator(defaultCatalog(t), seeded(11))

	_, err := g.NewQuestion("expert", catalog.Filter{})
	assert.Error(t, err)
	_, err = g.NewQuestion(LevelEasy, catalog.Filter{MinNumber: 50, MaxNumber: 10})
	assert.Error(t, err)
}

func TestNewQuestion_ShufflesCorrectPosition(t *testing.T) {
	g := NewGenerator(defaultCatalog(t), seeded(12))

	positions := map[int]int{}
	for i := 0; i < 400; i++ {
		q, err := g.NewQuestion(LevelEasy, catalog.Filter{})
		require.NoError(t, err)
		positions[slices.Index(q.Options, q.Correct)]++
	}
	for pos := 0; pos < OptionCount; pos++ {
		assert.Greater(t, positions[pos], 50, "position %d", pos)
	}
}

func TestNewQuestion_Deterministic(t *testing.T) {
	cat := defaultCatalog(t)
	a := NewGenerator(cat, seeded(13))
	b := NewGenerator(cat, seeded(13))

	for _, level := range Levels() {
		qa, err := a.NewQuestion(level, catalog.Filter{})
		require.NoError(t, err)
		qb, err := b.NewQuestion(level, catalog.Filter{})
		require.NoError(t, err)
		assert.Equal(t, qa, qb)
	}
}

func TestGrade(t *testing.T) {
	q := &Question{Options: []string{"Fe", "Na", "K", "Cu"}, Correct: "Fe"}
	assert.True(t, Grade(q, "Fe"))
	assert.False(t, Grade(q, "fe"))
	assert.False(t, Grade(q, "Fe "))
	assert.False(t, Grade(nil, "Fe"))
}

func TestRound_StateMachine(t *testing.T) {
	var r Round
	assert.Equal(t, StateIdle, r.State())

	_, err := r.Grade("Fe")
	assert.ErrorIs(t, err, ErrNoActiveQuestion)

	q := &Question{Options: []string{"Fe", "Na", "K", "Cu"}, Correct: "Fe", Symbol: "Fe"}
	assert.False(t, r.Pose(q))
	assert.Equal(t, StateQuestionPosed, r.State())
	assert.Same(t, q, r.Current())

	res, err := r.Grade("Na")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "Fe", res.Answer)
	assert.Equal(t, "Na", res.Choice)
	assert.Equal(t, StateGraded, r.State())
	require.NotNil(t, r.Last())

	_, err = r.Grade("Fe")
	assert.ErrorIs(t, err, ErrNoActiveQuestion, "grading twice")

	r.Acknowledge()
	assert.Equal(t, StateIdle, r.State())
	assert.Nil(t, r.Current())
	assert.Nil(t, r.Last())
}

func TestRound_PoseDiscardsUnanswered(t *testing.T) {
	var r Round
	first := &Question{Correct: "A"}
	second := &Question{Correct: "B"}

	r.Pose(first)
	assert.True(t, r.Pose(second))
	assert.Same(t, second, r.Current())

	res, err := r.Grade("B")
	require.NoError(t, err)
	assert.True(t, res.Correct)

	assert.False(t, r.Pose(first), "posing after grading discards nothing")
	assert.Equal(t, StateQuestionPosed, r.State())
}

func TestRound_ResetAndAcknowledgeNoop(t *testing.T) {
	var r Round
	r.Pose(&Question{Correct: "A"})
	r.Acknowledge()
	assert.Equal(t, StateQuestionPosed, r.State(), "acknowledge only leaves Graded")

	r.Reset()
	assert.Equal(t, StateIdle, r.State())
	assert.Nil(t, r.Current())
}
