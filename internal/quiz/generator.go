package quiz

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/chemiz/internal/catalog"
)

// ValencyTokens is the token universe medium questions draw distractors from.
var ValencyTokens = []string{"I", "II", "III", "IV", "V", "VI", "VII", "0"}

// Generator builds questions from a catalog. It is not safe for
// concurrent use; each session owns one.
type Generator struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

// NewGenerator returns a generator over cat. A nil rng is replaced by a
// randomly seeded source.
func NewGenerator(cat *catalog.Catalog, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{cat: cat, rng: rng}
}

// Catalog returns the catalog questions are drawn from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.cat
}

// NewQuestion picks a subject uniformly from the elements matching f and
// builds a question for level. Options are shuffled.
func (g *Generator) NewQuestion(level Level, f catalog.Filter) (*Question, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	pool := g.cat.Filter(f)

	var (
		q   *Question
		err error
	)
	switch level {
	case LevelEasy:
		q, err = g.easy(pool, f)
	case LevelMedium:
		q, err = g.medium(pool, f)
	case LevelHard:
		q, err = g.hard(pool, f)
	default:
		return nil, fmt.Errorf("unknown level %q", level)
	}
	if err != nil {
		return nil, err
	}

	g.rng.Shuffle(len(q.Options), func(i, j int) {
		q.Options[i], q.Options[j] = q.Options[j], q.Options[i]
	})
	return q, nil
}

// easy asks for the symbol of a named element. Distractors are three
// other pool symbols drawn without replacement.
func (g *Generator) easy(pool []catalog.Element, f catalog.Filter) (*Question, error) {
	if len(pool) < OptionCount {
		return nil, &InsufficientPoolError{Level: LevelEasy, Filter: f, Available: len(pool), Need: OptionCount}
	}

	perm := g.rng.Perm(len(pool))
	subject := pool[perm[0]]
	options := []string{subject.Symbol}
	for _, i := range perm[1:OptionCount] {
		options = append(options, pool[i].Symbol)
	}

	return &Question{
		Prompt:  fmt.Sprintf("What is the symbol of %s?", subject.Name),
		Options: options,
		Correct: subject.Symbol,
		Symbol:  subject.Symbol,
		Level:   LevelEasy,
	}, nil
}

// medium asks for the valency of an element. The element's own tokens
// come first (deduplicated, at most four) and the rest is padded from
// ValencyTokens without replacement. An element with no valencies is
// answered by "0".
func (g *Generator) medium(pool []catalog.Element, f catalog.Filter) (*Question, error) {
	if len(pool) == 0 {
		return nil, &InsufficientPoolError{Level: LevelMedium, Filter: f, Available: 0, Need: 1}
	}

	subject := pool[g.rng.IntN(len(pool))]
	own := dedupe(subject.Valencies)
	if len(own) == 0 {
		own = []string{"0"}
	}
	correct := own[0]
	if len(own) > OptionCount {
		own = own[:OptionCount]
	}

	options, ok := g.pad(own, ValencyTokens)
	if !ok {
		return nil, &InsufficientPoolError{Level: LevelMedium, Filter: f, Available: len(options), Need: OptionCount}
	}

	return &Question{
		Prompt:  fmt.Sprintf("What is the valency of %s?", subject.Symbol),
		Options: options,
		Correct: correct,
		Symbol:  subject.Symbol,
		Level:   LevelMedium,
	}, nil
}

// hard asks for the electron configuration of an element. Each of the
// three distractors is drawn independently from the other pool elements,
// so two distractors may repeat.
func (g *Generator) hard(pool []catalog.Element, f catalog.Filter) (*Question, error) {
	if len(pool) < OptionCount {
		return nil, &InsufficientPoolError{Level: LevelHard, Filter: f, Available: len(pool), Need: OptionCount}
	}

	subject := pool[g.rng.IntN(len(pool))]
	var others []string
	for _, e := range pool {
		if e.ElectronConfiguration != subject.ElectronConfiguration {
			others = append(others, e.ElectronConfiguration)
		}
	}
	if len(others) == 0 {
		return nil, &InsufficientPoolError{Level: LevelHard, Filter: f, Available: 1, Need: OptionCount}
	}

	options := []string{subject.ElectronConfiguration}
	for len(options) < OptionCount {
		options = append(options, others[g.rng.IntN(len(others))])
	}

	return &Question{
		Prompt:  fmt.Sprintf("What is the electron configuration of %s?", subject.Symbol),
		Options: options,
		Correct: subject.ElectronConfiguration,
		Symbol:  subject.Symbol,
		Level:   LevelHard,
	}, nil
}

// pad fills own up to OptionCount with tokens from universe that own does
// not contain, drawn without replacement. ok is false when the universe
// runs short; options then holds every token that could be used.
func (g *Generator) pad(own, universe []string) (options []string, ok bool) {
	options = append([]string(nil), own...)
	need := OptionCount - len(options)
	if need <= 0 {
		return options, true
	}

	taken := make(map[string]bool, len(own))
	for _, t := range own {
		taken[t] = true
	}
	var candidates []string
	for _, t := range universe {
		if !taken[t] {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) < need {
		return append(options, candidates...), false
	}

	for _, i := range g.rng.Perm(len(candidates))[:need] {
		options = append(options, candidates[i])
	}
	return options, true
}

func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
