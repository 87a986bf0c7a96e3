package diagnosis

import (
	"testing"
	"time"

	"github.com/abhisek/chemiz/internal/catalog"
	"github.com/abhisek/chemiz/internal/quiz"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func TestSpeedRushClassifier_UnderThreshold(t *testing.T) {
	c := &SpeedRushClassifier{}
	d := c.Classify(&ClassifyInput{ResponseTime: 1500 * time.Millisecond})
	if d == nil || d.Category != CategorySpeedRush {
		t.Fatalf("got %+v, want %q", d, CategorySpeedRush)
	}
	if d.Confidence != 0.9 {
		t.Errorf("got confidence %f, want 0.9", d.Confidence)
	}
}

func TestSpeedRushClassifier_AtThreshold(t *testing.T) {
	c := &SpeedRushClassifier{}
	if d := c.Classify(&ClassifyInput{ResponseTime: SpeedRushThreshold}); d != nil {
		t.Errorf("got category %q at threshold, want none", d.Category)
	}
}

func TestCarelessClassifier_HighAccuracy(t *testing.T) {
	c := &CarelessClassifier{}
	d := c.Classify(&ClassifyInput{LevelAccuracy: 0.85, LevelAttempts: 10})
	if d == nil || d.Category != CategoryCareless {
		t.Fatalf("got %+v, want %q", d, CategoryCareless)
	}
}

func TestCarelessClassifier_AtThreshold(t *testing.T) {
	c := &CarelessClassifier{}
	if d := c.Classify(&ClassifyInput{LevelAccuracy: 0.80, LevelAttempts: 10}); d != nil {
		t.Errorf("got category %q at threshold, want none", d.Category)
	}
}

func TestCarelessClassifier_TooFewAttempts(t *testing.T) {
	c := &CarelessClassifier{}
	if d := c.Classify(&ClassifyInput{LevelAccuracy: 1, LevelAttempts: 2}); d != nil {
		t.Errorf("got category %q with two attempts, want none", d.Category)
	}
}

func TestAlternateValency(t *testing.T) {
	in := &ClassifyInput{
		Question:     &quiz.Question{Symbol: "Fe", Level: quiz.LevelMedium, Correct: "II"},
		Choice:       "III",
		ResponseTime: 10 * time.Second,
		Catalog:      testCatalog(t),
	}
	d := Diagnose(in)
	if d.Category != CategoryAlternateValency {
		t.Fatalf("got %q, want %q", d.Category, CategoryAlternateValency)
	}
	if d.Detail != "Fe can show valency III, but its usual valency is II." {
		t.Errorf("unexpected detail %q", d.Detail)
	}

	in.Choice = "VII"
	if got := Diagnose(in).Category; got != CategoryUnclassified {
		t.Errorf("foreign valency classified as %q", got)
	}
}

func TestConfusionNeighbour(t *testing.T) {
	d := Diagnose(&ClassifyInput{
		Question:     &quiz.Question{Symbol: "Na", Level: quiz.LevelEasy, Correct: "Na"},
		Choice:       "Mg",
		ResponseTime: 10 * time.Second,
		Catalog:      testCatalog(t),
	})
	if d.Category != CategoryNeighbour {
		t.Fatalf("got %q, want %q", d.Category, CategoryNeighbour)
	}
	if d.Related == nil || d.Related.Symbol != "Mg" {
		t.Errorf("unexpected related element %+v", d.Related)
	}
	if d.ClassifierName != "confusion" {
		t.Errorf("got classifier %q", d.ClassifierName)
	}
}

func TestConfusionSameGroup(t *testing.T) {
	cat := testCatalog(t)
	k, _ := cat.Get("K")
	d := Diagnose(&ClassifyInput{
		Question:     &quiz.Question{Symbol: "Na", Level: quiz.LevelHard, Correct: "[Ne] 3s1"},
		Choice:       k.ElectronConfiguration,
		ResponseTime: 10 * time.Second,
		Catalog:      cat,
	})
	if d.Category != CategorySameGroup {
		t.Fatalf("got %q, want %q", d.Category, CategorySameGroup)
	}
	if d.Related == nil || d.Related.Symbol != "K" {
		t.Errorf("unexpected related element %+v", d.Related)
	}
}

func TestConfusionUnrelated(t *testing.T) {
	d := Diagnose(&ClassifyInput{
		Question:     &quiz.Question{Symbol: "Na", Level: quiz.LevelEasy, Correct: "Na"},
		Choice:       "Fe",
		ResponseTime: 10 * time.Second,
		Catalog:      testCatalog(t),
	})
	if d.Classified() {
		t.Errorf("got %q, want unclassified", d.Category)
	}
	if d.ClassifierName != "none" {
		t.Errorf("got classifier %q, want none", d.ClassifierName)
	}
}

func TestRunClassifiers_SpeedRushPriority(t *testing.T) {
	// Fast and high accuracy: speed-rush wins.
	d := RunClassifiers(DefaultClassifiers(), &ClassifyInput{
		ResponseTime:  time.Second,
		LevelAccuracy: 0.90,
		LevelAttempts: 10,
	})
	if d == nil || d.Category != CategorySpeedRush {
		t.Fatalf("got %+v, want speed-rush", d)
	}
	if d.ClassifierName != "speed-rush" {
		t.Errorf("got classifier %q, want speed-rush", d.ClassifierName)
	}
}

func TestRunClassifiers_CarelessFallback(t *testing.T) {
	d := RunClassifiers(DefaultClassifiers(), &ClassifyInput{
		ResponseTime:  5 * time.Second,
		LevelAccuracy: 0.90,
		LevelAttempts: 10,
	})
	if d == nil || d.Category != CategoryCareless {
		t.Fatalf("got %+v, want careless", d)
	}
}

func TestRunClassifiers_NoMatch(t *testing.T) {
	d := RunClassifiers(DefaultClassifiers(), &ClassifyInput{
		ResponseTime:  5 * time.Second,
		LevelAccuracy: 0.50,
		LevelAttempts: 10,
	})
	if d != nil {
		t.Errorf("got %+v, want nil", d)
	}
}

func TestDefaultClassifiers_Order(t *testing.T) {
	want := []string{"speed-rush", "alternate-valency", "confusion", "careless"}
	got := DefaultClassifiers()
	if len(got) != len(want) {
		t.Fatalf("got %d classifiers, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Name() != want[i] {
			t.Errorf("classifier %d is %q, want %q", i, c.Name(), want[i])
		}
	}
}
