package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the catalog data major version this build understands.
const SupportedMajor = "v1"

// Atomic number bounds of the catalog.
const (
	MinAtomicNumber = 1
	MaxAtomicNumber = 118
)

// ErrCatalogLoad is the sentinel every catalog load failure unwraps to.
var ErrCatalogLoad = errors.New("catalog load failed")

// LoadError describes why a catalog could not be loaded. Either Err is set
// (I/O, decode or schema failure) or Problems lists every semantic check
// that failed.
type LoadError struct {
	Source   string
	Problems []string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("catalog %s: %d problem(s):\n  - %s",
		e.Source, len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

func (e *LoadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCatalogLoad, e.Err}
	}
	return []error{ErrCatalogLoad}
}

// validateDocument performs the semantic checks the schema cannot express.
// It returns every problem found.
func validateDocument(doc document) []string {
	var problems []string

	switch {
	case !semver.IsValid(doc.Version):
		problems = append(problems, fmt.Sprintf("invalid data version %q", doc.Version))
	case semver.Major(doc.Version) != SupportedMajor:
		problems = append(problems, fmt.Sprintf("unsupported data version %s (want %s.x.x)", doc.Version, SupportedMajor))
	}

	symbols := make(map[string]bool, len(doc.Elements))
	numbers := make(map[int]string, len(doc.Elements))
	for i, e := range doc.Elements {
		label := e.Symbol
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if symbols[e.Symbol] {
			problems = append(problems, fmt.Sprintf("duplicate symbol %q", e.Symbol))
		}
		symbols[e.Symbol] = true

		if e.AtomicNumber < MinAtomicNumber || e.AtomicNumber > MaxAtomicNumber {
			problems = append(problems, fmt.Sprintf("%s: atomic number %d out of range [%d,%d]",
				label, e.AtomicNumber, MinAtomicNumber, MaxAtomicNumber))
		} else if other, ok := numbers[e.AtomicNumber]; ok {
			problems = append(problems, fmt.Sprintf("%s: atomic number %d already used by %s",
				label, e.AtomicNumber, other))
		} else {
			numbers[e.AtomicNumber] = label
		}

		if e.AtomicMass <= 0 {
			problems = append(problems, fmt.Sprintf("%s: atomic mass must be positive, got %g", label, e.AtomicMass))
		}
	}

	return problems
}
