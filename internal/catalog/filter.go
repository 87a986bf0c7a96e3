package catalog

import (
	"fmt"
	"strings"
)

// Class is the coarse metal/nonmetal classification used by quiz filters.
type Class string

const (
	ClassAny       Class = ""
	ClassMetal     Class = "metal"
	ClassNonmetal  Class = "nonmetal"
	ClassMetalloid Class = "metalloid"
)

// ParseClass parses a filter class name. The empty string and "any" both
// select every element.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return ClassAny, nil
	case "metal", "metals":
		return ClassMetal, nil
	case "nonmetal", "nonmetals", "non-metal", "non-metals":
		return ClassNonmetal, nil
	default:
		return ClassAny, fmt.Errorf("unknown element class %q (want any, metal or nonmetal)", s)
	}
}

// String returns "any" for ClassAny and the class name otherwise.
func (c Class) String() string {
	if c == ClassAny {
		return "any"
	}
	return string(c)
}

// Filter selects a subset of the catalog by atomic-number range and class.
// A zero bound is open; the zero Filter matches everything.
type Filter struct {
	MinNumber int
	MaxNumber int
	Class     Class
}

// Validate reports whether the bounds are usable.
func (f Filter) Validate() error {
	if f.MinNumber < 0 || f.MaxNumber < 0 {
		return fmt.Errorf("filter bounds must not be negative: %d..%d", f.MinNumber, f.MaxNumber)
	}
	if f.MaxNumber != 0 && f.MinNumber > f.MaxNumber {
		return fmt.Errorf("filter range is empty: %d..%d", f.MinNumber, f.MaxNumber)
	}
	switch f.Class {
	case ClassAny, ClassMetal, ClassNonmetal:
	default:
		return fmt.Errorf("filter class %q is not selectable", f.Class)
	}
	return nil
}

// IsZero reports whether f selects the whole catalog.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether e passes the filter. Metalloids only match ClassAny.
func (f Filter) Match(e Element) bool {
	if f.MinNumber > 0 && e.AtomicNumber < f.MinNumber {
		return false
	}
	if f.MaxNumber > 0 && e.AtomicNumber > f.MaxNumber {
		return false
	}
	if f.Class != ClassAny && e.Type.Class() != f.Class {
		return false
	}
	return true
}

func (f Filter) String() string {
	if f.IsZero() {
		return "all elements"
	}
	var parts []string
	switch {
	case f.MinNumber > 0 && f.MaxNumber > 0:
		parts = append(parts, fmt.Sprintf("Z %d-%d", f.MinNumber, f.MaxNumber))
	case f.MinNumber > 0:
		parts = append(parts, fmt.Sprintf("Z >= %d", f.MinNumber))
	case f.MaxNumber > 0:
		parts = append(parts, fmt.Sprintf("Z <= %d", f.MaxNumber))
	}
	if f.Class != ClassAny {
		parts = append(parts, f.Class.String()+"s")
	}
	return strings.Join(parts, ", ")
}
