package catalog

import "slices"

// ElementType is the chemical family an element belongs to.
type ElementType string

const (
	TypeNonmetal            ElementType = "nonmetal"
	TypeNobleGas            ElementType = "noble_gas"
	TypeMetal               ElementType = "metal"
	TypeAlkaliMetal         ElementType = "alkali_metal"
	TypeAlkalineEarthMetal  ElementType = "alkaline_earth_metal"
	TypeTransitionMetal     ElementType = "transition_metal"
	TypeMetalloid           ElementType = "metalloid"
	TypeLanthanide          ElementType = "lanthanide"
	TypeActinide            ElementType = "actinide"
	TypePostTransitionMetal ElementType = "post_transition_metal"
)

// AllTypes returns every element type in display order.
func AllTypes() []ElementType {
	return []ElementType{
		TypeNonmetal,
		TypeNobleGas,
		TypeMetal,
		TypeAlkaliMetal,
		TypeAlkalineEarthMetal,
		TypeTransitionMetal,
		TypeMetalloid,
		TypeLanthanide,
		TypeActinide,
		TypePostTransitionMetal,
	}
}

var typeLabels = map[ElementType]string{
	TypeNonmetal:            "Nonmetal",
	TypeNobleGas:            "Noble gas",
	TypeMetal:               "Metal",
	TypeAlkaliMetal:         "Alkali metal",
	TypeAlkalineEarthMetal:  "Alkaline-earth metal",
	TypeTransitionMetal:     "Transition metal",
	TypeMetalloid:           "Metalloid",
	TypeLanthanide:          "Lanthanide",
	TypeActinide:            "Actinide",
	TypePostTransitionMetal: "Post-transition metal",
}

// Label returns the human-readable name of the type.
func (t ElementType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Class returns the coarse metal/nonmetal classification of the type.
func (t ElementType) Class() Class {
	switch t {
	case TypeNonmetal, TypeNobleGas:
		return ClassNonmetal
	case TypeMetalloid:
		return ClassMetalloid
	default:
		return ClassMetal
	}
}

// Element is a single record of the catalog.
//
// ElectronConfiguration is an opaque display string; it is compared as a
// whole and never parsed. State, Appearance and OxideCharacter are display only.
type Element struct {
	Symbol                string      `json:"symbol"`
	Name                  string      `json:"name"`
	AtomicNumber          int         `json:"atomic_number"`
	AtomicMass            float64     `json:"atomic_mass"`
	Type                  ElementType `json:"type"`
	Valencies             []string    `json:"valencies"`
	OxidationStates       []string    `json:"oxidation_states"`
	ElectronConfiguration string      `json:"electron_configuration"`
	State                 string      `json:"state"`
	Appearance            string      `json:"appearance"`
	OxideCharacter        string      `json:"oxide_character"`
}

// clone returns a copy that shares no slices with e, so callers cannot
// reach into the catalog's backing arrays.
func (e Element) clone() Element {
	e.Valencies = slices.Clone(e.Valencies)
	e.OxidationStates = slices.Clone(e.OxidationStates)
	return e
}
