package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

//go:embed data/elements.json
var embeddedData []byte

// document is the on-disk shape of a catalog file.
type document struct {
	Version  string    `json:"version"`
	Elements []Element `json:"elements"`
}

// Catalog is the immutable, validated set of element records.
// All accessors return copies; nothing can mutate a loaded catalog.
type Catalog struct {
	version  string
	elements []Element // sorted by atomic number
	bySymbol map[string]int
	byNumber map[int]int
}

// Default returns the catalog embedded in the binary. It is parsed and
// validated on first use and memoized for the lifetime of the process.
var Default = sync.OnceValues(func() (*Catalog, error) {
	return load(bytes.NewReader(embeddedData), "embedded")
})

// Load parses and validates a catalog document from r.
func Load(r io.Reader) (*Catalog, error) {
	return load(r, "reader")
}

// LoadFile parses and validates the catalog document at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return load(f, path)
}

func load(r io.Reader, source string) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	if err := validateSchema(raw); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}

	if problems := validateDocument(doc); len(problems) > 0 {
		return nil, &LoadError{Source: source, Problems: problems}
	}

	return build(doc), nil
}

func build(doc document) *Catalog {
	elements := make([]Element, len(doc.Elements))
	for i, e := range doc.Elements {
		elements[i] = e.clone()
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].AtomicNumber < elements[j].AtomicNumber
	})

	c := &Catalog{
		version:  doc.Version,
		elements: elements,
		bySymbol: make(map[string]int, len(elements)),
		byNumber: make(map[int]int, len(elements)),
	}
	for i, e := range elements {
		c.bySymbol[e.Symbol] = i
		c.byNumber[e.AtomicNumber] = i
	}
	return c
}

// Version returns the data version declared by the catalog document.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of elements.
func (c *Catalog) Len() int {
	return len(c.elements)
}

// Get returns the element with the given symbol.
func (c *Catalog) Get(symbol string) (Element, bool) {
	i, ok := c.bySymbol[symbol]
	if !ok {
		return Element{}, false
	}
	return c.elements[i].clone(), true
}

// ByNumber returns the element with the given atomic number.
func (c *Catalog) ByNumber(n int) (Element, bool) {
	i, ok := c.byNumber[n]
	if !ok {
		return Element{}, false
	}
	return c.elements[i].clone(), true
}

// All returns every element ordered by atomic number.
func (c *Catalog) All() []Element {
	out := make([]Element, len(c.elements))
	for i, e := range c.elements {
		out[i] = e.clone()
	}
	return out
}

// Symbols returns every symbol ordered by atomic number.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.elements))
	for i, e := range c.elements {
		out[i] = e.Symbol
	}
	return out
}

// Filter returns the elements matching f, ordered by atomic number.
func (c *Catalog) Filter(f Filter) []Element {
	var out []Element
	for _, e := range c.elements {
		if f.Match(e) {
			out = append(out, e.clone())
		}
	}
	return out
}
