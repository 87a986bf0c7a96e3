package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON shape a request asks for. Declare schemas once as
// package variables; each compiles on first use.
type Schema struct {
	// Name is sent as the tool or format name, e.g. "element-explanation".
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	s.once.Do(func() {
		// The compiler takes decoded JSON, not Go literals.
		raw, err := json.Marshal(s.Definition)
		if err != nil {
			s.err = err
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.err = err
			return
		}

		url := "mem://llm/" + s.Name + ".json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			s.err = err
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.compiled, s.err
}

// Validate checks raw against the schema and returns a KindInvalidOutput
// *Error when it does not conform. A nil schema accepts anything.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	compiled, err := s.compile()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &Error{Kind: KindInvalidOutput, Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	if err := compiled.Validate(doc); err != nil {
		return &Error{Kind: KindInvalidOutput, Content: raw, Err: err}
	}
	return nil
}
