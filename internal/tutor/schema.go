package tutor

import "github.com/abhisek/chemiz/internal/llm"

// ExplanationSchema defines the JSON schema for wrong-answer explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "element-explanation",
	Description: "A short explanation of an element fact the student got wrong",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "2-3 sentence explanation of the correct answer",
			},
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "Optional short memory aid, empty if none fits",
			},
		},
		"required":             []any{"explanation", "mnemonic"},
		"additionalProperties": false,
	},
}

// AdviceSchema defines the JSON schema for study advice.
var AdviceSchema = &llm.Schema{
	Name:        "study-advice",
	Description: "Study advice based on a learner's quiz history",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-4 sentence overview of the learner's progress",
			},
			"focus": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "pattern": "^[A-Z][a-z]{0,2}$"},
				"maxItems":    5,
				"description": "Element symbols to practice next",
			},
			"tips": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    3,
				"description": "1-3 concrete study tips (5-15 words each)",
			},
		},
		"required":             []any{"summary", "focus", "tips"},
		"additionalProperties": false,
	},
}
