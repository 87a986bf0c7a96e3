package tutor

import (
	"fmt"
	"strings"
)

const explainSystemPrompt = `You are a friendly chemistry tutor helping a student learn the periodic table. The student just answered a quiz question wrongly. Explain the correct answer briefly and accurately.`

func buildExplainUserMessage(in ExplainInput) string {
	var b strings.Builder
	e := in.Element

	fmt.Fprintf(&b, "Question: %s\n", in.Question.Prompt)
	fmt.Fprintf(&b, "Options: %s\n", strings.Join(in.Question.Options, " | "))
	fmt.Fprintf(&b, "Student chose: %s\n", in.Choice)
	fmt.Fprintf(&b, "Correct answer: %s\n", in.Question.Correct)

	b.WriteString("\nElement facts:\n")
	fmt.Fprintf(&b, "- %s (%s), atomic number %d, atomic mass %g\n", e.Name, e.Symbol, e.AtomicNumber, e.AtomicMass)
	fmt.Fprintf(&b, "- Type: %s\n", e.Type.Label())
	fmt.Fprintf(&b, "- Valencies: %s\n", listOrNone(e.Valencies))
	fmt.Fprintf(&b, "- Oxidation states: %s\n", listOrNone(e.OxidationStates))
	fmt.Fprintf(&b, "- Electron configuration: %s\n", e.ElectronConfiguration)

	b.WriteString(`
Instructions:
1. Explain in 2-3 sentences why the correct answer is right, using only the element facts above.
2. If the student's choice is a common confusion, say what it actually belongs to.
3. Optionally give a short mnemonic. Leave it empty if nothing natural fits.
4. Use plain text. No markdown, no LaTeX.`)

	return b.String()
}

const adviceSystemPrompt = `You are a chemistry tutor reviewing a student's periodic table quiz history. Give short, practical study advice.`

func buildAdviceUserMessage(in AdviceInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Student: %s\n", in.Username)
	if pct, ok := in.Account.Accuracy(); ok {
		fmt.Fprintf(&b, "Overall: %d of %d correct (%.0f%%)\n",
			in.Account.CorrectAnswers, in.Account.TotalQuestions, pct)
	} else {
		b.WriteString("Overall: no answers yet\n")
	}

	b.WriteString("\nPer element (weakest first):\n")
	if len(in.Elements) == 0 {
		b.WriteString("None\n")
	}
	for _, s := range in.Elements {
		fmt.Fprintf(&b, "- %s: %d/%d correct\n", s.Symbol, s.Correct, s.Attempts)
	}

	b.WriteString(`
Instructions:
1. Summarize the student's progress in 2-4 sentences.
2. List up to 5 element symbols to practice next, taken from the weakest elements above.
3. Give 1-3 concrete study tips.`)

	return b.String()
}

func listOrNone(tokens []string) string {
	if len(tokens) == 0 {
		return "none"
	}
	return strings.Join(tokens, ", ")
}
