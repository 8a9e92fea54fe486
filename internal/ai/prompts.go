package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/tech_questions.md
var techQuestionsPromptRaw string

// TechQuestionsTemplate is the parsed prompt template for question generation.
// Parsed once at package init; reused for every technology.
var TechQuestionsTemplate = template.Must(template.New("tech_questions").Parse(techQuestionsPromptRaw))
