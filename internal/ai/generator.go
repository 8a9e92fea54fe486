package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// Question count bounds enforced on every technology, mirroring
// techQuestionsSchema.
const (
	MinQuestions = 3
	MaxQuestions = 5
)

// LLMQuestionGenerator implements model.QuestionGenerator using an LLM.
// One provider call is made per declared technology; a failure on any
// technology aborts the whole set so the candidate can resubmit.
type LLMQuestionGenerator struct {
	provider LLMProvider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewLLMQuestionGenerator creates a generator backed by the given provider.
func NewLLMQuestionGenerator(provider LLMProvider, tmpl *template.Template, logger *slog.Logger) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{
		provider: provider,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// Generate produces 3-5 questions for each technology in profile.TechStack,
// preserving declaration order. Provider failures are wrapped in
// *model.LLMRequestError; generation is never retried automatically.
func (g *LLMQuestionGenerator) Generate(ctx context.Context, profile model.CandidateProfile) (model.QuestionSet, error) {
	if len(profile.TechStack) == 0 {
		return nil, fmt.Errorf("no technologies declared")
	}

	set := make(model.QuestionSet, 0, len(profile.TechStack))
	for _, tech := range profile.TechStack {
		questions, err := g.generateForTech(ctx, tech, profile.YearsExperience)
		if err != nil {
			return nil, &model.LLMRequestError{Err: fmt.Errorf("%s: %w", tech, err)}
		}
		if g.logger != nil {
			g.logger.Debug("questions generated", "technology", tech, "count", len(questions))
		}
		set = append(set, model.TechQuestions{Technology: tech, Questions: questions})
	}
	return set, nil
}

func (g *LLMQuestionGenerator) generateForTech(ctx context.Context, technology string, yearsExperience int) ([]string, error) {
	var promptBuf bytes.Buffer
	err := g.tmpl.Execute(&promptBuf, struct {
		Technology      string
		YearsExperience int
	}{
		Technology:      technology,
		YearsExperience: yearsExperience,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := g.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	return parseQuestions(raw)
}

// rawQuestions is the JSON shape returned by the LLM (matches techQuestionsSchema).
type rawQuestions struct {
	Questions []string `json:"questions"`
}

// parseQuestions deserializes the LLM response and enforces the 3-5 bound.
// Structured outputs guarantees valid JSON, but the count is re-checked here
// since the schema is advisory for non-OpenAI backends.
func parseQuestions(raw string) ([]string, error) {
	var rq rawQuestions
	if err := json.Unmarshal([]byte(raw), &rq); err != nil {
		return nil, fmt.Errorf("unmarshal questions JSON: %w", err)
	}

	questions := make([]string, 0, len(rq.Questions))
	for _, q := range rq.Questions {
		if q != "" {
			questions = append(questions, q)
		}
	}

	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	if len(questions) < MinQuestions {
		return nil, fmt.Errorf("llm returned %d questions, need at least %d", len(questions), MinQuestions)
	}

	return questions, nil
}
