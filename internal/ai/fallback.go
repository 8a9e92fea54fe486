package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// fallbackBank holds canned questions for well-known technologies, keyed by
// a lowercase substring of the technology name.
var fallbackBank = map[string][]string{
	"python": {
		"What are the key differences between lists and tuples in Python?",
		"How does Python handle memory management?",
		"Explain the concept of decorators in Python.",
		"What are some common use cases for generators?",
	},
	"javascript": {
		"Explain the event loop in JavaScript.",
		"What are the differences between let, const, and var?",
		"How does prototypal inheritance work in JavaScript?",
		"What are promises and how do they work?",
	},
	"react": {
		"What is the virtual DOM and how does it work?",
		"Explain the component lifecycle methods.",
		"What are hooks and how do they differ from class components?",
		"How would you optimize React application performance?",
	},
	"node.js": {
		"How does Node.js handle asynchronous operations?",
		"Explain the event-driven architecture of Node.js.",
		"What are streams and how are they used?",
		"How would you handle memory leaks in Node.js?",
	},
	"go": {
		"How do goroutines differ from OS threads?",
		"When would you use a buffered channel over an unbuffered one?",
		"Explain how interfaces are satisfied in Go.",
		"How does the garbage collector affect latency-sensitive code?",
	},
	"sql": {
		"What is the difference between an inner join and a left join?",
		"How would you identify and fix a slow query?",
		"Explain what a transaction isolation level controls.",
		"When is an index counterproductive?",
	},
}

// FallbackGenerator serves questions from the built-in bank without any
// network calls. Used in offline mode and as the contract-test reference
// implementation of model.QuestionGenerator.
type FallbackGenerator struct{}

// NewFallbackGenerator returns a FallbackGenerator.
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// Generate returns canned questions for each declared technology. Unknown
// technologies get generic experience questions. Never fails once at least
// one technology is declared.
func (f *FallbackGenerator) Generate(_ context.Context, profile model.CandidateProfile) (model.QuestionSet, error) {
	if len(profile.TechStack) == 0 {
		return nil, fmt.Errorf("no technologies declared")
	}

	set := make(model.QuestionSet, 0, len(profile.TechStack))
	for _, tech := range profile.TechStack {
		set = append(set, model.TechQuestions{
			Technology: tech,
			Questions:  fallbackQuestions(tech),
		})
	}
	return set, nil
}

func fallbackQuestions(technology string) []string {
	techLower := strings.ToLower(technology)
	if questions, ok := fallbackBank[techLower]; ok {
		return questions
	}
	// Substring matching is only safe for longer keys: "go" would match
	// "mongodb" and "django".
	for key, questions := range fallbackBank {
		if len(key) >= 4 && strings.Contains(techLower, key) {
			return questions
		}
	}

	return []string{
		fmt.Sprintf("What experience do you have with %s?", technology),
		fmt.Sprintf("Describe a challenging project you built using %s.", technology),
		fmt.Sprintf("What are the best practices for working with %s?", technology),
		fmt.Sprintf("How would you troubleshoot performance issues in %s?", technology),
	}
}
