package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"text/template"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// stubProvider is a canned LLMProvider for testing. It records the prompts
// it receives and answers from responses keyed by technology name.
type stubProvider struct {
	responses map[string]string // keyed by substring of the prompt
	err       error
	prompts   []string
}

func (s *stubProvider) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	for key, resp := range s.responses {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return "", fmt.Errorf("no stub response for prompt %q", prompt)
}

func newTestGenerator(provider LLMProvider) *LLMQuestionGenerator {
	tmpl := template.Must(template.New("test").Parse("tech: {{.Technology}} exp: {{.YearsExperience}}"))
	return NewLLMQuestionGenerator(provider, tmpl, nil)
}

func questionsJSON(n int) string {
	qs := make([]string, n)
	for i := range qs {
		qs[i] = fmt.Sprintf(`"question %d"`, i+1)
	}
	return `{"questions":[` + strings.Join(qs, ",") + `]}`
}

func TestGenerate_Contract(t *testing.T) {
	provider := &stubProvider{responses: map[string]string{
		"Python": questionsJSON(4),
		"SQL":    questionsJSON(3),
	}}
	gen := newTestGenerator(provider)

	profile := model.CandidateProfile{
		YearsExperience: 5,
		TechStack:       []string{"Python", "SQL"},
	}
	set, err := gen.Generate(context.Background(), profile)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(set) != 2 {
		t.Fatalf("set len = %d, want 2", len(set))
	}
	if set[0].Technology != "Python" || set[1].Technology != "SQL" {
		t.Errorf("technologies = %v, want declaration order", set.Technologies())
	}
	for _, tq := range set {
		if len(tq.Questions) < MinQuestions || len(tq.Questions) > MaxQuestions {
			t.Errorf("%s: %d questions, want 3-5", tq.Technology, len(tq.Questions))
		}
		for _, q := range tq.Questions {
			if q == "" {
				t.Errorf("%s: empty question string", tq.Technology)
			}
		}
	}

	if len(provider.prompts) != 2 {
		t.Errorf("provider called %d times, want 2", len(provider.prompts))
	}
	if !strings.Contains(provider.prompts[0], "exp: 5") {
		t.Errorf("prompt missing experience: %q", provider.prompts[0])
	}
}

func TestGenerate_ProviderError_WrapsLLMRequestError(t *testing.T) {
	gen := newTestGenerator(&stubProvider{err: errors.New("network down")})

	_, err := gen.Generate(context.Background(), model.CandidateProfile{TechStack: []string{"Go"}})
	if err == nil {
		t.Fatal("Generate: expected error")
	}
	var lre *model.LLMRequestError
	if !errors.As(err, &lre) {
		t.Fatalf("error = %v, want LLMRequestError", err)
	}
}

func TestGenerate_EmptyStack(t *testing.T) {
	gen := newTestGenerator(&stubProvider{})
	if _, err := gen.Generate(context.Background(), model.CandidateProfile{}); err == nil {
		t.Fatal("Generate with empty stack: expected error")
	}
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{"three questions", questionsJSON(3), 3, false},
		{"five questions", questionsJSON(5), 5, false},
		{"six questions truncated to five", questionsJSON(6), 5, false},
		{"two questions rejected", questionsJSON(2), 0, true},
		{"empty strings dropped below minimum", `{"questions":["a","","b"]}`, 0, true},
		{"not json", "here are your questions", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestions(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseQuestions(%q): expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseQuestions: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestFallbackGenerator_Contract(t *testing.T) {
	gen := NewFallbackGenerator()

	profile := model.CandidateProfile{TechStack: []string{"Python", "SQL"}}
	set, err := gen.Generate(context.Background(), profile)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("set len = %d, want 2", len(set))
	}
	for _, tq := range set {
		if len(tq.Questions) < 3 || len(tq.Questions) > 5 {
			t.Errorf("%s: %d questions, want 3-5", tq.Technology, len(tq.Questions))
		}
	}
}

func TestFallbackGenerator_UnknownTech(t *testing.T) {
	gen := NewFallbackGenerator()

	set, err := gen.Generate(context.Background(), model.CandidateProfile{TechStack: []string{"Fortran"}})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	qs, ok := set.Get("Fortran")
	if !ok || len(qs) < 3 {
		t.Fatalf("questions = %v", qs)
	}
	if !strings.Contains(qs[0], "Fortran") {
		t.Errorf("generic question does not mention technology: %q", qs[0])
	}
}

func TestFallbackQuestions_MatchesSubstring(t *testing.T) {
	// "Node.js v20" should hit the node.js bank, not the generic templates.
	qs := fallbackQuestions("Node.js v20")
	if !strings.Contains(qs[0], "Node.js") {
		t.Errorf("unexpected bank for Node.js: %q", qs[0])
	}

	// Short keys must not match by substring: "MongoDB" contains "go" but
	// should get the generic templates.
	qs = fallbackQuestions("MongoDB")
	if !strings.Contains(qs[0], "MongoDB") {
		t.Errorf("unexpected bank for MongoDB: %q", qs[0])
	}
}
