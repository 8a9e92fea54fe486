package model

import (
	"context"
	"time"
)

// CandidateProfile holds the data collected from the intake form.
// It is populated once by a single validated submission and treated as
// immutable afterward.
type CandidateProfile struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	YearsExperience int      `json:"years_experience"`
	DesiredRole     string   `json:"desired_role"`
	Location        string   `json:"location"`
	TechStack       []string `json:"tech_stack"` // declared technologies, in submission order
}

// TechQuestions is the generated question list for one technology.
type TechQuestions struct {
	Technology string   `json:"technology"`
	Questions  []string `json:"questions"` // 3-5 ordered question strings
}

// QuestionSet maps each declared technology to its interview questions,
// preserving the order technologies were declared in. Created once per
// profile; never mutated.
type QuestionSet []TechQuestions

// Technologies returns the technology names in set order.
func (qs QuestionSet) Technologies() []string {
	names := make([]string, 0, len(qs))
	for _, tq := range qs {
		names = append(names, tq.Technology)
	}
	return names
}

// Get returns the questions for the given technology.
func (qs QuestionSet) Get(technology string) ([]string, bool) {
	for _, tq := range qs {
		if tq.Technology == technology {
			return tq.Questions, true
		}
	}
	return nil, false
}

// Total returns the number of questions across all technologies.
func (qs QuestionSet) Total() int {
	n := 0
	for _, tq := range qs {
		n += len(tq.Questions)
	}
	return n
}

// AnswerSet holds the candidate's answers keyed by technology, aligned
// index-for-index with the questions in the QuestionSet.
type AnswerSet map[string][]string

// Message is a single transcript entry.
type Message struct {
	Role string    `json:"role"` // "user", "assistant" or "system"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// SessionRecord is a completed screening session as persisted by a SessionStore.
type SessionRecord struct {
	ID          string           `json:"id"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Profile     CandidateProfile `json:"profile"`
	Questions   QuestionSet      `json:"questions"`
	Answers     AnswerSet        `json:"answers"`
}

// SessionSummary is the list-view projection of a stored session.
type SessionSummary struct {
	ID          string
	SubmittedAt time.Time
	FullName    string
	Email       string
	DesiredRole string
}

// QuestionGenerator produces a QuestionSet for a candidate's declared stack.
type QuestionGenerator interface {
	Generate(ctx context.Context, profile CandidateProfile) (QuestionSet, error)
}

// SessionStore persists completed screening sessions.
type SessionStore interface {
	SaveSession(rec SessionRecord) error
	ListSessions() ([]SessionSummary, error)
	GetSession(id string) (SessionRecord, error)
}
