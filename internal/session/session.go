package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// contextWindow is how many trailing transcript messages Context formats.
const contextWindow = 10

// Session is the explicitly passed state for one screening conversation:
// the phase tracker, the candidate's profile and questions, their answers,
// and the transcript. One Session per candidate; never shared.
type Session struct {
	tracker      *Tracker
	exitKeywords []string

	profile    model.CandidateProfile
	profileSet bool

	questions    model.QuestionSet
	questionsSet bool

	Answers    model.AnswerSet
	transcript []model.Message
}

// New returns a session at PhaseGreeting. Empty exitKeywords fall back to
// DefaultExitKeywords.
func New(exitKeywords []string) *Session {
	if len(exitKeywords) == 0 {
		exitKeywords = DefaultExitKeywords
	}
	return &Session{
		tracker:      NewTracker(),
		exitKeywords: exitKeywords,
		Answers:      make(model.AnswerSet),
	}
}

// Phase returns the current conversation phase.
func (s *Session) Phase() Phase {
	return s.tracker.Current()
}

// IsTerminal reports whether the conversation has ended.
func (s *Session) IsTerminal() bool {
	return s.tracker.IsTerminal()
}

// Advance forwards the signal to the phase tracker.
func (s *Session) Advance(sig Signal) (Phase, error) {
	return s.tracker.Advance(sig)
}

// SetProfile stores the validated candidate profile. The profile may be set
// exactly once; a second call is rejected.
func (s *Session) SetProfile(p model.CandidateProfile) error {
	if s.profileSet {
		return fmt.Errorf("candidate profile already submitted")
	}
	s.profile = p
	s.profileSet = true
	return nil
}

// Profile returns the submitted profile and whether one has been set.
func (s *Session) Profile() (model.CandidateProfile, bool) {
	return s.profile, s.profileSet
}

// SetQuestions stores the generated question set. Like the profile, it may
// be set exactly once.
func (s *Session) SetQuestions(qs model.QuestionSet) error {
	if s.questionsSet {
		return fmt.Errorf("question set already generated")
	}
	s.questions = qs
	s.questionsSet = true
	return nil
}

// Questions returns the generated question set and whether one has been set.
func (s *Session) Questions() (model.QuestionSet, bool) {
	return s.questions, s.questionsSet
}

// RecordAnswer appends the candidate's answer for a question on the given
// technology.
func (s *Session) RecordAnswer(technology, answer string) {
	s.Answers[technology] = append(s.Answers[technology], answer)
}

// RecordMessage appends a transcript entry.
func (s *Session) RecordMessage(role, text string) {
	s.transcript = append(s.transcript, model.Message{
		Role: role,
		Text: text,
		At:   time.Now(),
	})
}

// Transcript returns the recorded messages in order.
func (s *Session) Transcript() []model.Message {
	return s.transcript
}

// Context formats the last few transcript messages as "ROLE: text" lines,
// oldest first.
func (s *Session) Context() string {
	msgs := s.transcript
	if len(msgs) > contextWindow {
		msgs = msgs[len(msgs)-contextWindow:]
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(strings.ToUpper(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// HandleMessage records a candidate chat message and, when it contains an
// exit keyword, moves the session to PhaseExited. It reports whether the
// session exited.
func (s *Session) HandleMessage(text string) (bool, error) {
	s.RecordMessage("user", text)
	if !ContainsExitKeyword(text, s.exitKeywords) {
		return false, nil
	}
	if _, err := s.Advance(SignalExitRequested); err != nil {
		return false, err
	}
	return true, nil
}

// Record assembles the persistable session record. id and submittedAt are
// assigned by the caller.
func (s *Session) Record(id string, submittedAt time.Time) model.SessionRecord {
	return model.SessionRecord{
		ID:          id,
		SubmittedAt: submittedAt,
		Profile:     s.profile,
		Questions:   s.questions,
		Answers:     s.Answers,
	}
}
