package session

import (
	"fmt"
	"strings"
)

// Phase is a discrete stage of the guided screening conversation.
type Phase int

const (
	PhaseGreeting Phase = iota
	PhaseCollecting
	PhaseAssessing
	PhaseClosing
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhaseGreeting:
		return "greeting"
	case PhaseCollecting:
		return "collecting"
	case PhaseAssessing:
		return "assessing"
	case PhaseClosing:
		return "closing"
	case PhaseExited:
		return "exited"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Signal is an external event that may advance the conversation phase.
type Signal int

const (
	SignalFormSubmitted Signal = iota
	SignalQuestionsReady
	SignalExitRequested
)

func (s Signal) String() string {
	switch s {
	case SignalFormSubmitted:
		return "form_submitted"
	case SignalQuestionsReady:
		return "questions_ready"
	case SignalExitRequested:
		return "exit_requested"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}

// InvalidSignalError reports a signal that is not valid for the current
// phase. It indicates an ordering bug in the caller, not user error.
type InvalidSignalError struct {
	Phase  Phase
	Signal Signal
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("signal %s is not valid in phase %s", e.Signal, e.Phase)
}

// transitions is the fixed forward transition table. ExitRequested is
// handled separately: it moves any non-terminal phase to PhaseExited.
var transitions = map[Phase]map[Signal]Phase{
	PhaseGreeting:   {SignalFormSubmitted: PhaseCollecting},
	PhaseCollecting: {SignalQuestionsReady: PhaseAssessing},
	PhaseAssessing:  {SignalFormSubmitted: PhaseClosing},
}

// Tracker holds the current conversation phase and advances it strictly
// forward. Pure in-memory state; the only failure mode is an invalid signal.
type Tracker struct {
	phase Phase
}

// NewTracker returns a tracker at PhaseGreeting.
func NewTracker() *Tracker {
	return &Tracker{phase: PhaseGreeting}
}

// Current returns the current phase.
func (t *Tracker) Current() Phase {
	return t.phase
}

// IsTerminal reports whether the conversation has ended. Only PhaseExited
// is terminal.
func (t *Tracker) IsTerminal() bool {
	return t.phase == PhaseExited
}

// Advance applies sig and returns the new phase. ExitRequested is accepted
// from any non-terminal phase. All other combinations not in the transition
// table fail with InvalidSignalError, including every signal after Exited.
func (t *Tracker) Advance(sig Signal) (Phase, error) {
	if t.phase == PhaseExited {
		return t.phase, &InvalidSignalError{Phase: t.phase, Signal: sig}
	}
	if sig == SignalExitRequested {
		t.phase = PhaseExited
		return t.phase, nil
	}
	next, ok := transitions[t.phase][sig]
	if !ok {
		return t.phase, &InvalidSignalError{Phase: t.phase, Signal: sig}
	}
	t.phase = next
	return t.phase, nil
}

// DefaultExitKeywords are the phrases that end the conversation when they
// appear anywhere in a candidate message, in any case.
var DefaultExitKeywords = []string{"exit", "quit", "bye", "goodbye", "stop"}

// ContainsExitKeyword reports whether message contains any of the given
// keywords, case-insensitively, anywhere in the text.
func ContainsExitKeyword(message string, keywords []string) bool {
	lower := strings.ToLower(message)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
