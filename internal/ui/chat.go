package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/talentscout-ai/talentscout/internal/model"
	"github.com/talentscout-ai/talentscout/internal/session"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// generateTimeout caps one whole question-generation pass (all technologies).
const generateTimeout = 2 * time.Minute

// chatView is the screen shown inside the current phase. The intake form is
// part of the greeting phase; the tracker advances only on real signals.
type chatView int

const (
	viewGreeting chatView = iota
	viewForm
	viewGenerating
	viewAssess
	viewClosing
	viewExited
)

// questionsGeneratedMsg is sent when the async generation pass completes.
type questionsGeneratedMsg struct {
	set model.QuestionSet
	err error
}

type spinnerTickMsg struct{}

// ChatOptions wires the chat TUI to its collaborators.
type ChatOptions struct {
	Title        string
	Greeting     string
	ThankYou     string
	ExitKeywords []string
	Generator    model.QuestionGenerator
	Store        model.SessionStore
}

type chatModel struct {
	opts ChatOptions
	sess *session.Session
	view chatView

	width  int
	height int

	// Greeting: free-form chat line, checked for exit keywords.
	chatInput textinput.Model
	notice    string

	form *intakeForm

	// Generation state.
	frame  int
	genErr string

	// Assessment state: one question at a time.
	techIdx   int
	qIdx      int
	answer    textarea.Model
	assessErr string

	saveErr  string
	fatalErr error
}

func newChatModel(opts ChatOptions) chatModel {
	ci := textinput.New()
	ci.Placeholder = "Type a message (or \"exit\" to leave)..."
	ci.CharLimit = 200
	ci.Width = 50
	ci.Focus()

	ta := textarea.New()
	ta.Placeholder = "Your answer here..."
	ta.CharLimit = 2000
	ta.SetWidth(70)
	ta.SetHeight(5)

	return chatModel{
		opts:      opts,
		sess:      session.New(opts.ExitKeywords),
		view:      viewGreeting,
		chatInput: ci,
		form:      newIntakeForm(),
		answer:    ta,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.answer.SetWidth(min(msg.Width-6, 76))
		return m, nil

	case spinnerTickMsg:
		if m.view != viewGenerating {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()

	case questionsGeneratedMsg:
		return m.onQuestionsGenerated(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewGreeting:
			return m.updateGreeting(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewGenerating:
			return m.updateGenerating(msg)
		case viewAssess:
			return m.updateAssess(msg)
		case viewClosing, viewExited:
			switch msg.String() {
			case "enter", "q", "esc":
				return m, tea.Quit
			}
			return m, nil
		}
	}

	return m, nil
}

func (m chatModel) updateGreeting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			// Empty enter begins the intake form.
			m.view = viewForm
			m.notice = ""
			m.chatInput.Blur()
			return m, m.form.inputs[m.form.focus].Focus()
		}
		return m.handleChatMessage(text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// handleChatMessage records a free-form message and exits the session when
// it contains an exit keyword. Other messages get a gentle redirect, like
// the assistant nudging the candidate back to the form.
func (m chatModel) handleChatMessage(text string) (tea.Model, tea.Cmd) {
	exited, err := m.sess.HandleMessage(text)
	if err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	if exited {
		m.view = viewExited
		return m, tea.Quit
	}
	m.notice = "I'm here to help with your hiring process. Press enter on an empty line to begin."
	m.chatInput.Reset()
	return m, nil
}

func (m chatModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m, m.form.next()
	case "shift+tab", "up":
		return m, m.form.prev()
	case "enter":
		if !m.form.onLastField() {
			return m, m.form.next()
		}
		return m.submitForm()
	case "esc":
		m.view = viewGreeting
		return m, m.chatInput.Focus()
	}

	return m, m.form.Update(msg)
}

func (m chatModel) submitForm() (tea.Model, tea.Cmd) {
	form := m.form.collectForm()
	if errs := form.Validate(); len(errs) > 0 {
		m.form.setErrors(errs)
		return m, nil
	}
	m.form.setErrors(nil)

	profile, err := form.Profile()
	if err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	if err := m.sess.SetProfile(profile); err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	if _, err := m.sess.Advance(session.SignalFormSubmitted); err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	m.sess.RecordMessage("system", "candidate completed the intake form")

	m.view = viewGenerating
	m.genErr = ""
	return m, tea.Batch(m.generateCmd(), m.tick())
}

func (m chatModel) updateGenerating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.genErr == "" {
		return m, nil
	}
	switch msg.String() {
	case "enter", "r":
		// Resubmission: one fresh attempt, never automatic.
		m.genErr = ""
		return m, tea.Batch(m.generateCmd(), m.tick())
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m chatModel) generateCmd() tea.Cmd {
	gen := m.opts.Generator
	profile, _ := m.sess.Profile()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		set, err := gen.Generate(ctx, profile)
		return questionsGeneratedMsg{set: set, err: err}
	}
}

func (m chatModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m chatModel) onQuestionsGenerated(msg questionsGeneratedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.genErr = msg.err.Error()
		return m, nil
	}
	if err := m.sess.SetQuestions(msg.set); err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	if _, err := m.sess.Advance(session.SignalQuestionsReady); err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}

	m.view = viewAssess
	m.techIdx = 0
	m.qIdx = 0
	m.answer.Reset()
	return m, m.answer.Focus()
}

func (m chatModel) updateAssess(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "ctrl+d" {
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		return m, cmd
	}

	text := strings.TrimSpace(m.answer.Value())
	if text == "" {
		m.assessErr = "Please answer the question before continuing."
		return m, nil
	}
	m.assessErr = ""

	// Answers are free-form messages too: an exit keyword ends the session.
	if session.ContainsExitKeyword(text, m.opts.ExitKeywords) {
		return m.handleChatMessage(text)
	}
	m.sess.RecordMessage("user", text)

	questions, _ := m.sess.Questions()
	tech := questions[m.techIdx]
	m.sess.RecordAnswer(tech.Technology, text)
	m.answer.Reset()

	m.qIdx++
	if m.qIdx < len(tech.Questions) {
		return m, nil
	}
	m.qIdx = 0
	m.techIdx++
	if m.techIdx < len(questions) {
		return m, nil
	}

	return m.finishAssessment()
}

func (m chatModel) finishAssessment() (tea.Model, tea.Cmd) {
	if _, err := m.sess.Advance(session.SignalFormSubmitted); err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}

	rec := m.sess.Record(uuid.NewString(), time.Now())
	if err := m.opts.Store.SaveSession(rec); err != nil {
		m.saveErr = err.Error()
	}
	m.view = viewClosing
	return m, nil
}

func (m chatModel) View() string {
	title := titleStyle.Render(m.opts.Title)

	switch m.view {
	case viewGreeting:
		return m.viewGreeting(title)
	case viewForm:
		return m.viewForm(title)
	case viewGenerating:
		return m.viewGenerating(title)
	case viewAssess:
		return m.viewAssess(title)
	case viewClosing:
		return m.viewClosing(title)
	case viewExited:
		return title + "\n\n" + greetingStyle.Render(m.opts.ThankYou) + "\n"
	}
	return ""
}

func (m chatModel) viewGreeting(title string) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(greetingStyle.Render(m.opts.Greeting) + "\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render("  "+m.notice) + "\n\n")
	}
	b.WriteString("  " + m.chatInput.View() + "\n\n")
	b.WriteString(m.statusBar("enter begin  ctrl+c quit"))
	return b.String()
}

func (m chatModel) viewForm(title string) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString("  Candidate Information\n\n")
	b.WriteString(m.form.View())
	b.WriteByte('\n')
	b.WriteString(m.statusBar("tab/enter next field  shift+tab back  enter on last field submit  esc back  ctrl+c quit"))
	return b.String()
}

func (m chatModel) viewGenerating(title string) string {
	var b strings.Builder
	b.WriteString(title + "\n\n")
	if m.genErr != "" {
		b.WriteString(errorStyle.Render("  ⚠ "+m.genErr) + "\n\n")
		b.WriteString(hintStyle.Render("  The questions could not be generated. Press enter to try again.") + "\n\n")
		b.WriteString(m.statusBar("enter retry  q quit"))
		return b.String()
	}
	profile, _ := m.sess.Profile()
	spinner := spinnerStyle.Render(spinnerFrames[m.frame])
	b.WriteString(fmt.Sprintf("  %s Preparing interview questions for %s...\n\n",
		spinner, strings.Join(profile.TechStack, ", ")))
	b.WriteString(m.statusBar("ctrl+c quit"))
	return b.String()
}

func (m chatModel) viewAssess(title string) string {
	questions, _ := m.sess.Questions()
	tech := questions[m.techIdx]
	question := tech.Questions[m.qIdx]

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(techHeaderStyle.Render(fmt.Sprintf("  Technical Assessment: %s (%d/%d)",
		tech.Technology, m.techIdx+1, len(questions))) + "\n\n")
	b.WriteString(questionStyle.Render(fmt.Sprintf("  Q%d of %d: ", m.qIdx+1, len(tech.Questions))))
	b.WriteString(question + "\n\n")
	b.WriteString(m.answer.View() + "\n")
	if m.assessErr != "" {
		b.WriteString(errorStyle.Render("  ⚠ "+m.assessErr) + "\n")
	}
	b.WriteByte('\n')
	b.WriteString(m.statusBar("ctrl+d submit answer  ctrl+c quit"))
	return b.String()
}

func (m chatModel) viewClosing(title string) string {
	profile, _ := m.sess.Profile()
	questions, _ := m.sess.Questions()

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString("  Assessment complete!\n")
	b.WriteString(greetingStyle.Render(m.opts.ThankYou) + "\n")

	b.WriteString(dividerStyle.Render("  ── Session Summary ──") + "\n\n")
	addField := func(label, value string) {
		b.WriteString("  " + detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}
	addField("Name", profile.FullName)
	addField("Email", profile.Email)
	addField("Experience", fmt.Sprintf("%d years", profile.YearsExperience))
	addField("Position", profile.DesiredRole)
	addField("Tech stack", strings.Join(profile.TechStack, ", "))
	addField("Questions", fmt.Sprintf("%d answered", questions.Total()))

	if m.saveErr != "" {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render("  ⚠ session could not be saved: "+m.saveErr) + "\n")
	}
	b.WriteByte('\n')
	b.WriteString(m.statusBar("enter/q leave"))
	return b.String()
}

func (m chatModel) statusBar(text string) string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return statusBarStyle.Width(width).Render(" " + text)
}

// RunChat launches the interactive screening TUI and blocks until the
// conversation ends. The returned phase is where the session finished
// (Closing for a completed screening, Exited for an early exit).
func RunChat(opts ChatOptions) (session.Phase, error) {
	if len(opts.ExitKeywords) == 0 {
		opts.ExitKeywords = session.DefaultExitKeywords
	}

	p := tea.NewProgram(newChatModel(opts), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return session.PhaseGreeting, err
	}
	final := result.(chatModel)
	if final.fatalErr != nil {
		return final.sess.Phase(), final.fatalErr
	}
	return final.sess.Phase(), nil
}
