package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/talentscout-ai/talentscout/internal/model"
)

type reviewView int

const (
	reviewList reviewView = iota
	reviewDetail
)

// Lines per session item in the list view (name + subtitle + blank separator).
const sessionItemHeight = 3

type reviewModel struct {
	store    model.SessionStore
	sessions []model.SessionSummary

	cursor   int
	view     reviewView
	width    int
	height   int
	ready    bool
	listView viewport.Model

	detail    model.SessionRecord
	detailErr string
	detailVP  viewport.Model
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == reviewDetail {
			m.detailVP.Width = m.width - 4
			m.detailVP.Height = m.height - 4
			m.detailVP.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == reviewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m reviewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "enter":
		return m.openDetail()
	}

	var cmd tea.Cmd
	m.listView, cmd = m.listView.Update(msg)
	return m, cmd
}

func (m reviewModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = reviewList
		return m, nil
	}

	var cmd tea.Cmd
	m.detailVP, cmd = m.detailVP.Update(msg)
	return m, cmd
}

func (m *reviewModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.sessions)-1, 0))
	m.listView.SetContent(renderSessions(m.sessions, m.cursor))
	m.ensureCursorVisible()
}

func (m *reviewModel) ensureCursorVisible() {
	cursorTop := m.cursor * sessionItemHeight
	cursorBottom := cursorTop + sessionItemHeight - 1

	if cursorTop < m.listView.YOffset {
		m.listView.SetYOffset(cursorTop)
	} else if cursorBottom >= m.listView.YOffset+m.listView.Height {
		m.listView.SetYOffset(cursorBottom - m.listView.Height + 1)
	}
}

func (m reviewModel) openDetail() (tea.Model, tea.Cmd) {
	if len(m.sessions) == 0 {
		return m, nil
	}

	sum := m.sessions[m.cursor]
	rec, err := m.store.GetSession(sum.ID)
	m.detail = rec
	m.detailErr = ""
	if err != nil {
		m.detailErr = fmt.Sprintf("failed to load session: %v", err)
	}

	m.view = reviewDetail
	m.detailVP = viewport.New(max(m.width-4, 20), max(m.height-4, 5))
	m.detailVP.SetContent(m.renderDetail())
	return m, nil
}

func (m *reviewModel) recalcLayout() {
	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	width := max(m.width-4, 20)
	height := max(m.height-4, 5)

	if !m.ready {
		m.listView = viewport.New(width, height)
		m.ready = true
	} else {
		m.listView.Width = width
		m.listView.Height = height
	}
	m.listView.SetContent(renderSessions(m.sessions, m.cursor))
}

func (m reviewModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == reviewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m reviewModel) viewList() string {
	header := techHeaderStyle.Render(fmt.Sprintf(" Screening Sessions (%d)", len(m.sessions)))
	border := activeBorderStyle.Width(max(m.width-2, 20))
	content := border.Render(m.listView.View())
	status := statusBarStyle.Width(max(m.width, 20)).Render(" ↑/↓/j/k cursor  enter detail  q quit")
	return header + "\n" + content + "\n" + status
}

func (m reviewModel) viewDetail() string {
	header := techHeaderStyle.Render(" Session Detail")
	border := activeBorderStyle.Width(max(m.width-2, 20))
	content := border.Render(m.detailVP.View())
	status := statusBarStyle.Width(max(m.width, 20)).Render(" ↑/↓ scroll  esc/backspace back  q quit")
	return header + "\n" + content + "\n" + status
}

func (m reviewModel) renderDetail() string {
	if m.detailErr != "" {
		return errorStyle.Render("⚠ " + m.detailErr)
	}

	rec := m.detail
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Name", rec.Profile.FullName)
	addField("Email", rec.Profile.Email)
	addField("Phone", rec.Profile.Phone)
	addField("Experience", fmt.Sprintf("%d years", rec.Profile.YearsExperience))
	addField("Position", rec.Profile.DesiredRole)
	addField("Location", rec.Profile.Location)
	addField("Tech stack", strings.Join(rec.Profile.TechStack, ", "))
	addField("Submitted", rec.SubmittedAt.Local().Format("2006-01-02 15:04"))

	wrapWidth := max(m.width-10, 20)
	for _, tq := range rec.Questions {
		b.WriteByte('\n')
		fill := strings.Repeat("─", max(wrapWidth-len(tq.Technology)-6, 3))
		b.WriteString(dividerStyle.Render("── "+tq.Technology+" "+fill) + "\n\n")

		answers := rec.Answers[tq.Technology]
		for i, q := range tq.Questions {
			b.WriteString(questionStyle.Render(fmt.Sprintf("Q%d: ", i+1)))
			b.WriteString(wordWrap(q, wrapWidth) + "\n")
			if i < len(answers) {
				b.WriteString(answerStyle.Render(wordWrap("A: "+answers[i], wrapWidth)) + "\n")
			}
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func renderSessions(sessions []model.SessionSummary, cursor int) string {
	if len(sessions) == 0 {
		return "  (no sessions recorded yet)"
	}

	var b strings.Builder
	for i, s := range sessions {
		titleSt := listTitleStyle
		subtitleSt := listSubtitleStyle
		prefix := "  "
		if i == cursor {
			titleSt = selectedListTitleStyle
			subtitleSt = selectedListSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(s.FullName))
		b.WriteByte('\n')

		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(fmt.Sprintf("%s · %s · %s",
			s.DesiredRole, s.Email, s.SubmittedAt.Local().Format("2006-01-02"))))
		b.WriteByte('\n')

		if i < len(sessions)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RunReview launches the interactive session browser.
func RunReview(store model.SessionStore) error {
	sessions, err := store.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	m := reviewModel{
		store:    store,
		sessions: sessions,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
