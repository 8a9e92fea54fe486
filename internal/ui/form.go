package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/talentscout-ai/talentscout/internal/collect"
	"github.com/talentscout-ai/talentscout/internal/model"
)

// Intake form field indexes, in render order.
const (
	fieldFullName = iota
	fieldEmail
	fieldPhone
	fieldYears
	fieldRole
	fieldLocation
	fieldTechStack
	fieldCount
)

var fieldSpecs = [fieldCount]struct {
	label       string
	placeholder string
	charLimit   int
}{
	fieldFullName:  {"Full name", "John Doe", 100},
	fieldEmail:     {"Email address", "john.doe@email.com", 100},
	fieldPhone:     {"Phone number", "+1 (555) 123-4567", 20},
	fieldYears:     {"Years of experience", "0-50", 2},
	fieldRole:      {"Desired position", "Backend Developer", 100},
	fieldLocation:  {"Current location", "San Francisco, CA", 100},
	fieldTechStack: {"Tech stack", "Python, JavaScript, React, PostgreSQL", 300},
}

// intakeForm is the candidate information form: one textinput per field,
// tab/enter focus cycling, per-field validation errors rendered inline.
type intakeForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	errs   map[string]string // field label -> reason
}

func newIntakeForm() *intakeForm {
	f := &intakeForm{errs: make(map[string]string)}
	for i, spec := range fieldSpecs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.CharLimit = spec.charLimit
		ti.Width = 44
		f.inputs[i] = ti
	}
	f.inputs[f.focus].Focus()
	return f
}

// onLastField reports whether focus is on the final field, where enter
// submits instead of advancing.
func (f *intakeForm) onLastField() bool {
	return f.focus == fieldCount-1
}

func (f *intakeForm) next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *intakeForm) prev() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *intakeForm) setFocus(idx int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = idx
	return f.inputs[f.focus].Focus()
}

// Update forwards msg to the inputs; only the focused one reacts to keys.
func (f *intakeForm) Update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, fieldCount)
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// collectForm snapshots the current input values.
func (f *intakeForm) collectForm() collect.Form {
	return collect.Form{
		FullName:        f.inputs[fieldFullName].Value(),
		Email:           f.inputs[fieldEmail].Value(),
		Phone:           f.inputs[fieldPhone].Value(),
		YearsExperience: f.inputs[fieldYears].Value(),
		DesiredRole:     f.inputs[fieldRole].Value(),
		Location:        f.inputs[fieldLocation].Value(),
		TechStack:       f.inputs[fieldTechStack].Value(),
	}
}

// setErrors replaces the inline validation errors shown under each field.
func (f *intakeForm) setErrors(errs []model.ValidationError) {
	f.errs = make(map[string]string, len(errs))
	for _, e := range errs {
		if _, ok := f.errs[e.Field]; !ok {
			f.errs[e.Field] = e.Reason
		}
	}
}

func (f *intakeForm) View() string {
	var b strings.Builder
	for i, spec := range fieldSpecs {
		label := labelStyle
		if i == f.focus {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(spec.label))
		b.WriteString(f.inputs[i].View())
		b.WriteByte('\n')
		if reason, ok := f.errs[spec.label]; ok {
			b.WriteString(fieldErrorStyle.Render("⚠ " + spec.label + " " + reason))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
