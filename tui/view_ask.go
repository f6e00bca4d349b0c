// view_ask.go — the question form.
//
// One text input, one submit control, and an answer or error region
// underneath. The request runs asynchronously; while it is in flight the
// input is blurred and the submit control is disabled.
package tui

import (
	"context"
	"strings"

	"github.com/DachengChen/ragask/form"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	labelAsk    = "Ask"
	labelAsking = "Asking..."
)

type AskView struct {
	form    *form.Controller
	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
}

func NewAskView(ctrl *form.Controller) *AskView {
	ti := textinput.New()
	ti.Placeholder = "Enter your question here"
	ti.Prompt = "> "
	ti.PromptStyle = StylePrompt
	ti.CharLimit = 0
	ti.Focus()

	return &AskView{
		form:  ctrl,
		input: ti,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
		),
		width: 80,
	}
}

func (v *AskView) Name() string { return "Ask" }

func (v *AskView) WantsTextInput() bool { return true }

func (v *AskView) SetSize(width, height int) {
	v.width = width
	v.height = height
	// prompt + cursor
	v.input.Width = max(width-4, 10)
}

func (v *AskView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "Enter", Desc: "ask"},
		{Key: "Ctrl+L", Desc: "clear"},
		{Key: "Esc", Desc: "quit"},
	}
}

func (v *AskView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *AskView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case AnswerMsg:
		v.form.Resolve(msg.Answer, msg.Err)
		return v, v.input.Focus()

	case spinner.TickMsg:
		if !v.loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *AskView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	// The input is disabled while a request is in flight.
	if v.loading() {
		return v, nil
	}

	switch msg.String() {
	case "enter":
		return v, v.submit()
	case "ctrl+l":
		v.input.SetValue("")
		v.form.SetQuery("")
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.form.SetQuery(v.input.Value())
	return v, cmd
}

// submit starts a request unless the query is blank or one is already
// pending.
func (v *AskView) submit() tea.Cmd {
	query, err := v.form.Begin()
	if err != nil {
		return nil
	}
	v.input.Blur()

	ctrl := v.form
	ask := func() tea.Msg {
		answer, err := ctrl.Run(context.Background(), query)
		return AnswerMsg{Query: query, Answer: answer, Err: err}
	}
	return tea.Batch(ask, v.spinner.Tick)
}

func (v *AskView) loading() bool {
	return v.form.State().Loading()
}

// SubmitLabel is the text on the submit control.
func (v *AskView) SubmitLabel() string {
	if v.loading() {
		return labelAsking
	}
	return labelAsk
}

func (v *AskView) View() string {
	state := v.form.Snapshot()

	var button string
	if state.IsLoading {
		button = v.spinner.View() + " " + StyleButtonDisabled.Render(v.SubmitLabel())
	} else {
		button = StyleButton.Render(v.SubmitLabel())
	}

	sections := []string{
		StyleTitle.Render("Ask a Question to the RAG Engine"),
		v.input.View(),
		"",
		button,
	}

	wrap := lipgloss.NewStyle().Width(max(v.width-2, 20))

	if state.Answer != "" {
		sections = append(sections,
			"",
			StyleAnswerHeading.Render("Answer:"),
			wrap.Render(strings.TrimRight(state.Answer, "\n")),
		)
	}

	if state.Error != "" {
		sections = append(sections, "", StyleErrorBox.Render(state.Error))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
