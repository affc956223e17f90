// Package prompt asks the user for the project settings the command line left out.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viniciuscsouza/create-mcp-server/scaffold"
	"github.com/viniciuscsouza/create-mcp-server/validate"
)

type (
	questionKind byte

	choice struct {
		label string
		value string
	}

	question struct {
		validate func(string) error
		apply    func(*scaffold.PartialConfig, string) error
		title    string
		def      string
		choices  []choice
		kind     questionKind
	}

	model struct {
		err       error
		help      help.Model
		questions []question
		answers   []string
		ti        textinput.Model
		index     int
		cursor    int
		yes       bool
		aborted   bool
	}

	textKeyMap struct{}

	choiceKeyMap struct{}

	confirmKeyMap struct{}

	Prompter struct {
		in  io.Reader
		out io.Writer
	}
)

const (
	kindText questionKind = iota
	kindChoice
	kindConfirm
)

const (
	answerYes = "yes"
	answerNo  = "no"
)

var (
	ErrAborted = errors.New("prompt aborted")

	keys = struct {
		up     key.Binding
		down   key.Binding
		toggle key.Binding
		yes    key.Binding
		no     key.Binding
		submit key.Binding
		quit   key.Binding
	}{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		toggle: key.NewBinding(
			key.WithKeys("left", "right", "tab"),
			key.WithHelp("←/→", "toggle"),
		),
		yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}

	palette = struct {
		magenta lipgloss.Color
		red     lipgloss.Color
	}{
		magenta: lipgloss.Color("212"),
		red:     lipgloss.Color("203"),
	}

	highlightedStyle = lipgloss.NewStyle().Foreground(palette.magenta)
	errorStyle       = lipgloss.NewStyle().Foreground(palette.red)
	answeredStyle    = lipgloss.NewStyle().Faint(true)
)

func (textKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.submit, keys.quit}
}

func (textKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{keys.submit, keys.quit}}
}

func (choiceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.up, keys.down, keys.submit, keys.quit}
}

func (choiceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.up, keys.down, keys.submit},
		{keys.quit},
	}
}

func (confirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.yes, keys.no, keys.submit, keys.quit}
}

func (confirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.yes, keys.no, keys.toggle, keys.submit},
		{keys.quit},
	}
}

func boolAnswer(b bool) string {
	if b {
		return answerYes
	}

	return answerNo
}

func newModel(questions []question) model {
	ti := textinput.New()
	ti.CharLimit = 214
	ti.Width = 40
	ti.Prompt = "> "

	m := model{
		questions: questions,
		answers:   make([]string, len(questions)),
		help:      help.New(),
		ti:        ti,
	}

	m.prepare()

	return m
}

// prepare resets the input widgets for the current question.
func (m *model) prepare() {
	if m.index >= len(m.questions) {
		return
	}

	q := m.questions[m.index]

	m.err = nil

	switch q.kind {
	case kindText:
		m.ti.Reset()
		m.ti.Placeholder = q.def
		m.ti.Focus()
	case kindChoice:
		m.ti.Blur()
		m.cursor = 0

		for i := range q.choices {
			if q.choices[i].value == q.def {
				m.cursor = i
			}
		}
	case kindConfirm:
		m.ti.Blur()
		m.yes = q.def == answerYes
	}
}

func (m model) done() bool {
	return m.index >= len(m.questions)
}

func (m model) answer(value string) (tea.Model, tea.Cmd) {
	q := m.questions[m.index]

	if q.validate != nil {
		if err := q.validate(value); err != nil {
			m.err = err

			return m, nil
		}
	}

	m.answers[m.index] = value
	m.index += 1

	if m.done() {
		return m, tea.Quit
	}

	m.prepare()

	return m, textinput.Blink
}

func (m model) Init() tea.Cmd {
	if len(m.questions) == 0 {
		return tea.Quit
	}

	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.quit) {
			m.aborted = true

			return m, tea.Quit
		}

		if m.done() {
			return m, nil
		}

		q := m.questions[m.index]

		switch q.kind {
		case kindText:
			if key.Matches(msg, keys.submit) {
				value := strings.TrimSpace(m.ti.Value())
				if value == "" {
					value = q.def
				}

				return m.answer(value)
			}

			m.err = nil
			m.ti, cmd = m.ti.Update(msg)

			return m, cmd
		case kindChoice:
			switch {
			case key.Matches(msg, keys.up):
				if m.cursor > 0 {
					m.cursor -= 1
				}
			case key.Matches(msg, keys.down):
				if m.cursor < len(q.choices)-1 {
					m.cursor += 1
				}
			case key.Matches(msg, keys.submit):
				return m.answer(q.choices[m.cursor].value)
			}

			return m, nil
		case kindConfirm:
			switch {
			case key.Matches(msg, keys.yes):
				return m.answer(answerYes)
			case key.Matches(msg, keys.no):
				return m.answer(answerNo)
			case key.Matches(msg, keys.toggle):
				m.yes = !m.yes
			case key.Matches(msg, keys.submit):
				return m.answer(boolAnswer(m.yes))
			}

			return m, nil
		}
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	for i := 0; i < m.index && i < len(m.questions); i++ {
		b.WriteString(answeredStyle.Render(fmt.Sprintf("✔ %s %s", m.questions[i].title, m.answers[i])))
		b.WriteRune('\n')
	}

	if m.done() || m.aborted {
		return b.String()
	}

	q := m.questions[m.index]

	b.WriteString(highlightedStyle.Render("? "))
	b.WriteString(q.title)
	b.WriteRune('\n')

	var keyMap help.KeyMap

	switch q.kind {
	case kindText:
		b.WriteString(m.ti.View())
		b.WriteRune('\n')

		keyMap = textKeyMap{}
	case kindChoice:
		for i, c := range q.choices {
			if i == m.cursor {
				b.WriteString(highlightedStyle.Render("> " + c.label))
			} else {
				b.WriteString("  " + c.label)
			}

			b.WriteRune('\n')
		}

		keyMap = choiceKeyMap{}
	case kindConfirm:
		if m.yes {
			b.WriteString(highlightedStyle.Render("[Yes]") + " No ")
		} else {
			b.WriteString(" Yes " + highlightedStyle.Render("[No]"))
		}

		b.WriteRune('\n')

		keyMap = confirmKeyMap{}
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteRune('\n')
	}

	b.WriteRune('\n')
	b.WriteString(m.help.View(keyMap))
	b.WriteRune('\n')

	return b.String()
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Non-nil returned error wraps [ErrAborted] when the user quits.
func (p *Prompter) ask(questions []question) ([]string, error) {
	if len(questions) == 0 {
		return nil, nil
	}

	final, err := tea.NewProgram(newModel(questions), tea.WithInput(p.in), tea.WithOutput(p.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run interactive prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.aborted || !m.done() {
		return nil, ErrAborted
	}

	return m.answers, nil
}

func setBool(field func(*scaffold.PartialConfig) **bool) func(*scaffold.PartialConfig, string) error {
	return func(p *scaffold.PartialConfig, answer string) error {
		v := answer == answerYes
		*field(p) = &v

		return nil
	}
}

func confirmQuestion(title string, def bool, apply func(*scaffold.PartialConfig, string) error) question {
	return question{kind: kindConfirm, title: title, def: boolAnswer(def), apply: apply}
}

// questionsFor lists the questions for the fields of p that are still unset.
func questionsFor(p *scaffold.PartialConfig, d scaffold.Defaults) []question {
	var qs []question

	if p.Name == "" {
		qs = append(qs, question{
			kind:  kindText,
			title: "Project name:",
			def:   d.Name,
			validate: func(s string) error {
				if !validate.IsValidName(s) {
					return errors.New("use lowercase letters, digits, '-', '_', '.' or '~', and do not start with '.', '_' or '-'")
				}

				return nil
			},
			apply: func(p *scaffold.PartialConfig, s string) error {
				p.Name = s

				return nil
			},
		})
	}

	if p.Description == "" {
		qs = append(qs, question{
			kind:  kindText,
			title: "Project description:",
			def:   d.Description,
			apply: func(p *scaffold.PartialConfig, s string) error {
				p.Description = s

				return nil
			},
		})
	}

	if p.Transport == "" {
		qs = append(qs, question{
			kind:  kindChoice,
			title: "Select the transport:",
			def:   d.Transport.String(),
			choices: []choice{
				{label: "STDIO (recommended for assistants)", value: scaffold.TransportStdio.String()},
				{label: "HTTP (for remote clients)", value: scaffold.TransportHTTP.String()},
			},
			apply: func(p *scaffold.PartialConfig, s string) error {
				return p.Transport.UnmarshalText([]byte(s))
			},
		})
	}

	if p.IncludeExamples == nil {
		qs = append(qs, confirmQuestion("Include example tools, resources and prompts?", d.IncludeExamples, setBool(func(p *scaffold.PartialConfig) **bool { return &p.IncludeExamples })))
	}

	if p.InitializeGit == nil {
		qs = append(qs, confirmQuestion("Initialize a Git repository?", d.InitializeGit, setBool(func(p *scaffold.PartialConfig) **bool { return &p.InitializeGit })))
	}

	if p.InstallDependencies == nil {
		qs = append(qs, confirmQuestion("Install dependencies now?", d.InstallDependencies, setBool(func(p *scaffold.PartialConfig) **bool { return &p.InstallDependencies })))
	}

	return qs
}

func applyAnswers(p *scaffold.PartialConfig, qs []question, answers []string) error {
	for i := range qs {
		if err := qs[i].apply(p, answers[i]); err != nil {
			return err
		}
	}

	return nil
}

// Complete asks for every field of partial that is still unset, offering the values of d as defaults.
// Non-nil returned error wraps [ErrAborted] when the user quits.
func (p *Prompter) Complete(partial scaffold.PartialConfig, d scaffold.Defaults) (scaffold.PartialConfig, error) {
	qs := questionsFor(&partial, d)

	answers, err := p.ask(qs)
	if err != nil {
		return partial, err
	}

	if err = applyAnswers(&partial, qs, answers); err != nil {
		return partial, err
	}

	return partial.Fill(d), nil
}

func overwriteQuestion(path string) question {
	return question{kind: kindConfirm, title: fmt.Sprintf("%s already exists. Overwrite it?", path), def: answerNo}
}

// ConfirmOverwrite asks whether the existing path may be replaced. It defaults to no.
func (p *Prompter) ConfirmOverwrite(path string) (bool, error) {
	answers, err := p.ask([]question{overwriteQuestion(path)})
	if err != nil {
		return false, err
	}

	return answers[0] == answerYes, nil
}
