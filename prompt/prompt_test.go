package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciuscsouza/create-mcp-server/scaffold"
)

func press(t *testing.T, m model, msgs ...tea.KeyMsg) model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)

		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}

	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestQuestionsForAllUnset(t *testing.T) {
	var p scaffold.PartialConfig

	qs := questionsFor(&p, scaffold.DefaultValues())
	require.Len(t, qs, 6)

	assert.Equal(t, kindText, qs[0].kind)
	assert.Equal(t, "my-mcp-server", qs[0].def)
	assert.Equal(t, kindText, qs[1].kind)
	assert.Equal(t, kindChoice, qs[2].kind)
	assert.Equal(t, "stdio", qs[2].def)

	for _, q := range qs[3:] {
		assert.Equal(t, kindConfirm, q.kind)
		assert.Equal(t, answerYes, q.def)
	}
}

func TestQuestionsForSkipsProvided(t *testing.T) {
	no := false
	p := scaffold.PartialConfig{
		Name:          "weather",
		Transport:     scaffold.TransportHTTP,
		InitializeGit: &no,
	}

	qs := questionsFor(&p, scaffold.DefaultValues())
	require.Len(t, qs, 3)
	assert.Equal(t, "Project description:", qs[0].title)
	assert.Equal(t, "Include example tools, resources and prompts?", qs[1].title)
	assert.Equal(t, "Install dependencies now?", qs[2].title)
}

func TestApplyAnswers(t *testing.T) {
	var p scaffold.PartialConfig

	qs := questionsFor(&p, scaffold.DefaultValues())
	err := applyAnswers(&p, qs, []string{"weather", "Forecasts", "http", answerNo, answerYes, answerNo})
	require.NoError(t, err)

	cfg, err := p.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "weather", cfg.Name)
	assert.Equal(t, "Forecasts", cfg.Description)
	assert.Equal(t, scaffold.TransportHTTP, cfg.Transport)
	assert.False(t, cfg.IncludeExamples)
	assert.True(t, cfg.InitializeGit)
	assert.False(t, cfg.InstallDependencies)
}

func TestApplyAnswersBadTransport(t *testing.T) {
	p := scaffold.PartialConfig{Name: "weather", Description: "d"}

	qs := questionsFor(&p, scaffold.DefaultValues())
	err := applyAnswers(&p, qs[:1], []string{"carrier-pigeon"})
	assert.Error(t, err)
}

func TestModelWalksAllQuestions(t *testing.T) {
	var p scaffold.PartialConfig

	m := newModel(questionsFor(&p, scaffold.DefaultValues()))

	m = press(t, m, typed("weather"), enter)
	m = press(t, m, enter)
	m = press(t, m, down, enter)
	m = press(t, m, typed("n"))
	m = press(t, m, enter)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, enter)

	require.True(t, m.done())
	assert.False(t, m.aborted)
	assert.Equal(t, []string{"weather", "A custom MCP server", "http", answerNo, answerYes, answerNo}, m.answers)
}

func TestModelRejectsInvalidName(t *testing.T) {
	var p scaffold.PartialConfig

	m := newModel(questionsFor(&p, scaffold.DefaultValues()))

	m = press(t, m, typed("Bad Name"), enter)
	assert.Equal(t, 0, m.index)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "lowercase")

	m = press(t, m, typed("x"))
	assert.NoError(t, m.err)
}

func TestModelChoiceCursorBounds(t *testing.T) {
	p := scaffold.PartialConfig{Name: "weather", Description: "d"}

	m := newModel(questionsFor(&p, scaffold.DefaultValues()))
	require.Equal(t, kindChoice, m.questions[0].kind)
	assert.Equal(t, 0, m.cursor)

	m = press(t, m, down, down, down)
	assert.Equal(t, 1, m.cursor)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
}

func TestModelAbort(t *testing.T) {
	var p scaffold.PartialConfig

	m := newModel(questionsFor(&p, scaffold.DefaultValues()))
	m = press(t, m, typed("weather"), enter, esc)

	assert.True(t, m.aborted)
	assert.False(t, m.done())
}

func TestModelView(t *testing.T) {
	m := newModel([]question{
		{kind: kindConfirm, title: "Overwrite it?", def: answerNo},
	})

	view := m.View()
	assert.Contains(t, view, "Overwrite it?")
	assert.Contains(t, view, "[No]")

	m = press(t, m, typed("y"))
	require.True(t, m.done())
	assert.Contains(t, m.View(), "✔ Overwrite it? yes")
}

func TestOverwriteQuestion(t *testing.T) {
	m := newModel([]question{overwriteQuestion("/tmp/weather")})

	view := m.View()
	assert.Contains(t, view, "/tmp/weather already exists. Overwrite it?")
	assert.NotContains(t, view, "not empty")

	m = press(t, m, enter)
	require.True(t, m.done())
	assert.Equal(t, []string{answerNo}, m.answers)
}

func TestCompleteNothingToAsk(t *testing.T) {
	yes := true
	partial := scaffold.PartialConfig{
		Name:                "weather",
		Description:         "d",
		Transport:           scaffold.TransportStdio,
		IncludeExamples:     &yes,
		InitializeGit:       &yes,
		InstallDependencies: &yes,
	}

	got, err := New(nil, nil).Complete(partial, scaffold.DefaultValues())
	require.NoError(t, err)
	assert.Equal(t, partial, got)
}
