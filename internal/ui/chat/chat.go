// Package chat is the interactive LLM chat screen.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"chore/internal/llm"
)

// streamer is the slice of llm.Client the chat screen needs.
type streamer interface {
	StreamChat(ctx context.Context, msgs []llm.Message, onDelta func(string)) (string, error)
}

type (
	deltaMsg string
	doneMsg  struct{ full string }
	errMsg   struct{ err error }
)

var (
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the BubbleTea model for the chat screen.
type Model struct {
	client streamer
	ctx    context.Context

	history []llm.Message
	partial string // assistant reply being streamed
	waiting bool
	lastErr string

	stream chan string

	width  int
	height int
	ready  bool

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
}

// New builds the chat model around an LLM client.
func New(ctx context.Context, client streamer) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask something"
	ta.Prompt = "> "
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:  client,
		ctx:     ctx,
		input:   ta,
		spinner: sp,
	}
}

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, client *llm.Client) error {
	p := tea.NewProgram(New(ctx, client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if !m.waiting {
				return m.send()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshTranscript()

	case deltaMsg:
		m.partial += string(msg)
		m.refreshTranscript()
		return m, receiveDelta(m.stream)

	case doneMsg:
		m.waiting = false
		m.partial = ""
		m.history = append(m.history, llm.Message{Role: "assistant", Content: msg.full})
		m.refreshTranscript()
		m.input.Focus()
		return m, textarea.Blink

	case errMsg:
		m.waiting = false
		m.partial = ""
		m.lastErr = msg.err.Error()
		m.refreshTranscript()
		m.input.Focus()
		return m, textarea.Blink

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// send moves the typed prompt into history and starts a streaming request.
// Deltas are fed through a channel so the screen repaints as tokens arrive.
func (m Model) send() (Model, tea.Cmd) {
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return m, nil
	}

	m.history = append(m.history, llm.Message{Role: "user", Content: prompt})
	m.input.Reset()
	m.input.Blur()
	m.waiting = true
	m.lastErr = ""
	m.refreshTranscript()

	ch := make(chan string, 64)
	m.stream = ch
	msgs := append([]llm.Message(nil), m.history...)
	request := func() tea.Msg {
		full, err := m.client.StreamChat(m.ctx, msgs, func(d string) { ch <- d })
		close(ch)
		if err != nil {
			return errMsg{err: err}
		}
		return doneMsg{full: full}
	}
	return m, tea.Batch(request, receiveDelta(ch), m.spinner.Tick)
}

// receiveDelta waits for the next streamed token. A closed channel ends the
// receive loop; the terminal doneMsg or errMsg arrives from the request cmd.
func receiveDelta(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-ch
		if !ok {
			return nil
		}
		return deltaMsg(d)
	}
}

func (m *Model) layout() {
	inputHeight := m.input.Height() + 1
	m.input.SetWidth(m.width - 2)

	vpHeight := m.height - inputHeight - 2
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.width-2),
	)
	if err == nil {
		m.renderer = r
	}
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) transcript() string {
	var b strings.Builder
	for _, msg := range m.history {
		switch msg.Role {
		case "user":
			b.WriteString(userStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(msg.Content)
			b.WriteString("\n\n")
		case "assistant":
			b.WriteString(m.renderMarkdown(msg.Content))
			b.WriteString("\n")
		}
	}
	if m.partial != "" {
		b.WriteString(m.partial)
		b.WriteString("\n")
	}
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render("error: " + m.lastErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMarkdown(s string) string {
	if m.renderer == nil {
		return s
	}
	out, err := m.renderer.Render(s)
	if err != nil {
		return s
	}
	return out
}

func (m Model) View() string {
	if !m.ready {
		return "starting chat..."
	}

	status := statusStyle.Render("enter to send, esc to quit")
	if m.waiting {
		status = fmt.Sprintf("%s %s", m.spinner.View(), statusStyle.Render("thinking"))
	}

	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), m.input.View(), status)
}
