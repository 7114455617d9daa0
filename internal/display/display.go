// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a status bar and an input prompt at the bottom
// of the terminal. All application output is printed above the rendered
// area via Program.Println / Printf, so menu screens scroll naturally
// while the prompt stays put.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))
)

// StatusFunc supplies the text for the bottom status bar. Called once a
// second from the render loop; keep it cheap.
type StatusFunc func() string

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call the print helpers and read from [UI.InputChan] after
// [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	status  StatusFunc
	done    atomic.Bool
}

// NewUI creates the display. A nil status leaves the bar empty.
func NewUI(status StatusFunc) *UI {
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format, a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintTitle prints a section heading like "===== Ingredients =====".
func (u *UI) PrintTitle(text string) {
	u.Println(titleStyle.Render("  ===== " + text + " ====="))
}

// PrintLine prints primary body text.
func (u *UI) PrintLine(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintSuccess prints a confirmation line.
func (u *UI) PrintSuccess(text string) {
	u.Println(successStyle.Render("  ✅ " + text))
}

// PrintError prints an error line.
func (u *UI) PrintError(text string) {
	u.Println(urgentStyle.Render("  ❌ " + text))
}

// PrintWarn prints a warning line.
func (u *UI) PrintWarn(text string) {
	u.Println(warnStyle.Render("  ⚠️  " + text))
}

// PrintRule prints a horizontal divider of the given width.
func (u *UI) PrintRule(width int) {
	u.Println(ruleStyle.Render("  " + strings.Repeat("-", width)))
}

// PrintUserInput echoes the user's typed line into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("krua") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt so the textinput width math stays correct;
	// styled prompts add invisible ANSI bytes that break scrolling.
	ti.Prompt = "krua> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		input:    ti,
		inputCh:  u.inputCh,
		readyCh:  u.readyCh,
		statusFn: u.status,
		echoFn:   u.PrintUserInput,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	input    textinput.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	statusFn StatusFunc
	echoFn   func(string)
	status   string
	width    int
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			// Empty lines matter here: a blank entry finishes the
			// line-collection loop in recipe forms.
			m.inputCh <- v
			echoFn := m.echoFn
			return m, func() tea.Msg {
				echoFn(v)
				return nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = 6 // "krua> "
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case tickMsg:
		if m.statusFn != nil {
			m.status = m.statusFn()
		}
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	if m.status != "" {
		w := m.width
		if w <= 0 {
			w = 80
		}
		b.WriteString(barBg.Width(w).Render(" " + m.status + " "))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}
