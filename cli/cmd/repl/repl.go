package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/altc/lang"
	"github.com/ardnew/altc/log"
)

// editDoneMsg is sent when buffer editing completes successfully.
type editDoneMsg struct{}

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a compile
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-compile error.
type editErrorMsg struct{ err error }

const (
	scriptPrompt = "♪ "
	ctrlPrefix   = ':'
)

func helpMessage() string {
	return `
Commands (prefix with ':'):

  :help         Print this cruft
  :show         Print the compiled buffer
  :tree         Print the statement tree of the buffer
  :undo         Remove the last line
  :reset        Remove every line
  :edit         Edit the buffer in external $EDITOR
  :save <path>  Write the buffer to a script file
  :clear        Clear screen
  :quit         Exit REPL

Usage:
  Type a script line to append it to the buffer
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation
  Use Shift+Up/Shift+Down for history of the current kind of input only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the kind of input: script lines or commands.
type inputMode int

const (
	modeScript inputMode = iota
	modeCtrl
)

// isCtrl reports whether input is a command.
func isCtrl(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), string(ctrlPrefix))
}

func modeOf(input string) inputMode {
	if isCtrl(input) {
		return modeCtrl
	}

	return modeScript
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatInput formats the echo line with prompt and input styled.
func formatInput(input string) string {
	return promptStyle.Render(scriptPrompt) + inputStyle.Render(input)
}

// Config configures a REPL session.
type Config struct {
	// Lines seed the buffer.
	Lines []string
	// CacheDir holds the history file. Without it history is not persisted.
	CacheDir string
	Logger   log.Logger
	// Compile are the options used for every compilation of the buffer.
	Compile []lang.Option
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	buffer       *Buffer
	names        []string // bound names offered for completion
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts an interactive session composing a script line by line.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.Int("lines", len(cfg.Lines)),
	)

	buffer := NewBuffer(cfg.Lines, cfg.Compile...)
	if buffer.Len() > 0 {
		if _, err := buffer.Compile(ctx); err != nil {
			return err
		}
	}

	var path string
	if cfg.CacheDir != "" {
		path = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, buffer, history, cfg.Logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	buffer *Buffer,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(scriptPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		buffer:     buffer,
		names:      buffer.Names(),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(scriptPrompt) - 2

		return m, nil

	case editDoneMsg:
		m.names = m.buffer.Names()
		m.logger.TraceContext(
			m.ctxFunc(),
			"repl edit complete",
			slog.Int("lines", m.buffer.Len()),
		)

		return m, tea.Println(resultStyle.Render("buffer updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := fmt.Sprintf("%d lines; type a script line or :help", m.buffer.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1, false), nil

	case tea.KeyDown:
		return m.historyMove(1, false), nil

	case tea.KeyShiftUp:
		return m.historyMove(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyMove(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		// Space is a "breaking" key while tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, starting a tab cycle if none is
// active. A sole candidate is completed immediately.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also drops the candidates once the typed word
// already equals the sole candidate. autoConfirm should be false for
// deletions and cursor navigation.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// historyMove steps through history by step. With sameMode it skips entries
// of a different kind than the current input.
func (m model) historyMove(step int, sameMode bool) model {
	mode := modeOf(m.input.Value())

	for i := m.historyIdx + step; i >= 0 && i <= m.history.Len(); i += step {
		if i == m.history.Len() {
			m.historyIdx = i
			m.input.SetValue("")

			break
		}

		entry, err := m.history.GetEntry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != mode {
			continue
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.CursorEnd()

		break
	}

	m.tabActive = false
	m.matches = nil

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	mode := modeOf(input)
	if err := m.history.Write(input, mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "repl history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl append", slog.String("line", input))

	m.buffer.Append(input)
	m.names = m.buffer.Names()

	echo := tea.Println(formatInput(input))

	if _, err := m.buffer.Compile(m.ctxFunc()); err != nil {
		return m, tea.Sequence(echo, tea.Println(warnStyle.Render("warning: "+err.Error())))
	}

	return m, echo
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(strings.TrimPrefix(input, string(ctrlPrefix)))
	if len(parts) == 0 {
		return m, nil
	}

	echo := tea.Println(formatInput(input))

	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "s", "show":
		out, err := m.buffer.Output(m.ctxFunc())
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(strings.TrimRight(out, "\n"))))

	case "t", "tree":
		return m, tea.Sequence(echo, tea.Println(m.tree()))

	case "u", "undo":
		line, ok := m.buffer.Undo()
		if !ok {
			return m, tea.Sequence(echo, tea.Println(hintStyle.Render("buffer is empty")))
		}

		m.names = m.buffer.Names()

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("removed: "+line)))

	case "r", "reset":
		m.buffer.Reset()
		m.names = nil

		return m, tea.Sequence(echo, tea.Println(hintStyle.Render("buffer cleared")))

	case "w", "save":
		if len(args) != 1 {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("usage: :save <path>")))
		}

		if err := os.WriteFile(args[0], []byte(m.buffer.Source()), 0o600); err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render("saved "+args[0])))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("unknown command: " + cmd + " (try :help)"),
		)
	}
}

// tree renders the statement tree of the buffer, or the partial tree and the
// error when it does not compile.
func (m model) tree() string {
	var b strings.Builder

	res, err := m.buffer.Compile(m.ctxFunc())
	if err == nil {
		_ = res.Root.Print(&b)

		return strings.TrimRight(b.String(), "\n")
	}

	if e := new(lang.Error); errors.As(err, &e) && e.Partial != nil {
		_ = e.Partial.Print(&b)
	}

	b.WriteString(errorStyle.Render("error: " + err.Error()))

	return b.String()
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		buffer:  m.buffer,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if errors.Is(err, ErrEditDeclined) {
			return editDeclinedMsg{}
		}

		if err != nil {
			return editErrorMsg{err: err}
		}

		if !cmd.edited {
			return editCancelledMsg{}
		}

		return editDoneMsg{}
	})
}
