package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/hylla/taskboard/internal/app"
	"github.com/hylla/taskboard/internal/domain"
)

// Service represents service data used by this package.
type Service interface {
	Snapshot(context.Context) (app.Snapshot, error)
	AddTask(context.Context, string) (domain.Task, bool, error)
	ToggleTask(context.Context, int64) (domain.Task, bool, error)
	DeleteTask(context.Context, int64) (bool, error)
}

// focusArea identifies which component receives key presses.
type focusArea int

// focusInput and related constants define package defaults.
const (
	focusInput focusArea = iota
	focusList
)

// Screen geometry shared by View and mouse hit testing.
const (
	inputTopLine   = 3 // title, subtitle, blank
	listTopLine    = 7 // input box takes three lines, then one blank
	toggleColStart = 2
	toggleColEnd   = 5
	textColStart   = 6
	rowTrailer     = 3 // gap plus delete marker
	summaryLines   = 2 // blank plus rule and counts
	statusLines    = 2 // blank plus status text
	defaultWidth   = 72
	minWidth       = 24
	maxWidth       = 96
)

// Model is the root view of the board. It owns the pending-input buffer and
// a rendered copy of the collection that is refreshed after every mutation.
type Model struct {
	svc Service

	ready  bool
	loaded bool
	width  int
	height int
	err    error

	status string

	help     help.Model
	keys     keyMap
	text     UIText
	input    textinput.Model
	focus    focusArea
	showHelp bool

	tasks    []domain.Task
	summary  app.Summary
	selected int
	offset   int

	md             *markdownRenderer
	writeClipboard ClipboardWriter
}

// loadedMsg carries message data through update handling.
type loadedMsg struct {
	snapshot app.Snapshot
	err      error
}

// clipboardMsg reports the outcome of a clipboard copy.
type clipboardMsg struct {
	text string
	err  error
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	text := DefaultUIText()
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = text.Placeholder
	input.CharLimit = 0
	input.Focus()
	m := Model{
		svc:            svc,
		status:         "loading...",
		help:           h,
		keys:           newKeyMap(),
		text:           text,
		input:          input,
		focus:          focusInput,
		md:             &markdownRenderer{},
		writeClipboard: systemClipboard,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		cmd := m.applySnapshot(msg.snapshot)
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, cmd

	case clipboardMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("copied %q", truncate(msg.text, 32))
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	default:
		if m.focus == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// loadData loads required data for the current operation.
func (m Model) loadData() tea.Msg {
	snap, err := m.svc.Snapshot(context.Background())
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{snapshot: snap}
}

// refresh re-reads the board synchronously so derived views are current
// before the next event is handled.
func (m *Model) refresh() tea.Cmd {
	snap, err := m.svc.Snapshot(context.Background())
	if err != nil {
		m.err = err
		return nil
	}
	return m.applySnapshot(snap)
}

// applySnapshot stores a board snapshot and keeps selection and focus valid.
func (m *Model) applySnapshot(snap app.Snapshot) tea.Cmd {
	m.loaded = true
	m.tasks = snap.Tasks
	m.summary = snap.Summary
	m.selected = clamp(m.selected, 0, len(m.tasks)-1)
	m.ensureVisible()
	if len(m.tasks) == 0 && m.focus == focusList {
		return m.setFocus(focusInput)
	}
	return nil
}

// setFocus moves keyboard focus between the input and the list.
func (m *Model) setFocus(area focusArea) tea.Cmd {
	m.focus = area
	if area == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// handleKey routes one key press by error state, help overlay, and focus.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.forceQuit) {
		return m, tea.Quit
	}
	if m.err != nil {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.retry):
			m.err = nil
			m.status = "reloading..."
			return m, m.loadData
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.helpAlways) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		if msg.String() == "esc" || key.Matches(msg, m.keys.toggleHelp) || key.Matches(msg, m.keys.quit) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

// handleInputKey handles keys while the pending-input buffer has focus.
func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		return m.addTask()
	case key.Matches(msg, m.keys.focusList):
		if len(m.tasks) == 0 {
			return m, nil
		}
		m.setFocus(focusList)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleListKey handles keys while the task list has focus.
func (m Model) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.focusInput):
		return m, m.setFocus(focusInput)
	case key.Matches(msg, m.keys.moveUp):
		m.moveSelection(-1)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.toggleTask):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m.toggleTask(task.ID)
	case key.Matches(msg, m.keys.deleteTask):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m.deleteTask(task.ID)
	case key.Matches(msg, m.keys.copyTask):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.copyTextCmd(task.Text)
	}
	return m, nil
}

// addTask submits the pending-input buffer. Blank input is ignored and kept.
func (m Model) addTask() (tea.Model, tea.Cmd) {
	task, added, err := m.svc.AddTask(context.Background(), m.input.Value())
	if added {
		m.input.Reset()
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	if !added {
		return m, nil
	}
	cmd := m.refresh()
	m.selected = clamp(len(m.tasks)-1, 0, len(m.tasks)-1)
	m.ensureVisible()
	m.status = fmt.Sprintf("added %q", truncate(task.Text, 32))
	return m, cmd
}

// toggleTask flips the completed flag of one task.
func (m Model) toggleTask(id int64) (tea.Model, tea.Cmd) {
	task, ok, err := m.svc.ToggleTask(context.Background(), id)
	if err != nil {
		m.err = err
		return m, nil
	}
	if !ok {
		return m, nil
	}
	cmd := m.refresh()
	if task.Completed {
		m.status = fmt.Sprintf("completed %q", truncate(task.Text, 32))
	} else {
		m.status = fmt.Sprintf("reopened %q", truncate(task.Text, 32))
	}
	return m, cmd
}

// deleteTask removes one task.
func (m Model) deleteTask(id int64) (tea.Model, tea.Cmd) {
	ok, err := m.svc.DeleteTask(context.Background(), id)
	if err != nil {
		m.err = err
		return m, nil
	}
	if !ok {
		return m, nil
	}
	cmd := m.refresh()
	m.status = "task deleted"
	return m, cmd
}

// copyTextCmd writes text to the clipboard off the update loop.
func (m Model) copyTextCmd(text string) tea.Cmd {
	write := m.writeClipboard
	return func() tea.Msg {
		return clipboardMsg{text: text, err: write(text)}
	}
}

// selectedTask returns the highlighted task, if any.
func (m Model) selectedTask() (domain.Task, bool) {
	if len(m.tasks) == 0 {
		return domain.Task{}, false
	}
	return m.tasks[clamp(m.selected, 0, len(m.tasks)-1)], true
}

// handleMouseWheel moves the list selection.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || len(m.tasks) == 0 {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.moveSelection(-1)
	case tea.MouseWheelDown:
		m.moveSelection(1)
	}
	return m, nil
}

// moveSelection shifts the highlighted row and scrolls it into view.
func (m *Model) moveSelection(delta int) {
	m.selected = clamp(m.selected+delta, 0, len(m.tasks)-1)
	m.ensureVisible()
}

// visibleRows returns how many task rows fit between the input box and the
// summary, status and help lines.
func (m Model) visibleRows() int {
	if m.height <= 0 {
		return max(1, len(m.tasks))
	}
	reserved := listTopLine + summaryLines + statusLines + lipgloss.Height(m.renderHelpLine())
	return max(1, m.height-reserved)
}

// visibleRange returns the half-open task index range shown in the list.
func (m Model) visibleRange() (int, int) {
	start := clamp(m.offset, 0, len(m.tasks))
	end := min(len(m.tasks), start+m.visibleRows())
	return start, end
}

// ensureVisible scrolls the list so the selected row stays on screen.
func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	m.offset = clamp(m.offset, 0, max(0, len(m.tasks)-rows))
}

// handleMouseClick maps a click to the input box, a row's toggle marker,
// its delete marker, or its text.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.err != nil || msg.Button != tea.MouseLeft {
		return m, nil
	}
	if msg.Y >= inputTopLine && msg.Y < listTopLine-1 {
		return m, m.setFocus(focusInput)
	}
	start, end := m.visibleRange()
	idx := start + msg.Y - listTopLine
	if msg.Y < listTopLine || idx >= end {
		return m, nil
	}
	task := m.tasks[idx]
	m.selected = idx
	deleteCol := m.deleteColumn()
	switch {
	case msg.X >= toggleColStart && msg.X < toggleColEnd:
		return m.toggleTask(task.ID)
	case msg.X >= deleteCol-1 && msg.X <= deleteCol+1:
		return m.deleteTask(task.ID)
	default:
		return m, m.setFocus(focusList)
	}
}

// contentWidth returns the board width used for row layout.
func (m Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	return clamp(width, minWidth, maxWidth)
}

// textWidth returns the columns reserved for task text in each row.
func (m Model) textWidth() int {
	return max(8, m.contentWidth()-textColStart-rowTrailer)
}

// deleteColumn returns the screen column of the delete marker.
func (m Model) deleteColumn() int {
	return textColStart + m.textWidth() + rowTrailer - 1
}

// View handles view.
func (m Model) View() tea.View {
	view := tea.NewView(m.viewContent())
	view.MouseMode = tea.MouseModeCellMotion
	view.AltScreen = true
	return view
}

// viewContent renders the full screen as a string.
func (m Model) viewContent() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n\npress r to retry • q quit\n"
	}
	if !m.ready || !m.loaded {
		return "loading..."
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	subtitleStyle := lipgloss.NewStyle().Foreground(muted)
	statusStyle := lipgloss.NewStyle().Foreground(dim)
	inputBorder := dim
	if m.focus == focusInput {
		inputBorder = accent
	}
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder).
		Padding(0, 1)

	input := m.input
	input.SetWidth(max(10, m.contentWidth()-6))
	sections := []string{
		titleStyle.Render(m.text.Title),
		subtitleStyle.Render(m.text.Subtitle),
		"",
		inputStyle.Render(input.View()),
		"",
	}
	sections = append(sections, m.renderList(accent, muted, dim)...)
	if summary := m.renderSummary(muted, dim); summary != "" {
		sections = append(sections, "", summary)
	}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, "", statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpLine := m.renderHelpLine()
	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		content = fitLines(content, max(0, m.height-helpHeight))
	}
	fullContent := content + "\n" + helpLine
	if m.showHelp {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		overlay := m.renderHelpOverlay(accent, dim, m.contentWidth()-4)
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}
	return fullContent
}

// renderHelpLine renders the short key help pinned to the bottom row.
func (m Model) renderHelpLine() string {
	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	var helpKeys help.KeyMap = m.keys
	if m.focus == focusInput {
		helpKeys = inputHelp{m.keys}
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		BorderTop(true).
		BorderForeground(lipgloss.Color("239")).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(helpKeys))
}

// renderList renders the visible window of task rows, or the empty placeholder.
func (m Model) renderList(accent, muted, dim color.Color) []string {
	if len(m.tasks) == 0 {
		placeholderTitle := lipgloss.NewStyle().Foreground(muted)
		placeholderHint := lipgloss.NewStyle().Foreground(dim)
		return []string{
			placeholderTitle.Render(m.text.EmptyTitle),
			placeholderHint.Render(m.text.EmptyHint),
		}
	}

	cursorStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	openMarker := lipgloss.NewStyle().Foreground(muted)
	doneMarker := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	openText := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	doneText := lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true)
	selectedText := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	deleteStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	textWidth := m.textWidth()
	start, end := m.visibleRange()
	lines := make([]string, 0, end-start)
	for idx := start; idx < end; idx++ {
		task := m.tasks[idx]
		selected := m.focus == focusList && idx == m.selected

		cursor := "  "
		if selected {
			cursor = cursorStyle.Render("›") + " "
		}
		marker := openMarker.Render("[ ]")
		if task.Completed {
			marker = doneMarker.Render("[x]")
		}

		label := truncate(task.Text, textWidth)
		pad := strings.Repeat(" ", max(0, textWidth-lipgloss.Width(label)))
		switch {
		case task.Completed:
			label = doneText.Render(label)
		case selected:
			label = selectedText.Render(label)
		default:
			label = openText.Render(label)
		}

		lines = append(lines, cursor+marker+" "+label+pad+"  "+deleteStyle.Render("✕"))
	}
	return lines
}

// renderSummary renders derived counts; empty boards have no summary.
func (m Model) renderSummary(muted, dim color.Color) string {
	if len(m.tasks) == 0 {
		return ""
	}
	total := m.summary.Total
	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	rule := lipgloss.NewStyle().Foreground(dim).Render(strings.Repeat("─", m.contentWidth()))
	counts := lipgloss.NewStyle().Foreground(muted).Render(
		fmt.Sprintf("Total: %d %s  •  Completed: %d", total, noun, m.summary.Completed),
	)
	return rule + "\n" + counts
}

// renderHelpOverlay renders the markdown key reference in a bordered box.
func (m Model) renderHelpOverlay(accent, dim color.Color, width int) string {
	width = max(24, width)
	title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Keyboard shortcuts")
	body := m.md.render(m.helpMarkdown(), width-4)
	if body == "" {
		body = m.helpMarkdown()
	}
	hint := lipgloss.NewStyle().Foreground(dim).Render("esc close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(title + "\n" + body + "\n" + hint)
}

// helpMarkdown builds the markdown key reference from the active bindings.
func (m Model) helpMarkdown() string {
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{title: "Input", bindings: []key.Binding{m.keys.submit, m.keys.focusList}},
		{title: "List", bindings: []key.Binding{m.keys.moveUp, m.keys.moveDown, m.keys.toggleTask, m.keys.deleteTask, m.keys.copyTask, m.keys.focusInput}},
		{title: "General", bindings: []key.Binding{m.keys.toggleHelp, m.keys.helpAlways, m.keys.quit, m.keys.forceQuit}},
	}
	var b strings.Builder
	for _, group := range groups {
		b.WriteString("## " + group.title + "\n\n")
		for _, binding := range group.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Click `[ ]` to toggle a task and `✕` to delete it.\n")
	return b.String()
}

// firstNonBlank returns value unless it is blank.
func firstNonBlank(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// clamp bounds v to [minV, maxV]; an empty range yields minV.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines pads or truncates content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate shortens s to at most width terminal cells, marking the cut with
// an ellipsis. Wide runes count as two cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
