// Package ui renders build progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"whilec/internal/pipeline"
)

// stageLetters label the strip cells, one per pipeline.Stages entry.
var stageLetters = [...]string{"P", "C", "L", "F", "R", "E"}

var stageVerbs = map[pipeline.Stage]string{
	pipeline.StageParse:   "parsing",
	pipeline.StageCheck:   "checking",
	pipeline.StageLower:   "lowering",
	pipeline.StageFlatten: "flattening",
	pipeline.StageRemap:   "remapping",
	pipeline.StageEmit:    "emitting",
}

// fileRow tracks the last status seen for each stage of one file.
type fileRow struct {
	path   string
	marks  [len(stageLetters)]pipeline.Status
	failed bool
}

func stageIndex(s pipeline.Stage) int {
	for i, st := range pipeline.Stages {
		if st == s {
			return i
		}
	}
	return -1
}

func settled(st pipeline.Status) bool {
	return st == pipeline.StatusDone || st == pipeline.StatusSkipped || st == pipeline.StatusCached
}

func (r *fileRow) record(ev pipeline.Event) {
	if r.finished() {
		return
	}
	if ev.Status == pipeline.StatusError {
		r.failed = true
	}
	if i := stageIndex(ev.Stage); i >= 0 {
		r.marks[i] = ev.Status
	}
}

// finished: ошибка или последняя стадия закрыта
func (r *fileRow) finished() bool {
	return r.failed || settled(r.marks[len(r.marks)-1])
}

func (r *fileRow) cached() bool {
	for _, st := range r.marks {
		if st != pipeline.StatusCached {
			return false
		}
	}
	return true
}

// share is the fraction of stages this file has settled.
func (r *fileRow) share() float64 {
	if r.finished() {
		return 1
	}
	n := 0
	for _, st := range r.marks {
		if settled(st) {
			n++
		}
	}
	return float64(n) / float64(len(r.marks))
}

func (r *fileRow) label() string {
	switch {
	case r.failed:
		return "error"
	case r.cached():
		return "cached"
	case r.finished():
		return "done"
	}
	for i, st := range r.marks {
		if st == pipeline.StatusWorking {
			return stageVerbs[pipeline.Stages[i]]
		}
	}
	return "queued"
}

var (
	cellStyles = map[pipeline.Status]lipgloss.Style{
		pipeline.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pipeline.StatusCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Faint(true),
		pipeline.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		pipeline.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	idleCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

// strip renders one cell per stage; skipped and untouched stages show a dot.
func (r *fileRow) strip() string {
	cells := make([]string, len(r.marks))
	for i, st := range r.marks {
		style, ok := cellStyles[st]
		switch {
		case st == pipeline.StatusSkipped || st == "":
			cells[i] = idleCell.Render("·")
		case ok:
			cells[i] = style.Render(stageLetters[i])
		default:
			cells[i] = idleCell.Render(stageLetters[i])
		}
	}
	return "[" + strings.Join(cells, " ") + "]"
}

type progressModel struct {
	title   string
	events  <-chan pipeline.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that follows events until the
// channel is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	m.bar.Width = 60
	for i, f := range files {
		m.rows[i].path = f
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.observe(pipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-20, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) observe(ev pipeline.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	m.rows[i].record(ev)
	return m.bar.SetPercent(m.Percent())
}

// Percent is the share of stages settled across all files.
func (m *progressModel) Percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for i := range m.rows {
		sum += m.rows[i].share()
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) finishedCount() int {
	n := 0
	for i := range m.rows {
		if m.rows[i].finished() {
			n++
		}
	}
	return n
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	lead := m.spinner.View()
	if m.done {
		lead = "✓"
	}
	fmt.Fprintf(&b, "%s %s  %d/%d\n\n", lead, titleStyle.Render(m.title), m.finishedCount(), len(m.rows))

	const labelWidth = 10
	// "  [P C L F R E] " занимает 16 колонок
	pathWidth := max(m.width-labelWidth-18, 20)
	for i := range m.rows {
		r := &m.rows[i]
		fmt.Fprintf(&b, "  %s %-*s %s\n", r.strip(), labelWidth, r.label(), truncate(r.path, pathWidth))
	}

	percent := m.bar.Percent()
	if m.done {
		percent = 1
	}
	fmt.Fprintf(&b, "\n  %s %3.0f%%\n", m.bar.ViewAs(percent), percent*100)
	return b.String()
}

// truncate cuts value to width display columns, ending with "..." when cut.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width, "...")
	}
}
