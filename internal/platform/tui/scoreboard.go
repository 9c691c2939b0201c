package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/eco-defender/internal/registry"
	"github.com/vovakirdan/eco-defender/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the map sidebar
	sidebarWidth       = 24  // Width of map sidebar
	maxRuns            = 100 // Max runs to load
)

var (
	sbBorderColor = lipgloss.Color("240")
	sbAccentColor = lipgloss.Color("10")
	sbDimColor    = lipgloss.Color("241")
)

// ScoreboardKeyMap defines the key bindings for the run history screen.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Recent  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.PrevMap, k.Recent, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMap, k.PrevMap},
		{k.Recent, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMap: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/l", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/h", "prev map"),
		),
		Recent: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the run history screen.
// It shows either the best runs of one map or the latest runs on every map.
type ScoreboardModel struct {
	maps      []registry.GameInfo
	mapCursor int
	recent    bool // Show recent runs across all maps instead of the best per map
	store     *storage.Store
	runs      []storage.Run
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new run history model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		maps:   registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// newTable builds the runs table sized for the current window.
func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "XP", Width: 6},
		{Title: "Money", Width: 7},
		{Title: "Trees", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "When", Width: 12},
	}
	if m.recent {
		columns = append(columns, table.Column{Title: "Map", Width: 16})
	}

	// Give spare room to the player column
	avail := m.width - 6
	if m.showSidebar() {
		avail -= sidebarWidth + 4
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2 // Cell padding
	}
	if spare := avail - used; spare > 0 {
		columns[4].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Header, details, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(sbBorderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(sbAccentColor).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload fetches runs for the current view and refills the table.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	if m.store != nil {
		var (
			runs []storage.Run
			err  error
		)
		switch {
		case m.recent:
			runs, err = m.store.RecentRuns(maxRuns)
		case len(m.maps) > 0:
			runs, err = m.store.TopRuns(m.maps[m.mapCursor].ID, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("$%d", r.Money),
			fmt.Sprintf("%d", r.TreesPlanted),
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if m.recent {
			row = append(row, m.mapTitle(r.GameID))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycleMap moves the map cursor by delta, wrapping around.
func (m *ScoreboardModel) cycleMap(delta int) {
	if len(m.maps) == 0 {
		return
	}
	m.mapCursor = (m.mapCursor + delta + len(m.maps)) % len(m.maps)
	m.recent = false
	m.table = m.newTable()
	m.reload()
}

func (m ScoreboardModel) mapTitle(id string) string {
	for _, g := range m.maps {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMap):
			m.cycleMap(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevMap):
			m.cycleMap(-1)
			return m, nil

		case key.Matches(msg, m.keys.Recent):
			m.recent = !m.recent
			m.table = m.newTable()
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.newTable()
		m.reload()
		m.table.SetCursor(cursor)
		return m, nil
	}

	// Scrolling and everything else goes to the table
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECENT RUNS"
	if !m.recent && len(m.maps) > 0 {
		title = "BEST RUNS - " + m.maps[m.mapCursor].Title
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(sbAccentColor)
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(sbBorderColor).
		Padding(0, 1).
		Render(m.tableView())

	if m.showSidebar() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), "  ", panel))
	} else {
		b.WriteString(centerStyled(m.tabsView(), m.width))
		b.WriteString("\n\n")
		b.WriteString(panel)
	}

	b.WriteString("\n")
	b.WriteString(m.detailsView())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(sbDimColor).Render(m.help.View(m.keys)))

	return b.String()
}

// sidebarView lists the maps with the current one highlighted.
func (m ScoreboardModel) sidebarView() string {
	var sb strings.Builder
	sb.WriteString("Maps\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, g := range m.maps {
		cursor, style := "  ", lipgloss.NewStyle()
		if i == m.mapCursor && !m.recent {
			cursor = "> "
			style = style.Bold(true).Foreground(sbAccentColor)
		}
		sb.WriteString(style.Render(cursor + truncate(g.Title, sidebarWidth-6)))
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(sbBorderColor).
		Width(sidebarWidth).
		Padding(0, 1).
		Render(sb.String())
}

// tabsView shows the maps as a single line for narrow terminals.
func (m ScoreboardModel) tabsView() string {
	if len(m.maps) == 0 {
		return ""
	}
	if m.recent {
		return "< all maps >"
	}

	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(sbAccentColor).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(sbDimColor).Padding(0, 1)

	tabs := make([]string, len(m.maps))
	for i, g := range m.maps {
		name := truncate(g.Title, 14)
		if i == m.mapCursor {
			tabs[i] = active.Render(name)
		} else {
			tabs[i] = idle.Render(name)
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.maps[m.mapCursor].Title)
	}
	return line
}

// tableView renders the table or an empty message.
func (m ScoreboardModel) tableView() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(sbDimColor).
			Italic(true).
			Padding(2, 4).
			Render("No runs recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// detailsView describes the selected run beyond the table columns.
func (m ScoreboardModel) detailsView() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	text := fmt.Sprintf(" trash recycled %d  |  polluters stopped %d  |  played %s  |  seed %d",
		r.TrashCollected, r.PollutersStopped, r.Duration.Round(time.Second), r.Seed)
	return lipgloss.NewStyle().Foreground(sbDimColor).Render(text)
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
