package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/block-breaker/internal/registry"
	"github.com/vovakirdan/block-breaker/internal/storage"
)

const (
	boardRounds  = 50 // Rounds listed per mode
	cardWidth    = 30
	shortRoundID = 8
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Width(cardWidth).
	Padding(0, 1)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	focusedCardStyle = cardStyle.BorderForeground(lipgloss.Color("208"))
	cardLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type boardKeys struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Reload key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Reload, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultBoardKeys() boardKeys {
	return boardKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll")),
		Switch: key.NewBinding(key.WithKeys("tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch mode")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modeBoard holds the stored results of one game mode.
type modeBoard struct {
	mode   registry.GameInfo
	stats  *storage.GameStats
	rounds []storage.ScoreEntry
}

// ScoreboardModel shows every mode's stats side by side and the best
// rounds of the focused mode.
type ScoreboardModel struct {
	store     ScoreStore // May be nil
	boards    []modeBoard
	focus     int
	table     table.Model
	help      help.Model
	keys      boardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for all registered modes.
func NewScoreboardModel(store ScoreStore, width, height int) ScoreboardModel {
	return newScoreboard(store, registry.List(), width, height)
}

func newScoreboard(store ScoreStore, modes []registry.GameInfo, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		boards: make([]modeBoard, len(modes)),
		help:   help.New(),
		keys:   defaultBoardKeys(),
		width:  width,
		height: height,
	}
	for i, mode := range modes {
		m.boards[i].mode = mode
	}
	m.table = newRoundsTable(height)
	m.reload()
	return m
}

func newRoundsTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Round", Width: shortRoundID},
			{Title: "Played", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-14, 3)), // Title, cards and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("208")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload reads stats and rounds for every mode from the store.
func (m *ScoreboardModel) reload() {
	for i := range m.boards {
		b := &m.boards[i]
		b.stats, b.rounds = nil, nil
		if m.store == nil {
			continue
		}
		if stats, err := m.store.GetGameStats(b.mode.ID); err == nil {
			b.stats = stats
		}
		if rounds, err := m.store.TopScores(b.mode.ID, boardRounds); err == nil {
			b.rounds = rounds
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	var rounds []storage.ScoreEntry
	if b := m.focused(); b != nil {
		rounds = b.rounds
	}

	rows := make([]table.Row, len(rounds))
	for i, r := range rounds {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			truncateID(r.RoundID),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) focused() *modeBoard {
	if len(m.boards) == 0 {
		return nil
	}
	return &m.boards[m.focus]
}

func truncateID(id string) string {
	if len(id) > shortRoundID {
		return id[:shortRoundID]
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
		case key.Matches(msg, m.keys.Switch):
			if len(m.boards) > 1 {
				m.focus = (m.focus + 1) % len(m.boards)
				m.fillTable()
			}
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-14, 3))
		m.help.Width = msg.Width
		return m, nil
	}

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
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle, "H I G H   S C O R E S", m.width))
	b.WriteString("\n\n")

	cards := make([]string, len(m.boards))
	for i := range m.boards {
		cards[i] = m.renderCard(i)
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, cards...)))
	b.WriteString("\n\n")

	if f := m.focused(); f == nil || len(f.rounds) == 0 {
		b.WriteString(centerStyled(boardEmptyStyle, "No rounds recorded yet. Finish a round to set a score!", m.width))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.table.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.View(m.keys)))
	return b.String()
}

// renderCard draws the stats summary for one mode.
func (m ScoreboardModel) renderCard(i int) string {
	board := m.boards[i]
	style := cardStyle
	if i == m.focus {
		style = focusedCardStyle
	}

	var c strings.Builder
	c.WriteString(lipgloss.NewStyle().Bold(true).Render(board.mode.Title))
	c.WriteString("\n")

	st := board.stats
	if st == nil || st.GamesCount == 0 {
		c.WriteString(cardLabelStyle.Render("no rounds yet"))
		return style.Render(c.String())
	}

	row := func(label, value string) {
		c.WriteString("\n")
		c.WriteString(cardLabelStyle.Render(fmt.Sprintf("%-8s", label)))
		c.WriteString(value)
	}
	row("Rounds", fmt.Sprint(st.GamesCount))
	row("Best", fmt.Sprint(st.HighScore))
	row("Average", fmt.Sprintf("%.1f", st.AvgScore))
	row("Total", fmt.Sprint(st.TotalScore))
	if !st.LastPlayed.IsZero() {
		row("Last", st.LastPlayed.Format("Jan 02 15:04"))
	}
	return style.Render(c.String())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store ScoreStore, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
