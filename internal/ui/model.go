package ui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rail44/adminui/internal/checksum"
	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/source"
	"github.com/rail44/adminui/internal/table"
	"github.com/rail44/adminui/internal/user"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeEdit
)

// Model is the Bubble Tea model of the admin table. All row state lives in
// the table.State; the model only translates keys into its operations.
type Model struct {
	ctx    context.Context
	state  *table.State
	src    source.Source
	logger log.Logger

	table   btable.Model
	search  textinput.Model
	editors []textinput.Model
	focus   int
	spinner spinner.Model
	help    help.Model
	keys    KeyMap
	logs    *logBuffer

	mode     mode
	loading  bool
	sum      string
	visible  []user.User
	width    int
	height   int
	quitting bool
}

// Message types
type usersLoadedMsg struct {
	users  []user.User
	reload bool
}

// ReloadMsg asks the model to fetch the users again
type ReloadMsg struct{}

// NewModel creates a model that loads its rows from src on start
func NewModel(ctx context.Context, state *table.State, src source.Source) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	search := textinput.New()
	search.Placeholder = "Search by name"
	search.Prompt = "/ "
	search.CharLimit = 256

	editors := make([]textinput.Model, len(table.Fields))
	for i, f := range table.Fields {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-6s ", f.String()+":")
		ti.CharLimit = 256
		editors[i] = ti
	}

	t := btable.New(
		btable.WithColumns(columnsFor(0)),
		btable.WithFocused(true),
		btable.WithHeight(state.PageSize()+1),
		btable.WithKeyMap(btable.KeyMap{
			LineUp:   key.NewBinding(key.WithKeys("up", "k")),
			LineDown: key.NewBinding(key.WithKeys("down", "j")),
		}),
	)
	t.SetStyles(tableStyles())

	return &Model{
		ctx:     ctx,
		state:   state,
		src:     src,
		logger:  log.Default(),
		table:   t,
		search:  search,
		editors: editors,
		spinner: s,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		logs:    newLogBuffer(logHistory),
		loading: true,
	}
}

// State exposes the underlying row state
func (m *Model) State() *table.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetch(false),
	)
}

// fetch loads the users in the background. A failed initial load yields an
// empty table; a failed reload keeps the current rows.
func (m *Model) fetch(reload bool) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		if !reload {
			return usersLoadedMsg{users: source.Load(ctx, src, log.Default())}
		}
		users, err := src.FetchUsers(ctx)
		if err != nil {
			log.Warn("reload failed, keeping current rows", slog.String("error", err.Error()))
			return nil
		}
		return usersLoadedMsg{users: users, reload: true}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columnsFor(msg.Width))
		m.help.Width = msg.Width
		return m, nil

	case usersLoadedMsg:
		m.applyLoaded(msg)
		return m, nil

	case ReloadMsg:
		return m, m.fetch(true)

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.loading {
			if key.Matches(msg, m.keys.Quit) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.mode {
		case modeSearch:
			return m, m.updateSearch(msg)
		case modeEdit:
			return m, m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) applyLoaded(msg usersLoadedMsg) {
	m.loading = false
	if msg.reload {
		if !checksum.Changed(m.sum, msg.users) {
			m.logger.Debug("source unchanged")
			return
		}
		m.state.Reload(msg.users)
		m.logger.Info("users reloaded", slog.Int("count", len(msg.users)))
		if m.mode == modeEdit {
			if _, ok := m.state.EditSession(); !ok {
				m.leaveEdit()
			}
		}
	} else {
		m.state.Initialize(msg.users)
	}
	m.sum = checksum.Calculate(msg.users)
	m.sync()
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Cancel):
		if m.state.Query() != "" {
			m.search.SetValue("")
			m.state.SetSearchQuery("")
			m.sync()
		}

	case key.Matches(msg, m.keys.Toggle):
		if u, ok := m.current(); ok {
			m.state.ToggleRowSelection(u.ID)
			m.sync()
		}

	case key.Matches(msg, m.keys.Delete):
		if u, ok := m.current(); ok {
			m.state.DeleteRow(u.ID)
			m.logger.Info("user deleted", slog.String("id", u.ID), slog.String("name", u.Name))
			m.sync()
		}

	case key.Matches(msg, m.keys.DeleteSelected):
		n := m.state.DeleteSelected()
		m.logger.Info("selected users deleted", slog.Int("count", n))
		m.sync()

	case key.Matches(msg, m.keys.Edit):
		if u, ok := m.current(); ok {
			return m, m.beginEdit(u.ID)
		}

	case key.Matches(msg, m.keys.NextPage):
		m.state.NextPage()
		m.syncTop()
	case key.Matches(msg, m.keys.PrevPage):
		m.state.PrevPage()
		m.syncTop()
	case key.Matches(msg, m.keys.FirstPage):
		m.state.FirstPage()
		m.syncTop()
	case key.Matches(msg, m.keys.LastPage):
		m.state.LastPage()
		m.syncTop()
	case key.Matches(msg, m.keys.GotoPage):
		m.state.SetPage(int(msg.Runes[0] - '0'))
		m.syncTop()

	case key.Matches(msg, m.keys.Reload):
		m.logger.Info("reloading users", slog.String("source", m.src.Location()))
		return m, m.fetch(true)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.search.Blur()
		m.mode = modeBrowse
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.search.Blur()
		m.search.SetValue("")
		m.state.SetSearchQuery("")
		m.mode = modeBrowse
		m.syncTop()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Query() {
		m.state.SetSearchQuery(m.search.Value())
		m.syncTop()
	}
	return cmd
}

func (m *Model) beginEdit(id string) tea.Cmd {
	m.state.BeginEdit(id)
	draft, _ := m.state.EditSession()
	for i, f := range table.Fields {
		m.editors[i].SetValue(draft.Value(f))
		m.editors[i].Blur()
	}
	m.focus = 0
	m.mode = modeEdit
	return m.editors[0].Focus()
}

func (m *Model) leaveEdit() {
	for i := range m.editors {
		m.editors[i].Blur()
	}
	m.mode = modeBrowse
}

func (m *Model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Accept):
		draft, _ := m.state.EditSession()
		if m.state.CommitEdit() {
			m.logger.Info("user updated", slog.String("id", draft.ID))
		}
		m.leaveEdit()
		m.sync()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.state.CancelEdit()
		m.leaveEdit()
		m.sync()
		return nil
	case key.Matches(msg, m.keys.NextField):
		return m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m.focusField(m.focus - 1)
	}

	var cmd tea.Cmd
	m.editors[m.focus], cmd = m.editors[m.focus].Update(msg)
	m.state.SetDraftField(table.Fields[m.focus], m.editors[m.focus].Value())
	return cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	n := len(m.editors)
	m.editors[m.focus].Blur()
	m.focus = (i%n + n) % n
	return m.editors[m.focus].Focus()
}

// current returns the user under the table cursor
func (m *Model) current() (user.User, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return user.User{}, false
	}
	return m.visible[i], true
}

// sync copies the current page of the state into the table widget
func (m *Model) sync() {
	snap := m.state.Snapshot()
	rows := make([]btable.Row, len(snap.Rows))
	m.visible = make([]user.User, len(snap.Rows))
	for i, row := range snap.Rows {
		rows[i] = btable.Row{marker(row), row.ID, row.Name, row.Email, row.Role}
		m.visible[i] = row.User
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// syncTop is sync after a page change, with the cursor on the first row
func (m *Model) syncTop() {
	m.sync()
	m.table.SetCursor(0)
}

func marker(row table.Row) string {
	switch {
	case row.Editing:
		return "[~]"
	case row.Selected:
		return "[x]"
	default:
		return "[ ]"
	}
}

func columnsFor(width int) []btable.Column {
	if width <= 0 {
		width = 100
	}
	avail := max(40, width-16)
	return []btable.Column{
		{Title: "", Width: 3},
		{Title: "ID", Width: 4},
		{Title: "Name", Width: avail * 3 / 10},
		{Title: "Email", Width: avail * 5 / 10},
		{Title: "Role", Width: avail * 2 / 10},
	}
}

func tableStyles() btable.Styles {
	s := btable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
