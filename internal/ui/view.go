package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rail44/adminui/internal/formatter"
	"github.com/rail44/adminui/internal/table"
)

var (
	borderColor  = lipgloss.Color("240")
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("Admin UI"))
	s.WriteString(mutedStyle.Render("  " + m.src.Location()))
	s.WriteString("\n\n")

	if m.loading {
		s.WriteString(fmt.Sprintf("%s Loading users...\n", m.spinner.View()))
		return s.String()
	}

	if m.mode == modeSearch || m.state.Query() != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	}

	snap := m.state.Snapshot()
	if len(snap.Rows) == 0 {
		s.WriteString(mutedStyle.Render("No users to show."))
		s.WriteString("\n")
	} else {
		s.WriteString(m.table.View())
		s.WriteString("\n")
	}

	s.WriteString(Pager(snap))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render(formatter.Footer(snap)))
	s.WriteString("\n")

	if m.mode == modeEdit && snap.Edit != nil {
		s.WriteString(m.editPanel(*snap.Edit))
		s.WriteString("\n")
	}

	for _, e := range m.logs.Recent() {
		s.WriteString(renderLog(e))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

func (m *Model) editPanel(e table.EditSession) string {
	lines := []string{headerStyle.Render(fmt.Sprintf("Editing user %s", e.ID))}
	for i := range m.editors {
		lines = append(lines, m.editors[i].View())
	}
	lines = append(lines, mutedStyle.Render("enter save · esc cancel · tab next field"))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Pager renders first/prev/numbered/next/last page controls. Controls that
// would leave the valid range are dimmed.
func Pager(snap table.Snapshot) string {
	total := max(1, snap.TotalPages)
	control := func(label string, enabled bool) string {
		if !enabled {
			return mutedStyle.Render(label)
		}
		return label
	}

	parts := []string{
		control("«", snap.HasPrev()),
		control("‹", snap.HasPrev()),
	}
	for n := 1; n <= total; n++ {
		if n == snap.Page {
			parts = append(parts, activeStyle.Render(fmt.Sprintf("[%d]", n)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	parts = append(parts,
		control("›", snap.HasNext()),
		control("»", snap.HasNext()),
	)
	return strings.Join(parts, " ")
}

func renderLog(e LogEntry) string {
	line := fmt.Sprintf("[%s] %s", e.Timestamp.Format("15:04:05"), e.Message)
	switch {
	case e.Level >= slog.LevelError:
		return errorStyle.Render(line)
	case e.Level >= slog.LevelWarn:
		return warnStyle.Render(line)
	default:
		return mutedStyle.Render(line)
	}
}
