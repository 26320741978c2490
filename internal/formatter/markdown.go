package formatter

import (
	"fmt"
	"strings"

	"github.com/rail44/adminui/internal/table"
)

// Markdown renders the current page as a GitHub flavored Markdown table
func Markdown(snap table.Snapshot) string {
	var formatted strings.Builder

	formatted.WriteString("| | ID | Name | Email | Role |\n")
	formatted.WriteString("|---|---|---|---|---|\n")
	for _, row := range snap.Rows {
		formatted.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			checkbox(row.Selected),
			escapeCell(row.ID),
			escapeCell(row.Name),
			escapeCell(row.Email),
			escapeCell(row.Role)))
	}
	formatted.WriteString("\n")
	formatted.WriteString(Footer(snap))
	formatted.WriteString("\n")

	return formatted.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
