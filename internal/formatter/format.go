package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/rail44/adminui/internal/table"
	"github.com/rail44/adminui/internal/user"
)

// Format names an output format of the list command
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat converts a flag value to a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatMarkdown, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, markdown or json)", s)
	}
}

// Render renders snap in the given format
func Render(f Format, snap table.Snapshot) (string, error) {
	switch f {
	case FormatMarkdown:
		return Markdown(snap), nil
	case FormatJSON:
		return JSON(snap)
	case FormatTable:
		return Text(snap), nil
	default:
		return "", fmt.Errorf("unknown format %q", f)
	}
}

// Text renders the page as a bordered terminal table
func Text(snap table.Snapshot) string {
	rows := make([][]string, len(snap.Rows))
	for i, row := range snap.Rows {
		rows[i] = []string{checkbox(row.Selected), row.ID, row.Name, row.Email, row.Role}
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "NAME", "EMAIL", "ROLE").
		Rows(rows...)

	return t.Render() + "\n" + Footer(snap) + "\n"
}

type jsonPage struct {
	Query      string      `json:"query,omitempty"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	PageSize   int         `json:"page_size"`
	Matches    int         `json:"matches"`
	Users      []user.User `json:"users"`
}

// JSON renders the page as an indented JSON document
func JSON(snap table.Snapshot) (string, error) {
	page := jsonPage{
		Query:      snap.Query,
		Page:       snap.Page,
		TotalPages: snap.TotalPages,
		PageSize:   snap.PageSize,
		Matches:    snap.Matches,
		Users:      make([]user.User, len(snap.Rows)),
	}
	for i, row := range snap.Rows {
		page.Users[i] = row.User
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode page: %w", err)
	}
	return string(data) + "\n", nil
}

// Footer summarizes the pagination window
func Footer(snap table.Snapshot) string {
	footer := fmt.Sprintf("Page %d of %d · %d of %d users", snap.Page, max(1, snap.TotalPages), snap.Matches, snap.Total)
	if snap.Query != "" {
		footer += fmt.Sprintf(" matching %q", snap.Query)
	}
	if snap.Selected > 0 {
		footer += fmt.Sprintf(" · %d selected", snap.Selected)
	}
	return footer
}

func checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}
