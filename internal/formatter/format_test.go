package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rail44/adminui/internal/table"
	"github.com/rail44/adminui/internal/user"
)

func sampleSnapshot() table.Snapshot {
	s := table.New(table.WithPageSize(2))
	s.Initialize([]user.User{
		{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
		{ID: "2", Name: "Pipe | Name", Email: "pipe@mailinator.com", Role: "admin"},
		{ID: "3", Name: "Zed", Email: "zed@mailinator.com", Role: "member"},
	})
	s.ToggleRowSelection("2")
	return s.Snapshot()
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleSnapshot())
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "| | ID | Name | Email | Role |", lines[0])
	assert.Equal(t, "| [ ] | 1 | Aaron Miles | aaron@mailinator.com | member |", lines[2])
	assert.Equal(t, `| [x] | 2 | Pipe \| Name | pipe@mailinator.com | admin |`, lines[3])
	assert.Contains(t, out, "Page 1 of 2 · 3 of 3 users · 1 selected")
}

func TestText(t *testing.T) {
	out := Text(sampleSnapshot())
	assert.Contains(t, out, "Aaron Miles")
	assert.Contains(t, out, "EMAIL")
	assert.NotContains(t, out, "Zed", "only the current page is rendered")
}

func TestJSON(t *testing.T) {
	out, err := JSON(sampleSnapshot())
	require.NoError(t, err)

	var page struct {
		Page       int         `json:"page"`
		TotalPages int         `json:"total_pages"`
		Users      []user.User `json:"users"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Users, 2)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	out, err := Render(FormatMarkdown, sampleSnapshot())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "| |"))
}

func TestFooter(t *testing.T) {
	s := table.New()
	s.Initialize(nil)
	s.SetSearchQuery("nobody")
	assert.Equal(t, `Page 1 of 1 · 0 of 0 users matching "nobody"`, Footer(s.Snapshot()))
}
