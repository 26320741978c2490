package table

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rail44/adminui/internal/user"
)

func numbered(n int) []user.User {
	users := make([]user.User, n)
	for i := range users {
		id := strconv.Itoa(i + 1)
		users[i] = user.User{
			ID:    id,
			Name:  fmt.Sprintf("User %02d", i+1),
			Email: fmt.Sprintf("user%d@example.com", i+1),
			Role:  "member",
		}
	}
	return users
}

func named(names ...string) []user.User {
	users := make([]user.User, len(names))
	for i, name := range names {
		users[i] = user.User{ID: strconv.Itoa(i + 1), Name: name, Role: "member"}
	}
	return users
}

func ids(users []user.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func TestInitialize(t *testing.T) {
	t.Run("Should reset every field", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(30))
		s.SetSearchQuery("user")
		s.ToggleRowSelection("1")
		s.BeginEdit("2")
		s.SetPage(3)

		s.Initialize(numbered(5))

		assert.Equal(t, "", s.Query())
		assert.Equal(t, 1, s.CurrentPage())
		assert.Empty(t, s.SelectedIDs())
		_, editing := s.EditSession()
		assert.False(t, editing)
		assert.Len(t, s.All(), 5)
		assert.Equal(t, s.All(), s.Filtered())
	})

	t.Run("Should not alias the caller's slice", func(t *testing.T) {
		records := numbered(3)
		s := New()
		s.Initialize(records)
		records[0].Name = "changed"
		assert.Equal(t, "User 01", s.All()[0].Name)
	})
}

func TestSetSearchQuery(t *testing.T) {
	names := []string{
		"Alice", "Bob", "Carol", "Dave", "Eve", "Malik",
		"Frank", "Grace", "Natalia", "Heidi", "Ivan", "Judy",
	}

	t.Run("Should match names case-insensitively", func(t *testing.T) {
		s := New()
		s.Initialize(named(names...))
		s.SetSearchQuery("ali")
		assert.Equal(t, []string{"1", "6", "9"}, ids(s.Filtered()))

		s.SetSearchQuery("ALI")
		assert.Equal(t, []string{"1", "6", "9"}, ids(s.Filtered()))

		s.SetPage(1)
		assert.Len(t, s.VisibleUsers(), 3)
	})

	t.Run("Should return every user for an empty query", func(t *testing.T) {
		s := New()
		s.Initialize(named(names...))
		s.SetSearchQuery("bob")
		s.SetSearchQuery("")
		assert.Equal(t, s.All(), s.Filtered())
	})

	t.Run("Should keep canonical order", func(t *testing.T) {
		s := New()
		s.Initialize(named("zed a", "amy", "bart a"))
		s.SetSearchQuery("a")
		assert.Equal(t, []string{"1", "2", "3"}, ids(s.Filtered()))
	})

	t.Run("Should apply Unicode case folding", func(t *testing.T) {
		s := New()
		s.Initialize(named("Straße", "Ölaf", "Bob"))
		s.SetSearchQuery("STRASSE")
		assert.Equal(t, []string{"1"}, ids(s.Filtered()))
		s.SetSearchQuery("öl")
		assert.Equal(t, []string{"2"}, ids(s.Filtered()))
	})

	t.Run("Should only match against the name", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(3))
		s.SetSearchQuery("example.com")
		assert.Empty(t, s.Filtered())
	})

	t.Run("Should clamp the page to the new result count", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(25))
		s.SetPage(3)
		s.SetSearchQuery("user 0")
		assert.Len(t, s.Filtered(), 9)
		assert.Equal(t, 1, s.CurrentPage())
		assert.Len(t, s.VisibleUsers(), 9)
	})
}

func TestToggleRowSelection(t *testing.T) {
	t.Run("Should be undone by a second toggle", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(3))
		s.ToggleRowSelection("2")
		before := s.SelectedIDs()

		s.ToggleRowSelection("3")
		s.ToggleRowSelection("3")
		assert.Equal(t, before, s.SelectedIDs())

		s.ToggleRowSelection("2")
		assert.Empty(t, s.SelectedIDs())
	})

	t.Run("Should accept unknown ids", func(t *testing.T) {
		s := New()
		s.ToggleRowSelection("missing")
		assert.True(t, s.IsSelected("missing"))
	})
}

func TestDeleteRow(t *testing.T) {
	t.Run("Should keep deleted rows gone after a new search", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(12))
		s.ToggleRowSelection("5")
		s.DeleteRow("5")

		assert.NotContains(t, ids(s.Filtered()), "5")
		assert.False(t, s.IsSelected("5"))

		s.SetSearchQuery("")
		assert.NotContains(t, ids(s.Filtered()), "5")
		assert.Len(t, s.All(), 11)
	})

	t.Run("Should bring rows back under transient deletes", func(t *testing.T) {
		s := New(WithTransientDeletes())
		s.Initialize(numbered(12))
		s.ToggleRowSelection("5")
		s.DeleteRow("5")

		assert.NotContains(t, ids(s.Filtered()), "5")
		assert.Len(t, s.All(), 12)
		assert.True(t, s.IsSelected("5"))

		s.SetSearchQuery("")
		assert.Contains(t, ids(s.Filtered()), "5")
	})

	t.Run("Should ignore unknown ids", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(3))
		s.DeleteRow("42")
		assert.Len(t, s.Filtered(), 3)
	})

	t.Run("Should close an edit session on the deleted row", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(3))
		s.BeginEdit("2")
		s.DeleteRow("2")
		_, editing := s.EditSession()
		assert.False(t, editing)
	})

	t.Run("Should step back when the last page empties", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(11))
		s.LastPage()
		require.Equal(t, 2, s.CurrentPage())
		s.DeleteRow("11")
		assert.Equal(t, 1, s.CurrentPage())
		assert.Len(t, s.VisibleUsers(), 10)
	})
}

func TestDeleteSelected(t *testing.T) {
	t.Run("Should always clear the selection", func(t *testing.T) {
		for _, selection := range [][]string{nil, {"1"}, {"1", "2", "3"}, {"missing"}} {
			s := New()
			s.Initialize(numbered(3))
			for _, id := range selection {
				s.ToggleRowSelection(id)
			}
			s.DeleteSelected()
			assert.Empty(t, s.SelectedIDs(), "selection %v", selection)
		}
	})

	t.Run("Should remove selected rows of the filtered view only", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(12))
		s.ToggleRowSelection("2")
		s.ToggleRowSelection("11")
		s.SetSearchQuery("user 1")

		removed := s.DeleteSelected()

		assert.Equal(t, 1, removed)
		assert.Equal(t, []string{"10", "12"}, ids(s.Filtered()))
		s.SetSearchQuery("")
		assert.Contains(t, ids(s.Filtered()), "2")
		assert.NotContains(t, ids(s.Filtered()), "11")
	})

	t.Run("Should only touch the view under transient deletes", func(t *testing.T) {
		s := New(WithTransientDeletes())
		s.Initialize(numbered(4))
		s.ToggleRowSelection("1")
		s.ToggleRowSelection("4")

		assert.Equal(t, 2, s.DeleteSelected())
		assert.Equal(t, []string{"2", "3"}, ids(s.Filtered()))
		assert.Len(t, s.All(), 4)
	})
}

func TestPagination(t *testing.T) {
	t.Run("Should slice pages of ten", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(25))
		all := s.Filtered()

		assert.Equal(t, 3, s.TotalPages())
		assert.Equal(t, all[0:10], s.VisibleUsers())

		s.SetPage(3)
		assert.Equal(t, all[20:25], s.VisibleUsers())
		assert.Len(t, s.VisibleUsers(), 5)
	})

	t.Run("Should clamp out-of-range pages", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(25))
		s.SetPage(99)
		assert.Equal(t, 3, s.CurrentPage())
		s.SetPage(-4)
		assert.Equal(t, 1, s.CurrentPage())
	})

	t.Run("Should stay on page one when empty", func(t *testing.T) {
		s := New()
		s.Initialize(nil)
		s.NextPage()
		assert.Equal(t, 1, s.CurrentPage())
		assert.Equal(t, 0, s.TotalPages())
		assert.Empty(t, s.VisibleUsers())
	})

	t.Run("Should move between pages", func(t *testing.T) {
		s := New(WithPageSize(5))
		s.Initialize(numbered(12))
		s.NextPage()
		assert.Equal(t, 2, s.CurrentPage())
		s.LastPage()
		assert.Equal(t, 3, s.CurrentPage())
		s.NextPage()
		assert.Equal(t, 3, s.CurrentPage())
		s.PrevPage()
		assert.Equal(t, 2, s.CurrentPage())
		s.FirstPage()
		assert.Equal(t, 1, s.CurrentPage())
	})

	t.Run("Should ignore a non-positive page size", func(t *testing.T) {
		s := New(WithPageSize(0))
		assert.Equal(t, DefaultPageSize, s.PageSize())
	})
}

func TestReload(t *testing.T) {
	t.Run("Should keep the query and prune vanished ids", func(t *testing.T) {
		s := New()
		s.Initialize(numbered(12))
		s.SetSearchQuery("user 1")
		s.ToggleRowSelection("10")
		s.ToggleRowSelection("12")
		s.BeginEdit("12")

		s.Reload(numbered(11))

		assert.Equal(t, "user 1", s.Query())
		assert.Equal(t, []string{"10", "11"}, ids(s.Filtered()))
		assert.Equal(t, []string{"10"}, s.SelectedIDs())
		_, editing := s.EditSession()
		assert.False(t, editing)
	})
}

func TestSnapshot(t *testing.T) {
	s := New()
	s.Initialize(numbered(15))
	s.ToggleRowSelection("12")
	s.BeginEdit("13")
	s.NextPage()

	snap := s.Snapshot()

	require.Len(t, snap.Rows, 5)
	assert.Equal(t, "11", snap.Rows[0].ID)
	assert.True(t, snap.Rows[1].Selected)
	assert.True(t, snap.Rows[2].Editing)
	assert.Equal(t, 2, snap.Page)
	assert.Equal(t, 2, snap.TotalPages)
	assert.Equal(t, 15, snap.Matches)
	assert.Equal(t, 15, snap.Total)
	assert.Equal(t, 1, snap.Selected)
	require.NotNil(t, snap.Edit)
	assert.Equal(t, "13", snap.Edit.ID)
	assert.True(t, snap.HasPrev())
	assert.False(t, snap.HasNext())
}
