package table

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rail44/adminui/internal/user"
)

// DefaultPageSize is the number of rows shown per page
const DefaultPageSize = 10

// DeletePolicy controls where row deletions are applied
type DeletePolicy int

const (
	// DeletePersistent removes rows from the canonical list, so they stay
	// gone when the search query changes.
	DeletePersistent DeletePolicy = iota
	// DeleteTransient removes rows from the filtered view only. A later
	// search recomputes the view from the canonical list and brings them back.
	DeleteTransient
)

// Option configures a State
type Option func(*State)

// WithPageSize sets the page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithTransientDeletes applies deletions to the filtered view only
func WithTransientDeletes() Option {
	return func(s *State) {
		s.policy = DeleteTransient
	}
}

// State holds the rows of the admin table together with the search query,
// the selection set, the pagination window and the edit session.
//
// State is not safe for concurrent use; it is owned by a single update loop.
type State struct {
	all      []user.User
	filtered []user.User

	query  string
	folded string
	caser  cases.Caser

	selected map[string]struct{}
	page     int
	pageSize int
	edit     *EditSession
	policy   DeletePolicy
}

// New creates an empty State
func New(opts ...Option) *State {
	s := &State{
		caser:    cases.Fold(),
		selected: make(map[string]struct{}),
		page:     1,
		pageSize: DefaultPageSize,
		policy:   DeletePersistent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the whole state with the given records
func (s *State) Initialize(records []user.User) {
	s.all = slices.Clone(records)
	s.filtered = slices.Clone(records)
	s.query = ""
	s.folded = ""
	s.selected = make(map[string]struct{})
	s.page = 1
	s.edit = nil
}

// Reload swaps in a fresh copy of the records while keeping the query.
// Selected ids and the edit session survive only if their record does.
func (s *State) Reload(records []user.User) {
	s.all = slices.Clone(records)
	s.recompute()

	present := make(map[string]struct{}, len(s.all))
	for _, u := range s.all {
		present[u.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := present[id]; !ok {
			delete(s.selected, id)
		}
	}
	if s.edit != nil {
		if _, ok := present[s.edit.ID]; !ok {
			s.edit = nil
		}
	}
	s.clampPage()
}

// SetSearchQuery filters the canonical list by case-insensitive substring
// match against the user name.
func (s *State) SetSearchQuery(text string) {
	s.query = text
	s.folded = s.caser.String(text)
	s.recompute()
	s.clampPage()
}

// ToggleRowSelection flips the selection of id. The id is not validated.
func (s *State) ToggleRowSelection(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// DeleteRow removes the user with the given id. Unknown ids are ignored.
func (s *State) DeleteRow(id string) {
	match := func(u user.User) bool { return u.ID == id }

	switch s.policy {
	case DeleteTransient:
		s.filtered = slices.DeleteFunc(s.filtered, match)
	default:
		s.all = slices.DeleteFunc(s.all, match)
		s.recompute()
		delete(s.selected, id)
		if s.edit != nil && s.edit.ID == id {
			s.edit = nil
		}
	}
	s.clampPage()
}

// DeleteSelected removes every row of the filtered view whose id is
// selected and clears the selection. It returns the number of rows removed.
func (s *State) DeleteSelected() int {
	doomed := make(map[string]struct{})
	for _, u := range s.filtered {
		if _, ok := s.selected[u.ID]; ok {
			doomed[u.ID] = struct{}{}
		}
	}
	match := func(u user.User) bool {
		_, ok := doomed[u.ID]
		return ok
	}

	switch s.policy {
	case DeleteTransient:
		s.filtered = slices.DeleteFunc(s.filtered, match)
	default:
		s.all = slices.DeleteFunc(s.all, match)
		s.recompute()
		if s.edit != nil {
			if _, ok := doomed[s.edit.ID]; ok {
				s.edit = nil
			}
		}
	}

	s.selected = make(map[string]struct{})
	s.clampPage()
	return len(doomed)
}

// SetPage moves to page n, clamped to the valid range
func (s *State) SetPage(n int) {
	s.page = n
	s.clampPage()
}

// FirstPage moves to page 1
func (s *State) FirstPage() { s.SetPage(1) }

// LastPage moves to the last page of the filtered view
func (s *State) LastPage() { s.SetPage(s.TotalPages()) }

// NextPage advances one page, stopping at the last
func (s *State) NextPage() { s.SetPage(s.page + 1) }

// PrevPage goes back one page, stopping at the first
func (s *State) PrevPage() { s.SetPage(s.page - 1) }

// VisibleUsers returns the rows of the current page
func (s *State) VisibleUsers() []user.User {
	start := (s.page - 1) * s.pageSize
	end := start + s.pageSize
	if start >= len(s.filtered) || start < 0 {
		return []user.User{}
	}
	end = min(end, len(s.filtered))
	return slices.Clone(s.filtered[start:end])
}

// TotalPages is ceil(len(filtered) / pageSize). It is zero for an empty view.
func (s *State) TotalPages() int {
	return (len(s.filtered) + s.pageSize - 1) / s.pageSize
}

// CurrentPage returns the 1-based page being shown
func (s *State) CurrentPage() int { return s.page }

// PageSize returns the number of rows per page
func (s *State) PageSize() int { return s.pageSize }

// Query returns the active search text
func (s *State) Query() string { return s.query }

// All returns a copy of the canonical list
func (s *State) All() []user.User {
	return slices.Clone(s.all)
}

// Filtered returns a copy of the filtered view
func (s *State) Filtered() []user.User {
	return slices.Clone(s.filtered)
}

// Find looks up a record in the canonical list
func (s *State) Find(id string) (user.User, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return user.User{}, false
	}
	return s.all[i], true
}

// IsSelected reports whether id is in the selection
func (s *State) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in sorted order
func (s *State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *State) matches(u user.User) bool {
	if s.folded == "" {
		return true
	}
	return strings.Contains(s.caser.String(u.Name), s.folded)
}

// recompute derives the filtered view from the canonical list
func (s *State) recompute() {
	filtered := make([]user.User, 0, len(s.all))
	for _, u := range s.all {
		if s.matches(u) {
			filtered = append(filtered, u)
		}
	}
	s.filtered = filtered
}

func (s *State) clampPage() {
	last := max(1, s.TotalPages())
	s.page = min(max(s.page, 1), last)
}

func (s *State) indexOf(id string) int {
	return slices.IndexFunc(s.all, func(u user.User) bool { return u.ID == id })
}
