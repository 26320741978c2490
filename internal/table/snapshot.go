package table

import (
	"github.com/rail44/adminui/internal/user"
)

// Row is a visible user together with its row flags
type Row struct {
	user.User
	Selected bool
	Editing  bool
}

// Snapshot is a read-only copy of everything a renderer needs
type Snapshot struct {
	Rows       []Row
	Query      string
	Page       int
	TotalPages int
	PageSize   int
	Matches    int
	Total      int
	Selected   int
	Edit       *EditSession
}

// Snapshot captures the current page of the table
func (s *State) Snapshot() Snapshot {
	visible := s.VisibleUsers()
	rows := make([]Row, len(visible))
	for i, u := range visible {
		rows[i] = Row{
			User:     u,
			Selected: s.IsSelected(u.ID),
			Editing:  s.Editing(u.ID),
		}
	}

	snap := Snapshot{
		Rows:       rows,
		Query:      s.query,
		Page:       s.page,
		TotalPages: s.TotalPages(),
		PageSize:   s.pageSize,
		Matches:    len(s.filtered),
		Total:      len(s.all),
		Selected:   len(s.selected),
	}
	if e, ok := s.EditSession(); ok {
		snap.Edit = &e
	}
	return snap
}

// HasPrev reports whether there is a page before the current one
func (s Snapshot) HasPrev() bool {
	return s.Page > 1
}

// HasNext reports whether there is a page after the current one
func (s Snapshot) HasNext() bool {
	return s.Page < s.TotalPages
}
