package table

import (
	"github.com/rail44/adminui/internal/user"
)

// Field identifies an editable column
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldRole
)

// Fields lists the editable columns in display order
var Fields = []Field{FieldName, FieldEmail, FieldRole}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldRole:
		return "role"
	default:
		return "unknown"
	}
}

// EditSession is the in-progress edit of a single row
type EditSession struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Value returns the draft value of f
func (e EditSession) Value(f Field) string {
	switch f {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldRole:
		return e.Role
	default:
		return ""
	}
}

// Patch converts the draft into a patch replacing all editable fields
func (e EditSession) Patch() user.Patch {
	return user.Patch{
		Name:  user.String(e.Name),
		Email: user.String(e.Email),
		Role:  user.String(e.Role),
	}
}

// BeginEdit opens an edit session on id, discarding any session already
// open. The draft is seeded from the current record when it exists.
func (s *State) BeginEdit(id string) {
	session := &EditSession{ID: id}
	if u, ok := s.Find(id); ok {
		session.Name = u.Name
		session.Email = u.Email
		session.Role = u.Role
	}
	s.edit = session
}

// SetDraftField updates one draft value of the open session
func (s *State) SetDraftField(f Field, value string) {
	if s.edit == nil {
		return
	}
	switch f {
	case FieldName:
		s.edit.Name = value
	case FieldEmail:
		s.edit.Email = value
	case FieldRole:
		s.edit.Role = value
	}
}

// SaveEdit merges patch into the record with the given id, refreshes the
// filtered view and closes the edit session. It reports whether a record
// was updated.
func (s *State) SaveEdit(id string, patch user.Patch) bool {
	s.edit = nil

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.all[i] = s.all[i].Apply(patch)
	s.recompute()
	s.clampPage()
	return true
}

// CommitEdit saves the draft of the open session
func (s *State) CommitEdit() bool {
	if s.edit == nil {
		return false
	}
	return s.SaveEdit(s.edit.ID, s.edit.Patch())
}

// CancelEdit closes the edit session without changing data
func (s *State) CancelEdit() {
	s.edit = nil
}

// EditSession returns a copy of the open session
func (s *State) EditSession() (EditSession, bool) {
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

// Editing reports whether id is the row being edited
func (s *State) Editing(id string) bool {
	return s.edit != nil && s.edit.ID == id
}
