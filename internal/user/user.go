package user

import (
	"encoding/json"
	"fmt"
)

// User is a single member record as served by the members endpoint
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)

	switch {
	case len(raw.ID) == 0 || string(raw.ID) == "null":
		u.ID = ""
	case raw.ID[0] == '"':
		return json.Unmarshal(raw.ID, &u.ID)
	default:
		var n json.Number
		if err := json.Unmarshal(raw.ID, &n); err != nil {
			return fmt.Errorf("id must be a string or a number: %w", err)
		}
		u.ID = n.String()
	}
	return nil
}

// Patch is a partial update of a User. Nil fields are left untouched.
type Patch struct {
	Name  *string
	Email *string
	Role  *string
}

// Apply returns a copy of u with the non-nil fields of p merged in
func (u User) Apply(p Patch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

// Empty reports whether the patch changes nothing
func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil
}

// String returns a pointer to s, for building patches inline
func String(s string) *string {
	return &s
}
