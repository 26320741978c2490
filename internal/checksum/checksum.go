package checksum

import (
	"fmt"
	"hash/fnv"

	"github.com/rail44/adminui/internal/user"
)

// Calculate computes a checksum over the ordered records
func Calculate(users []user.User) string {
	h := fnv.New32a()
	for _, u := range users {
		// Fields are separated by NUL so that ("ab","c") and ("a","bc") differ
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\n", u.ID, u.Name, u.Email, u.Role)
	}

	// Return as 8-character hex string
	return fmt.Sprintf("%08x", h.Sum32())
}

// Changed reports whether users hash differently from previous
func Changed(previous string, users []user.User) bool {
	return previous != Calculate(users)
}
