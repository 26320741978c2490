package source

import (
	"context"
	"fmt"
	"os"

	"github.com/rail44/adminui/internal/user"
)

// FileSource reads users from a local JSON file
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) FetchUsers(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return Decode(data)
}

// Location returns the file path
func (s *FileSource) Location() string {
	return s.path
}
