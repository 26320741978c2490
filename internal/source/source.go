package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rail44/adminui/internal/config"
	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/user"
)

var (
	// ErrMissingID is returned when a record has no id
	ErrMissingID = errors.New("record has no id")
	// ErrDuplicateID is returned when two records share an id
	ErrDuplicateID = errors.New("duplicate record id")
)

// Source yields the full list of users in one read
type Source interface {
	FetchUsers(ctx context.Context) ([]user.User, error)
	// Location describes where the users come from, for display
	Location() string
}

// New picks an HTTP or file source based on the configured location
func New(cfg *config.Config, logger log.Logger) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if config.IsRemote(cfg.Source) {
		return NewHTTPSource(&HTTPSourceOptions{
			URL:       cfg.Source,
			Timeout:   cfg.Timeout,
			Retries:   cfg.Retries,
			UserAgent: cfg.UserAgent,
			Logger:    logger,
		})
	}
	return NewFileSource(strings.TrimPrefix(cfg.Source, "file://")), nil
}

// Load fetches users from src. A failed fetch is logged and yields an empty
// list so the table stays usable.
func Load(ctx context.Context, src Source, logger log.Logger) []user.User {
	if logger == nil {
		logger = log.Default()
	}
	users, err := src.FetchUsers(ctx)
	if err != nil {
		logger.Error("failed to fetch users",
			slog.String("source", src.Location()),
			slog.String("error", err.Error()))
		return []user.User{}
	}
	logger.Info("users loaded",
		slog.String("source", src.Location()),
		slog.Int("count", len(users)))
	return users
}

// Decode parses a JSON array of users and checks that every record carries
// a unique id.
func Decode(data []byte) ([]user.User, error) {
	var users []user.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	if users == nil {
		users = []user.User{}
	}

	seen := make(map[string]int, len(users))
	for i, u := range users {
		if u.ID == "" {
			return nil, fmt.Errorf("record %d: %w", i, ErrMissingID)
		}
		if first, ok := seen[u.ID]; ok {
			return nil, fmt.Errorf("records %d and %d: %w %q", first, i, ErrDuplicateID, u.ID)
		}
		seen[u.ID] = i
	}
	return users, nil
}
