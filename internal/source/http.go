package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rail44/adminui/internal/log"
	"github.com/rail44/adminui/internal/user"
)

// HTTPSourceOptions contains options for creating an HTTPSource
type HTTPSourceOptions struct {
	URL        string
	Timeout    time.Duration
	Retries    int
	UserAgent  string
	HTTPClient *http.Client
	Logger     log.Logger
}

// HTTPSource reads users with a single GET request
type HTTPSource struct {
	url    string
	client *resty.Client
	logger log.Logger
}

// NewHTTPSource creates a new HTTP source
func NewHTTPSource(opts *HTTPSourceOptions) (*HTTPSource, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("URL is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	client := resty.New()
	if opts.HTTPClient != nil {
		client = resty.NewWithClient(opts.HTTPClient)
	}
	client.
		SetLogger(&restyLogger{logger: logger}).
		SetHeader("Accept", "application/json").
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &HTTPSource{
		url:    opts.URL,
		client: client,
		logger: logger,
	}, nil
}

// retryCondition retries transport failures and server errors
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return r != nil && r.StatusCode() >= http.StatusInternalServerError
}

// FetchUsers performs the GET and decodes the JSON array
func (s *HTTPSource) FetchUsers(ctx context.Context) ([]user.User, error) {
	start := time.Now()
	s.logger.Debug("fetching users", componentAttr, slog.String("url", s.url))

	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), s.url)
	}

	users, err := Decode(resp.Body())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched users",
		componentAttr,
		slog.Int("count", len(users)),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	return users, nil
}

func (s *HTTPSource) Location() string {
	return s.url
}

var componentAttr = slog.String(log.ComponentKey, "source")

// restyLogger routes resty's retry and failure messages through the
// package logger so they follow log.Redirect.
type restyLogger struct {
	logger log.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), componentAttr)
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)), componentAttr)
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), componentAttr)
}
