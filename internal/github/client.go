package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v57/github"

	"ghostie/internal/cache"
	"ghostie/internal/config"
)

const pageSize = 50

// Client lists and marks notification threads.
type Client struct {
	api *gh.Client
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient replaces the default HTTP client. Its Timeout is left as is.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// NewClient builds a client for the configured API base URL using token as
// the bearer credential.
func NewClient(cfg *config.Config, token string, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("github client requires config")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("github client requires a token")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.GitHubTimeout()}
	}

	baseURL, err := url.Parse(cfg.GitHub.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse github base url: %w", err)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	api := gh.NewClient(o.httpClient).WithAuthToken(token)
	api.BaseURL = baseURL
	api.UserAgent = "ghostie"
	return &Client{api: api}, nil
}

// ListSince returns every unread notification thread updated at or after
// since, following pagination.
func (c *Client) ListSince(ctx context.Context, since time.Time) ([]cache.Notification, error) {
	opts := &gh.NotificationListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: pageSize},
	}
	var notifications []cache.Notification
	for {
		threads, resp, err := c.api.Activity.ListNotifications(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("list notifications: %w", err)
		}
		for _, thread := range threads {
			notifications = append(notifications, convert(thread))
		}
		if resp == nil || resp.NextPage == 0 {
			return notifications, nil
		}
		opts.Page = resp.NextPage
	}
}

// MarkRead marks one notification thread as read on GitHub.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	if _, err := c.api.Activity.MarkThreadRead(ctx, id); err != nil {
		return fmt.Errorf("mark thread %s read: %w", id, err)
	}
	return nil
}

// CheckAuth verifies the token against the API and returns the login it
// belongs to.
func (c *Client) CheckAuth(ctx context.Context) (string, error) {
	user, _, err := c.api.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	return user.GetLogin(), nil
}

func convert(thread *gh.Notification) cache.Notification {
	repo := thread.GetRepository()
	subject := thread.GetSubject()
	return cache.Notification{
		ID:        thread.GetID(),
		Name:      repo.GetFullName(),
		Repo:      repo.GetName(),
		Subject:   subject.GetTitle(),
		Kind:      subject.GetType(),
		URL:       NormalizeURL(repo.GetHTMLURL(), subject.GetURL()),
		UpdatedAt: thread.GetUpdatedAt().Time.UTC(),
	}
}

// NormalizeURL maps an API subject URL to its browser URL. Threads without a
// subject URL link to the repository.
func NormalizeURL(repoURL, subjectURL string) string {
	if subjectURL == "" {
		return repoURL
	}
	htmlURL := strings.Replace(subjectURL, "api.github.com/repos", "github.com", 1)
	return strings.Replace(htmlURL, "/pulls/", "/pull/", 1)
}
