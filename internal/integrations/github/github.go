package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"devhub-api/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrNoProfile is returned when GitHub has no repositories for the username
var ErrNoProfile = errors.New("no github profile found")

// Client handles read-only integration with the GitHub API
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new GitHub client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.GithubURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// GetUserRepos fetches the five most recent public repositories of a GitHub
// user and passes the upstream JSON through untouched.
func (c *Client) GetUserRepos(ctx context.Context, username string) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.url, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "devhub-api")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debugf("GitHub returned status %d for user %s", resp.StatusCode, username)
		return nil, ErrNoProfile
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return json.RawMessage(body), nil
}
