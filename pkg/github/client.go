// Package github builds a plain-text digest of a user's public repositories
// for use as LLM context.
package github

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/apperr"
	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
	"github.com/pkg/errors"
)

const (
	service   = "github"
	userAgent = "smart-cv-builder"
	rawAccept = "application/vnd.github.v3.raw"

	// maxPages caps listing at 1000 repositories.
	maxPages = 10
)

// Repo is one fetched repository. An empty README means none was found.
type Repo struct {
	Name        string
	Description string
	URL         string
	Stars       int
	Language    string
	Topics      []string
	UpdatedAt   time.Time
	README      string
}

type apiRepo struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Stars       int       `json:"stargazers_count"`
	Language    *string   `json:"language"`
	Topics      []string  `json:"topics"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Client struct {
	cfg  config.GitHubConfig
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg config.GitHubConfig, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{cfg: cfg, http: httpClient, log: log}
}

// FetchDigest lists username's repositories, reads each README and returns
// the summarised digest. With authenticated set, the configured token is
// required and sent on every call.
func (c *Client) FetchDigest(ctx context.Context, username string, authenticated bool) (string, error) {
	repos, err := c.Repos(ctx, username, authenticated)
	if err != nil {
		return "", err
	}
	return Summarize(repos), nil
}

// Repos lists username's repositories, following pagination, and fetches
// their READMEs one after another. A failed README fetch leaves that
// repository without one.
func (c *Client) Repos(ctx context.Context, username string, authenticated bool) ([]Repo, error) {
	if username == "" {
		return nil, apperr.NewValidationError("github", "username is empty")
	}
	token := ""
	if authenticated {
		if c.cfg.Token == "" {
			return nil, apperr.NewConfigurationError("GITHUB_TOKEN")
		}
		token = c.cfg.Token
	}

	var listed []apiRepo
	next := c.cfg.APIURL + "/users/" + url.PathEscape(username) + "/repos?per_page=100"
	for page := 0; next != "" && page < maxPages; page++ {
		repos, link, err := c.listPage(ctx, next, token)
		if err != nil {
			return nil, err
		}
		listed = append(listed, repos...)
		next = nextLink(link)
	}

	repos := make([]Repo, 0, len(listed))
	for _, r := range listed {
		repo := Repo{
			Name:      r.Name,
			URL:       r.HTMLURL,
			Stars:     r.Stars,
			Topics:    r.Topics,
			UpdatedAt: r.UpdatedAt,
			README:    c.readme(ctx, username, r.Name, token),
		}
		if r.Description != nil {
			repo.Description = *r.Description
		}
		if r.Language != nil {
			repo.Language = *r.Language
		}
		repos = append(repos, repo)
	}
	c.log.Debug("github repositories fetched", slog.String("user", username), slog.Int("count", len(repos)))
	return repos, nil
}

func (c *Client) listPage(ctx context.Context, u, token string) ([]apiRepo, string, error) {
	req, err := c.newRequest(ctx, u, "application/vnd.github+json", token)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &apperr.RemoteServiceError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &apperr.RemoteServiceError{Service: service, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read body")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &apperr.RemoteServiceError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var listed []apiRepo
	if err := json.Unmarshal(body, &listed); err != nil {
		return nil, "", &apperr.RemoteServiceError{Service: service, StatusCode: resp.StatusCode, Body: string(body), Err: errors.Wrap(err, "decode repositories")}
	}
	return listed, resp.Header.Get("Link"), nil
}

// nextLink returns the rel="next" target of a Link header, or "".
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		target, params, ok := strings.Cut(part, ";")
		if !ok {
			continue
		}
		for _, p := range strings.Split(params, ";") {
			if strings.TrimSpace(p) == `rel="next"` {
				return strings.Trim(strings.TrimSpace(target), "<>")
			}
		}
	}
	return ""
}

func (c *Client) readme(ctx context.Context, owner, repo, token string) string {
	u := c.cfg.APIURL + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/readme"
	req, err := c.newRequest(ctx, u, rawAccept, token)
	if err != nil {
		return ""
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("readme fetch failed", slog.String("repo", repo), slog.Any("err", err))
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(b)
}

func (c *Client) newRequest(ctx context.Context, u, accept, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}
