package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultAPIBaseURL = "https://api.github.com"
	requestTimeout    = 10 * time.Second

	// Unauthenticated clients get 10 code-search requests per minute,
	// authenticated ones 30. Pace just under the applicable quota.
	unauthenticatedSearchRPM = 10
	authenticatedSearchRPM   = 30
)

// RateLimitSuggestion is the operator guidance printed when the API rejects
// a request for quota reasons.
const RateLimitSuggestion = "Set a GitHub access token (GITHUB_TOKEN) to raise the API rate limit from 60 to 5000 requests per hour."

type Config struct {
	APIBaseURL string `mapstructure:"api_base_url"`
	Owner      string `mapstructure:"owner" validate:"required"`
	Repo       string `mapstructure:"repo" validate:"required"`
	Token      string `mapstructure:"token"`
}

// Client talks to the GitHub contents and code-search APIs for one
// owner/repo pair. Search calls are paced with a client-side limiter so a
// long fallback phase does not trip the secondary quota.
type Client struct {
	cfg           Config
	http          *http.Client
	searchLimiter *rate.Limiter
	logger        ports.Logger
}

func NewClient(cfg Config, logger ports.Logger) (*Client, error) {
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "corpus repository owner and repo are required")
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	rpm := unauthenticatedSearchRPM
	if cfg.Token != "" {
		rpm = authenticatedSearchRPM
	}

	return &Client{
		cfg:           cfg,
		http:          &http.Client{Timeout: requestTimeout},
		searchLimiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		logger:        logger,
	}, nil
}

func (c *Client) ListContents(ctx context.Context, path string) ([]domain.RepoEntry, error) {
	listURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.cfg.APIBaseURL, c.cfg.Owner, c.cfg.Repo, path)

	body, err := c.get(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Name string `json:"name"`
		Path string `json:"path"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeParseError, "failed to decode contents listing")
	}

	entries := make([]domain.RepoEntry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, domain.RepoEntry{Name: e.Name, Path: e.Path, Type: e.Type})
	}
	return entries, nil
}

func (c *Client) SearchFiles(ctx context.Context, path string, filenamePrefix string) ([]string, error) {
	query := fmt.Sprintf("repo:%s/%s filename:%s", c.cfg.Owner, c.cfg.Repo, filenamePrefix)
	if path != "" {
		query += " path:" + path
	}

	pager := newSearchPager(c, query)

	var paths []string
	for {
		page, err := pager.next(ctx)
		if err != nil {
			// Pagination stops for this query only; whatever was
			// collected so far is still usable.
			return paths, err
		}
		if page == nil {
			return paths, nil
		}
		paths = append(paths, page.paths...)
	}
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build GitHub request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeTransportError, "GitHub request failed")
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusForbidden && isRateLimited(resp, body) {
		msg := "GitHub API rate limit exceeded"
		if c.cfg.Token == "" {
			msg += " (unauthenticated limit: 60 requests/hour)"
		} else {
			msg += " (authenticated limit: 5000 requests/hour)"
		}
		return nil, apperrors.NewUserFacing(apperrors.CodeRateLimited, msg, RateLimitSuggestion)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.New(apperrors.CodeHTTPStatusError,
			fmt.Sprintf("GitHub returned HTTP %d for %s", resp.StatusCode, rawURL))
	}
	if readErr != nil {
		return nil, apperrors.Wrap(readErr, apperrors.CodeTransportError, "failed to read GitHub response body")
	}
	return body, nil
}

func isRateLimited(resp *http.Response, body []byte) bool {
	if resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(string(body)), "rate limit")
}

func (c *Client) searchURL(query string, page int) string {
	return fmt.Sprintf("%s/search/code?q=%s&per_page=%d&page=%d",
		c.cfg.APIBaseURL, url.QueryEscape(query), searchPageSize, page)
}
