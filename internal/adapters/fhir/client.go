package fhir

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/mjosborne1/check-sparked-server/internal/core/domain"
	"github.com/mjosborne1/check-sparked-server/internal/core/ports"
	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultCountTimeout   = 10 * time.Second
	defaultProfileTimeout = 30 * time.Second
)

type Config struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	UseAuth        bool          `mapstructure:"use_auth"`
	Username       string        `mapstructure:"username" validate:"required_if=UseAuth true"`
	Password       string        `mapstructure:"password" validate:"required_if=UseAuth true"`
	CountTimeout   time.Duration `mapstructure:"count_timeout"`
	ProfileTimeout time.Duration `mapstructure:"profile_timeout"`
}

// Client issues the two FHIR queries the audit needs. One request is in
// flight at a time; per-call deadlines come from the configured timeouts.
type Client struct {
	cfg    Config
	http   *http.Client
	logger ports.Logger
}

func NewClient(cfg Config, logger ports.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "FHIR server base URL is required")
	}
	if cfg.CountTimeout <= 0 {
		cfg.CountTimeout = defaultCountTimeout
	}
	if cfg.ProfileTimeout <= 0 {
		cfg.ProfileTimeout = defaultProfileTimeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}, nil
}

type bundle struct {
	Total int `json:"total"`
	Entry []struct {
		Resource struct {
			Version string `json:"version"`
			Status  string `json:"status"`
		} `json:"resource"`
	} `json:"entry"`
}

func (c *Client) SearchStructureDefinitions(ctx context.Context, canonicalURL string) (domain.SearchSet, error) {
	searchURL := fmt.Sprintf("%s/StructureDefinition?url=%s", c.cfg.BaseURL, url.QueryEscape(canonicalURL))

	b, err := c.getBundle(ctx, searchURL, c.cfg.ProfileTimeout)
	if err != nil {
		return domain.SearchSet{}, err
	}

	set := domain.SearchSet{Total: b.Total}
	for _, entry := range b.Entry {
		set.Entries = append(set.Entries, domain.StructureDefinitionEntry{
			Version: entry.Resource.Version,
			Status:  entry.Resource.Status,
		})
	}
	return set, nil
}

func (c *Client) CountResources(ctx context.Context, resourceType domain.ResourceType) (int, error) {
	countURL := fmt.Sprintf("%s/%s?_summary=count", c.cfg.BaseURL, resourceType)

	b, err := c.getBundle(ctx, countURL, c.cfg.CountTimeout)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

func (c *Client) getBundle(ctx context.Context, rawURL string, timeout time.Duration) (*bundle, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build FHIR request")
	}
	req.Header.Set("Accept", "application/fhir+json")
	if c.cfg.UseAuth {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeTransportError, "FHIR request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.CodeResourceUnsupported,
			fmt.Sprintf("server returned 404 for %s", rawURL))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, apperrors.New(apperrors.CodeHTTPStatusError,
			fmt.Sprintf("server returned HTTP %d for %s", resp.StatusCode, rawURL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeTransportError, "failed to read FHIR response body")
	}

	var b bundle
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeParseError, "failed to decode FHIR bundle")
	}
	return &b, nil
}
