package github

import (
	"context"

	apperrors "github.com/mjosborne1/check-sparked-server/internal/errors"
)

const (
	searchPageSize = 100
	maxSearchPages = 10
)

type searchPage struct {
	paths []string
	total int
}

// searchPager walks the code-search results for one query, one page per
// next call. Stop conditions are the named predicates below rather than
// inline counter checks, so tests can exercise them directly.
type searchPager struct {
	client  *Client
	query   string
	page    int
	fetched int
	total   int
	done    bool
}

func newSearchPager(client *Client, query string) *searchPager {
	return &searchPager{client: client, query: query, page: 1}
}

// next returns the following page of results, or nil when pagination has
// finished. An error also terminates the pager.
func (p *searchPager) next(ctx context.Context) (*searchPage, error) {
	if p.done || pageCapReached(p.page) {
		return nil, nil
	}

	if err := p.client.searchLimiter.Wait(ctx); err != nil {
		p.done = true
		return nil, apperrors.Wrap(err, apperrors.CodeTransportError, "rate limiter wait interrupted")
	}

	body, err := p.client.get(ctx, p.client.searchURL(p.query, p.page))
	if err != nil {
		p.done = true
		return nil, err
	}

	var raw struct {
		TotalCount int `json:"total_count"`
		Items      []struct {
			Path string `json:"path"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		p.done = true
		return nil, apperrors.Wrap(err, apperrors.CodeParseError, "failed to decode code-search response")
	}

	page := &searchPage{total: raw.TotalCount}
	for _, item := range raw.Items {
		page.paths = append(page.paths, item.Path)
	}

	p.page++
	p.fetched += len(page.paths)
	p.total = raw.TotalCount
	if shortPage(len(page.paths)) || totalReached(p.fetched, p.total) {
		p.done = true
	}
	return page, nil
}

// shortPage reports that the API returned fewer items than a full page,
// meaning no further page exists.
func shortPage(itemCount int) bool {
	return itemCount < searchPageSize
}

// totalReached reports that every match the API announced has been fetched.
func totalReached(fetched, total int) bool {
	return fetched >= total
}

// pageCapReached bounds the walk to the API's practical search depth.
func pageCapReached(page int) bool {
	return page > maxSearchPages
}
