package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestStopPredicates(t *testing.T) {
	t.Run("shortPage", func(t *testing.T) {
		assert.True(t, shortPage(0))
		assert.True(t, shortPage(searchPageSize-1))
		assert.False(t, shortPage(searchPageSize))
	})

	t.Run("totalReached", func(t *testing.T) {
		assert.True(t, totalReached(100, 100))
		assert.True(t, totalReached(150, 100))
		assert.False(t, totalReached(99, 100))
	})

	t.Run("pageCapReached", func(t *testing.T) {
		assert.False(t, pageCapReached(1))
		assert.False(t, pageCapReached(maxSearchPages))
		assert.True(t, pageCapReached(maxSearchPages+1))
	})
}

func TestSearchPager_Next(t *testing.T) {
	ctx := context.Background()

	fullPageBody := func(total int) string {
		items := ""
		for i := 0; i < searchPageSize; i++ {
			if i > 0 {
				items += ","
			}
			items += fmt.Sprintf(`{"path": "d/Task-%03d.json"}`, i)
		}
		return fmt.Sprintf(`{"total_count": %d, "items": [%s]}`, total, items)
	}

	t.Run("stops when accumulated matches reach the reported total", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Write([]byte(fullPageBody(searchPageSize)))
		}))
		t.Cleanup(server.Close)

		client, err := NewClient(Config{APIBaseURL: server.URL, Owner: "o", Repo: "r"}, noopLogger{})
		require.NoError(t, err)
		client.searchLimiter = rate.NewLimiter(rate.Inf, 1)

		pager := newSearchPager(client, "q")

		page1, err := pager.next(ctx)
		require.NoError(t, err)
		require.NotNil(t, page1)
		assert.Len(t, page1.paths, searchPageSize)

		page2, err := pager.next(ctx)
		require.NoError(t, err)
		assert.Nil(t, page2)
		assert.Equal(t, 1, requests)
	})

	t.Run("page cap bounds the walk", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			// Always claims more results exist.
			w.Write([]byte(fullPageBody(100000)))
		}))
		t.Cleanup(server.Close)

		client, err := NewClient(Config{APIBaseURL: server.URL, Owner: "o", Repo: "r"}, noopLogger{})
		require.NoError(t, err)
		client.searchLimiter = rate.NewLimiter(rate.Inf, 1)

		pager := newSearchPager(client, "q")
		pages := 0
		for {
			page, err := pager.next(ctx)
			require.NoError(t, err)
			if page == nil {
				break
			}
			pages++
		}

		assert.Equal(t, maxSearchPages, pages)
		assert.Equal(t, maxSearchPages, requests)
	})

	t.Run("error terminates the pager", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		client, err := NewClient(Config{APIBaseURL: server.URL, Owner: "o", Repo: "r"}, noopLogger{})
		require.NoError(t, err)
		client.searchLimiter = rate.NewLimiter(rate.Inf, 1)

		pager := newSearchPager(client, "q")

		_, err = pager.next(ctx)
		require.Error(t, err)

		page, err := pager.next(ctx)
		assert.NoError(t, err)
		assert.Nil(t, page)
	})
}
