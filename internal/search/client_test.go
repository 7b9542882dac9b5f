package search

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		InstantAnswerURL: srv.URL + "/",
		WikipediaURL:     srv.URL + "/w/api.php",
		Timeout:          time.Second,
		HTTPClient:       srv.Client(),
	})
}

func jsonHandler(t *testing.T, payload any) http.HandlerFunc {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func topics(texts ...string) []map[string]string {
	out := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		out = append(out, map[string]string{"Text": text, "FirstURL": "https://duckduckgo.com/x"})
	}
	return out
}

func assertInvariant(t *testing.T, res Result) {
	t.Helper()
	if !res.OK {
		assert.Nil(t, res.Snippets)
		assert.NotEmpty(t, res.Error)
		return
	}
	if res.Snippets != nil {
		assert.NotEmpty(t, res.Entries)
		assert.Equal(t, strings.Join(res.Entries, "\n\n"), *res.Snippets)
	}
}

func TestWebSearchBuildsRequest(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{}`))
	})
	c.userAgent = "studyprep-test"

	c.WebSearch(context.Background(), "cell biology & genes", 3)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "cell biology & genes", q.Get("q"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "1", q.Get("no_html"))
	assert.Equal(t, "1", q.Get("skip_disambig"))
	assert.Contains(t, got.URL.RawQuery, "q=cell+biology+%26+genes")
	assert.Equal(t, "studyprep-test", got.Header.Get("User-Agent"))
}

func TestWebSearchPhotosynthesis(t *testing.T) {
	abstract := strings.Repeat("Photosynthesis converts light. ", 7)[:200]
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"AbstractText": abstract,
		"RelatedTopics": topics(
			"Chlorophyll - a green pigment found in cyanobacteria and chloroplasts",
			"Calvin cycle - light-independent reactions of photosynthesis in plants",
			"Light-dependent reactions - the first stage of photosynthesis overall",
		),
	}))

	res := c.WebSearch(context.Background(), "photosynthesis", 2)

	require.True(t, res.OK)
	require.NotNil(t, res.Snippets)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "[1] "+abstract, res.Entries[0])
	assert.True(t, strings.HasPrefix(res.Entries[1], "[2] Chlorophyll"))
	assert.NotContains(t, *res.Snippets, "[3]")
	assertInvariant(t, res)
}

func TestWebSearchLengthFilter(t *testing.T) {
	exactly20 := strings.Repeat("a", 20)
	exactly21 := strings.Repeat("b", 21)
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"AbstractText":  "",
		"RelatedTopics": topics(exactly20, "", exactly21),
	}))

	res := c.WebSearch(context.Background(), "q", 3)

	require.True(t, res.OK)
	require.Equal(t, []string{"[1] " + exactly21}, res.Entries)
	assert.Equal(t, "[1] "+exactly21, *res.Snippets)
}

func TestWebSearchOnlyFirstTopicsConsidered(t *testing.T) {
	long := "a related topic that is long enough to keep"
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"RelatedTopics": topics("short", "tiny", long),
	}))

	res := c.WebSearch(context.Background(), "q", 2)

	assert.True(t, res.OK)
	assert.Nil(t, res.Snippets)
	assert.Equal(t, msgNoResults, res.Message)
}

func TestWebSearchCap(t *testing.T) {
	texts := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		texts = append(texts, strings.Repeat("x", 30+i))
	}
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"AbstractText":  strings.Repeat("abstract ", 10),
		"RelatedTopics": topics(texts...),
	}))

	for _, n := range []int{1, 2, 3, 5, 8} {
		res := c.WebSearch(context.Background(), "q", n)
		require.True(t, res.OK)
		assert.Len(t, res.Entries, n)
		assert.Equal(t, n, strings.Count(*res.Snippets, "\n\n")+1)
		assertInvariant(t, res)
	}
}

func TestWebSearchHugeMaxResults(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"AbstractText":  strings.Repeat("abstract ", 10),
		"RelatedTopics": topics(strings.Repeat("y", 40), strings.Repeat("z", 40)),
	}))

	for _, n := range []int{math.MaxInt, 1 << 40} {
		res := c.WebSearch(context.Background(), "q", n)
		require.True(t, res.OK, res.Error)
		assert.Len(t, res.Entries, 3)
		assertInvariant(t, res)
	}
}

func TestWebSearchDefaultMaxResults(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"AbstractText":  strings.Repeat("abstract ", 10),
		"RelatedTopics": topics(strings.Repeat("y", 40), strings.Repeat("z", 40), strings.Repeat("w", 40)),
	}))

	res := c.WebSearch(context.Background(), "q", 0)

	require.True(t, res.OK)
	assert.Len(t, res.Entries, DefaultMaxResults)
}

func TestWebSearchNoResults(t *testing.T) {
	c := newTestClient(t, jsonHandler(t, map[string]any{
		"AbstractText":  "too short",
		"RelatedTopics": []any{},
	}))

	res := c.WebSearch(context.Background(), "q", 3)

	assert.True(t, res.OK)
	assert.Nil(t, res.Snippets)
	assert.Empty(t, res.Error)
	assert.Equal(t, "No search results found", res.Message)
}

func TestWebSearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want: "Search failed: 503 Service Unavailable",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"AbstractText":`))
			},
			want: "parse search json failed",
		},
		{
			name: "wrong json shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"RelatedTopics":"nope"}`))
			},
			want: "parse search json failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			res := c.WebSearch(context.Background(), "q", 3)

			assert.False(t, res.OK)
			assert.Contains(t, res.Error, tt.want)
			assertInvariant(t, res)
		})
	}
}

func TestWebSearchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := NewClient(Config{InstantAnswerURL: addr, Timeout: time.Second})
	res := c.WebSearch(context.Background(), "q", 3)

	assert.False(t, res.OK)
	assert.Nil(t, res.Snippets)
	assert.Contains(t, res.Error, "search request failed")
}

func TestWebSearchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewClient(Config{
		InstantAnswerURL: srv.URL,
		Timeout:          30 * time.Millisecond,
		HTTPClient:       srv.Client(),
	})

	start := time.Now()
	res := c.WebSearch(context.Background(), "q", 3)

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, res.OK)
	assert.Nil(t, res.Snippets)
	assert.Equal(t, "Search timed out", res.Error)
}

func TestWebSearchRecoversPanics(t *testing.T) {
	c := NewClient(Config{HTTPClient: &http.Client{Transport: panicTransport{}}})

	res := c.WebSearch(context.Background(), "q", 3)

	assert.False(t, res.OK)
	assert.Nil(t, res.Snippets)
	assert.Contains(t, res.Error, "boom")
}

type panicTransport struct{}

func (panicTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("boom")
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, DefaultInstantAnswerURL, c.instantAnswerURL)
	assert.Equal(t, DefaultWikipediaURL, c.wikipediaURL)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.NotNil(t, c.httpClient)
}

func TestCheckHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		var gotQuery string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			_, _ = w.Write([]byte(`{"AbstractText":""}`))
		})

		health := c.CheckHealth(context.Background())

		assert.True(t, health.OK)
		assert.Empty(t, health.Error)
		assert.Equal(t, "test", gotQuery)
	})

	t.Run("unhealthy", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		health := c.CheckHealth(context.Background())

		assert.False(t, health.OK)
		assert.Equal(t, "Search failed: 502 Bad Gateway", health.Error)
	})
}
