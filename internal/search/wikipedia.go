package search

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type wikipediaResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// SearchWikipedia queries the encyclopedia search endpoint and formats up to
// three hits as "[n] Title: snippet" with markup removed. It is independent
// of WebSearch; callers pick which one to use.
func (c *Client) SearchWikipedia(ctx context.Context, query string) (res Result) {
	defer recoverInto(&res)

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("format", "json")
	params.Set("srlimit", strconv.Itoa(wikipediaLimit))
	params.Set("utf8", "1")
	endpoint := c.wikipediaURL + "?" + params.Encode()

	return c.do(ctx, endpoint, func(resp *http.Response) (Result, error) {
		var parsed wikipediaResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return Result{}, fmt.Errorf("parse wikipedia json failed: %w", err)
		}

		hits := parsed.Query.Search
		if len(hits) > wikipediaLimit {
			hits = hits[:wikipediaLimit]
		}
		entries := make([]string, 0, len(hits))
		for i, hit := range hits {
			entries = append(entries, fmt.Sprintf("[%d] %s: %s", i+1, hit.Title, c.stripMarkup(hit.Snippet)))
		}
		if len(entries) == 0 {
			return empty(msgNoWikipediaFound), nil
		}
		return found(entries), nil
	})
}

func (c *Client) stripMarkup(s string) string {
	plain := html.UnescapeString(c.sanitizer.Sanitize(s))
	return strings.Join(strings.Fields(plain), " ")
}
