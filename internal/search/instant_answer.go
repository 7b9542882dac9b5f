package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

type instantAnswerResponse struct {
	AbstractText  string `json:"AbstractText"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// WebSearch queries the instant-answer endpoint and returns at most
// maxResults indexed snippets. maxResults <= 0 means DefaultMaxResults.
func (c *Client) WebSearch(ctx context.Context, query string, maxResults int) (res Result) {
	defer recoverInto(&res)

	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")
	endpoint := c.instantAnswerURL + "?" + params.Encode()

	return c.do(ctx, endpoint, func(resp *http.Response) (Result, error) {
		var parsed instantAnswerResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return Result{}, fmt.Errorf("parse search json failed: %w", err)
		}

		entries := formatIndexed(collectCandidates(parsed, maxResults), maxResults)
		if len(entries) == 0 {
			return empty(msgNoResults), nil
		}
		return found(entries), nil
	})
}

// collectCandidates returns the abstract followed by the texts of the first
// maxResults related topics, skipping empty texts.
func collectCandidates(parsed instantAnswerResponse, maxResults int) []string {
	topics := parsed.RelatedTopics
	if len(topics) > maxResults {
		topics = topics[:maxResults]
	}
	candidates := make([]string, 0, len(topics)+1)
	if abstract := strings.TrimSpace(parsed.AbstractText); abstract != "" {
		candidates = append(candidates, abstract)
	}
	for _, topic := range topics {
		if text := strings.TrimSpace(topic.Text); text != "" {
			candidates = append(candidates, text)
		}
	}
	return candidates
}

// formatIndexed keeps candidates longer than minSnippetLength, caps them at
// limit and prefixes each with a 1-based "[n] " marker.
func formatIndexed(candidates []string, limit int) []string {
	entries := make([]string, 0, min(limit, len(candidates)))
	for _, candidate := range candidates {
		if len(entries) == limit {
			break
		}
		if utf8.RuneCountInString(candidate) <= minSnippetLength {
			continue
		}
		entries = append(entries, fmt.Sprintf("[%d] %s", len(entries)+1, candidate))
	}
	return entries
}
