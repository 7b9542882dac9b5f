// Package search looks up short text snippets on public search endpoints.
//
// Every lookup returns a Result instead of an error: callers branch on OK.
// A successful lookup that found nothing has OK set and Snippets nil.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultTimeout          = 10 * time.Second
	DefaultMaxResults       = 3
	DefaultInstantAnswerURL = "https://api.duckduckgo.com/"
	DefaultWikipediaURL     = "https://en.wikipedia.org/w/api.php"

	// candidates this short or shorter are dropped
	minSnippetLength = 20
	wikipediaLimit   = 3

	msgTimedOut         = "Search timed out"
	msgNoResults        = "No search results found"
	msgNoWikipediaFound = "No Wikipedia results found"
)

// Result is the outcome of a lookup. OK false implies Snippets is nil.
type Result struct {
	OK       bool     `json:"ok"`
	Snippets *string  `json:"snippets"`
	Entries  []string `json:"entries,omitempty"`
	Error    string   `json:"error,omitempty"`
	Message  string   `json:"message,omitempty"`
}

// Health reports whether the primary endpoint answered a live query.
type Health struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type Config struct {
	InstantAnswerURL string
	WikipediaURL     string
	UserAgent        string
	Timeout          time.Duration
	HTTPClient       *http.Client
}

type Client struct {
	instantAnswerURL string
	wikipediaURL     string
	userAgent        string
	timeout          time.Duration
	httpClient       *http.Client
	sanitizer        *bluemonday.Policy
}

func NewClient(cfg Config) *Client {
	c := &Client{
		instantAnswerURL: cfg.InstantAnswerURL,
		wikipediaURL:     cfg.WikipediaURL,
		userAgent:        cfg.UserAgent,
		timeout:          cfg.Timeout,
		httpClient:       cfg.HTTPClient,
		sanitizer:        bluemonday.StrictPolicy(),
	}
	if c.instantAnswerURL == "" {
		c.instantAnswerURL = DefaultInstantAnswerURL
	}
	if c.wikipediaURL == "" {
		c.wikipediaURL = DefaultWikipediaURL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.httpClient == nil {
		// the per-call deadline is the only timeout that applies
		c.httpClient = &http.Client{}
	}
	return c
}

// CheckHealth issues a real one-result query against the instant-answer
// endpoint and reports whether it succeeded, with the failure if it did not.
func (c *Client) CheckHealth(ctx context.Context) Health {
	res := c.WebSearch(ctx, "test", 1)
	return Health{OK: res.OK, Error: res.Error}
}

func failure(msg string) Result {
	return Result{OK: false, Error: msg}
}

func found(entries []string) Result {
	block := strings.Join(entries, "\n\n")
	return Result{OK: true, Snippets: &block, Entries: entries}
}

func empty(msg string) Result {
	return Result{OK: true, Message: msg}
}

// recoverInto converts a panic raised while searching into a failed Result.
func recoverInto(res *Result) {
	if r := recover(); r != nil {
		*res = failure(fmt.Sprintf("search failed: %v", r))
	}
}

// do runs the GET under the client's deadline and hands the response to
// decode. Transport and decode errors become a failed Result.
func (c *Client) do(ctx context.Context, url string, decode func(*http.Response) (Result, error)) Result {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return failure(fmt.Sprintf("build search request failed: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if timedOut(reqCtx, err) {
			return failure(msgTimedOut)
		}
		return failure(fmt.Sprintf("search request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(fmt.Sprintf("Search failed: %s", resp.Status))
	}

	res, err := decode(resp)
	if err != nil {
		if timedOut(reqCtx, err) {
			return failure(msgTimedOut)
		}
		return failure(err.Error())
	}
	return res
}

func timedOut(ctx context.Context, err error) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded)
}
