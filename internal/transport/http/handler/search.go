package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"studyprep-api/internal/search"
	"studyprep-api/internal/transport/http/response"
)

const maxQueryLength = 512

type Searcher interface {
	WebSearch(ctx context.Context, query string, maxResults int) search.Result
	SearchWikipedia(ctx context.Context, query string) search.Result
	CheckHealth(ctx context.Context) search.Health
}

// SearchHandler exposes the snippet lookups. Lookup failures are part of the
// result payload, so these routes answer 200 unless the request is invalid.
type SearchHandler struct {
	searcher Searcher
}

func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

func (h *SearchHandler) Web(c *gin.Context) {
	query, ok := readQuery(c)
	if !ok {
		return
	}

	maxResults := 0
	if raw := c.Query("max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "max must be between 1 and 10")
			return
		}
		maxResults = parsed
	}

	response.OK(c, h.searcher.WebSearch(c.Request.Context(), query, maxResults))
}

func (h *SearchHandler) Wikipedia(c *gin.Context) {
	query, ok := readQuery(c)
	if !ok {
		return
	}
	response.OK(c, h.searcher.SearchWikipedia(c.Request.Context(), query))
}

func (h *SearchHandler) Health(c *gin.Context) {
	health := h.searcher.CheckHealth(c.Request.Context())
	if !health.OK {
		response.WithStatus(c, http.StatusServiceUnavailable, response.CodeUnavailable, "search unavailable", health)
		return
	}
	response.OK(c, health)
}

func readQuery(c *gin.Context) (string, bool) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" || len(query) > maxQueryLength {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "query parameter q is required (max 512 bytes)")
		return "", false
	}
	return query, true
}
