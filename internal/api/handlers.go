package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"go-brochure/internal/brochure"
	"go-brochure/internal/config"
	"go-brochure/internal/llm"
	"go-brochure/internal/redisdb"
	"go-brochure/internal/store"
	"go-brochure/internal/summary"
	"go-brochure/internal/urlutil"
	"go-brochure/internal/webpage"
)

type runRequest struct {
	URL string `json:"url"`
}

type runResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// newFetcher wires the page cache in front of the fetcher when redis is
// configured.
func newFetcher(rdb *redis.Client) brochure.Fetcher {
	fetcher := webpage.NewFetcher("", 5)
	if rdb == nil {
		return fetcher
	}
	return &redisdb.CachingFetcher{
		Fetcher: fetcher,
		Cache:   redisdb.NewPageCache(rdb, 5*time.Minute),
	}
}

func writeError(c *gin.Context, err error) {
	var invErr *urlutil.InvalidInputError
	var fetchErr *webpage.FetchError
	var authErr *llm.AuthError
	var remoteErr *llm.RemoteServiceError

	switch {
	case errors.As(err, &invErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": err.Error()}})
	case errors.As(err, &authErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": "chat endpoint rejected the request, check your API key"}})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": err.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
	}
}

func runWorkflow(c *gin.Context, kind string, run func(pageURL string) (string, error)) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "invalid request body"}})
		return
	}

	pageURL, err := urlutil.Validate(req.URL)
	if err != nil {
		writeError(c, err)
		return
	}

	output, err := run(pageURL)
	if err != nil {
		writeError(c, err)
		return
	}

	rec := &store.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		URL:       pageURL,
		Output:    output,
		CreatedAt: time.Now(),
	}
	if err := store.SaveRun(rec); err != nil {
		log.Printf("[API] failed to persist %s run for %s: %v", kind, pageURL, err)
	}

	c.JSON(http.StatusOK, runResponse{ID: rec.ID, URL: pageURL, Markdown: output})
}

// POST /summarize
func SummarizeHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		runWorkflow(c, "summary", func(pageURL string) (string, error) {
			client := llm.New(cfg.BaseURL, cfg.APIKey, cfg.Model)
			return summary.NewSummarizer(newFetcher(rdb), client).Summarize(c.Request.Context(), pageURL)
		})
	}
}

// POST /brochure
func BrochureHandler(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		runWorkflow(c, "brochure", func(pageURL string) (string, error) {
			client := llm.New(cfg.BaseURL, cfg.APIKey, cfg.Model)
			return brochure.NewGenerator(newFetcher(rdb), client).Generate(c.Request.Context(), pageURL)
		})
	}
}

// GET /runs
func ListRunsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		runs, err := store.ListRuns(50)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": err.Error()}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs})
	}
}
