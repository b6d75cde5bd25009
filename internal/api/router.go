package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-brochure/internal/config"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/summarize", SummarizeHandler(cfg, rdb))
	r.POST("/brochure", BrochureHandler(cfg, rdb))
	r.GET("/runs", ListRunsHandler())

	return r
}
