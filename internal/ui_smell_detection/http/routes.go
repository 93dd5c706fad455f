package http

import "github.com/gin-gonic/gin"

// Register mounts the detector under rg, normally /api/v1/duis. Analysis
// routes get the extra middleware, typically a rate limiter.
func (h *Handler) Register(rg *gin.RouterGroup, analysis ...gin.HandlerFunc) {
	g := rg.Group("/duis")

	g.GET("/rules", h.Rules)
	g.GET("/reports/:hash", h.GetReport)
	g.GET("/runs", h.ListRuns)
	g.GET("/runs/:id", h.GetRun)

	a := g.Group("", analysis...)
	a.POST("/analyze-raw", h.AnalyzeRaw)
	a.POST("/analyze", h.AnalyzeUpload)
	a.POST("/analyze-batch", h.AnalyzeBatch)
	a.POST("/graph/dot", h.GraphDOT)
}
