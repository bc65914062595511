package api

import (
	"net/http"
	"strconv"

	"docuhub/internal/docservice/service"

	"github.com/gin-gonic/gin"
)

type searchRequest struct {
	Query          string  `json:"query" binding:"required"`
	DocumentType   string  `json:"documentType"`
	MatchThreshold float64 `json:"matchThreshold"`
	MatchCount     int     `json:"matchCount"`
	Grouped        bool    `json:"grouped"`
}

// SearchHandler runs a semantic search over the organization's
// documents.
func (a *API) SearchHandler(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	out, err := a.service.Search(c.Request.Context(), orgID(c), service.SearchInput{
		Query:          req.Query,
		DocType:        req.DocumentType,
		MatchThreshold: req.MatchThreshold,
		MatchCount:     req.MatchCount,
		Grouped:        req.Grouped,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type ragQueryRequest struct {
	Query            string  `json:"query" binding:"required"`
	DocumentType     string  `json:"documentType"`
	MaxContextChunks int     `json:"maxContextChunks"`
	MinSimilarity    float64 `json:"minSimilarity"`
	IncludeMetadata  bool    `json:"includeMetadata"`
	GenerateAnswer   bool    `json:"generateAnswer"`
	Model            string  `json:"model"`
	Temperature      float32 `json:"temperature"`
	MaxTokens        int     `json:"maxTokens"`
}

// RAGQueryHandler assembles retrieval context for a question and
// optionally generates an answer.
func (a *API) RAGQueryHandler(c *gin.Context) {
	var req ragQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	ragCtx, err := a.service.Query(c.Request.Context(), orgID(c), service.RAGInput{
		Query:            req.Query,
		DocType:          req.DocumentType,
		MaxContextChunks: req.MaxContextChunks,
		MinSimilarity:    req.MinSimilarity,
		IncludeMetadata:  req.IncludeMetadata,
		GenerateAnswer:   req.GenerateAnswer,
		Model:            req.Model,
		Temperature:      req.Temperature,
		MaxTokens:        req.MaxTokens,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ragCtx)
}

// MetricsHandler aggregates processing activity over a day window.
func (a *API) MetricsHandler(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	metrics, err := a.service.Metrics(c.Request.Context(), orgID(c), days)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
