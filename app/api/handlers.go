package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newslens/newslens/app/analysis"
	"github.com/newslens/newslens/app/scraper"
	"github.com/newslens/newslens/app/tasks"
)

func NewHandler(analyzer AnalyzerInterface, registry RegistryInterface,
	runner tasks.TaskRunnerInterface, models *analysis.Models, version string) *Handler {
	return &Handler{
		analyzer: analyzer,
		registry: registry,
		runner:   runner,
		models:   models,
		version:  version,
	}
}

func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "input_error",
			"message": "Request body must include a url field",
		})
		return
	}

	if err := validateURL(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "input_error",
			"message": err.Error(),
		})
		return
	}

	task := tasks.NewAnalyzeURLTask(h.analyzer, req.URL)
	if err := h.runner.Enqueue(task); err != nil {
		h.renderEnqueueError(c, req.URL, err)
		return
	}

	result, err := task.Wait(c.Request.Context())
	if err != nil {
		h.renderAnalysisError(c, req.URL, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) AnalyzeText(c *gin.Context) {
	var req AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "input_error",
			"message": "Request body must include a text field",
		})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "input_error",
			"message": "text must not be blank",
		})
		return
	}

	task := tasks.NewAnalyzeTextTask(h.analyzer, req.Text, req.Source)
	if err := h.runner.Enqueue(task); err != nil {
		h.renderEnqueueError(c, task.GetSubject(), err)
		return
	}

	result, err := task.Wait(c.Request.Context())
	if err != nil {
		h.renderAnalysisError(c, task.GetSubject(), err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListSources(c *gin.Context) {
	ratings := h.registry.All()

	entries := make([]map[string]interface{}, 0, len(ratings))
	for _, rating := range ratings {
		entries = append(entries, map[string]interface{}{
			"domain":           rating.Domain,
			"reputation_score": rating.Score,
			"known_bias":       rating.Bias,
			"category":         rating.Category,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"sources": entries,
		"total":   len(entries),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	modelsLoaded := h.models != nil

	status := "ok"
	vocabularySize := 0
	if modelsLoaded {
		vocabularySize = h.models.Vocabulary.Size()
	} else {
		status = "degraded"
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"status":          status,
		"models_loaded":   modelsLoaded,
		"vocabulary_size": vocabularySize,
		"sources":         h.registry.Count(),
		"version":         h.version,
		"timestamp":       time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) renderEnqueueError(c *gin.Context, subject string, err error) {
	if errors.Is(err, tasks.ErrQueueFull) {
		slog.Error("Analysis queue saturated", "subject", subject)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "queue_full",
			"message": "Too many analyses in flight, retry later",
		})
		return
	}

	slog.Error("Error enqueueing analysis task", "subject", subject, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "analysis_error",
		"message": err.Error(),
	})
}

// renderAnalysisError maps pipeline failures onto the response taxonomy.
// Context errors are checked before scrape errors so a fetch that died on
// a deadline reports as a timeout rather than an upstream failure.
func (h *Handler) renderAnalysisError(c *gin.Context, subject string, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		slog.Error("Analysis timed out", "subject", subject, "error", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error":   "timeout_error",
			"message": "Analysis did not complete in time",
		})
		return
	}

	var scrapeErr *scraper.ScrapeError
	if errors.As(err, &scrapeErr) {
		slog.Error("Scrape failed", "url", scrapeErr.URL, "reason", scrapeErr.Reason, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "scrape_error",
			"reason":  scrapeErr.Reason,
			"message": err.Error(),
		})
		return
	}

	slog.Error("Analysis failed", "subject", subject, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "analysis_error",
		"message": err.Error(),
	})
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("url is not valid: %v", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("url must include a host")
	}
	return nil
}
