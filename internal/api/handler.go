// Package api exposes the flood risk pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/pipeline"
)

// Evaluator runs one flood risk evaluation. Implemented by pipeline.Service.
type Evaluator interface {
	Evaluate(ctx context.Context, city string) (models.PredictionResponse, error)
	ModelLoaded() bool
	TrackedCities() int
}

type Handler struct {
	evaluator   Evaluator
	broadcaster *pipeline.Broadcaster
}

func NewHandler(evaluator Evaluator, broadcaster *pipeline.Broadcaster) *Handler {
	return &Handler{evaluator: evaluator, broadcaster: broadcaster}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/predict", h.predict)
	r.GET("/api/cities", h.listCities)
	r.GET("/api/alerts/stream", h.streamAlerts)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

type predictRequest struct {
	City string `json:"city" binding:"required"`
}

func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "request body must be JSON with a non-empty \"city\" field",
		})
		return
	}

	resp, err := h.evaluator.Evaluate(c.Request.Context(), req.City)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnknownCity):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "city not supported",
				"city":  req.City,
			})
		case errors.Is(err, models.ErrUpstreamUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "weather data temporarily unavailable, retry shortly",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "prediction failed",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listCities(c *gin.Context) {
	grouped := cities.ByProvince()

	provinces := make(map[string][]string, len(grouped))
	total := 0
	for province, list := range grouped {
		names := make([]string, len(list))
		for i, city := range list {
			names[i] = city.Name
		}
		provinces[province] = names
		total += len(list)
	}

	c.JSON(http.StatusOK, gin.H{
		"provinces": provinces,
		"total":     total,
	})
}

// streamAlerts pushes CRITICAL and HIGH hazard alerts to the client as
// server-sent events until the client disconnects or the broadcaster shuts
// down. Alerts come from both user-triggered evaluations and the background
// sampler.
func (h *Handler) streamAlerts(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert streaming disabled"})
		return
	}

	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case alert, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("alert", alert)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"model_loaded":   h.evaluator.ModelLoaded(),
		"cities_tracked": h.evaluator.TrackedCities(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
