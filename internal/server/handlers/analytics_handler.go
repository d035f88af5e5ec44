package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/roostery/internal/domain/models"
	"github.com/mamadbah2/roostery/internal/service/export"
)

// IdentityHeader identifies the caller; it is forwarded to the record store as-is.
const IdentityHeader = "X-User-ID"

// ErrInvalidRange indicates malformed or inverted date query parameters.
var ErrInvalidRange = errors.New("invalid date range")

// AnalyticsService describes the analytics operations exposed over HTTP.
type AnalyticsService interface {
	export.AnalyticsProvider
}

// Exporter writes analytics to a spreadsheet.
type Exporter interface {
	Export(ctx context.Context, identity string, r models.DateRange) (models.ExportResult, error)
}

// AnalyticsHandler serves dashboard analytics.
type AnalyticsHandler struct {
	svc      AnalyticsService
	exporter Exporter
	logger   *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(svc AnalyticsService, exporter Exporter, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{svc: svc, exporter: exporter, logger: logger}
}

// Stats returns the headline statistics.
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}

	var asOf time.Time
	if raw := c.Query("asOf"); raw != "" {
		t, err := parseQueryTime(raw, false)
		if err != nil {
			h.badRequest(c, fmt.Errorf("asOf: %w", err))
			return
		}
		asOf = t
	}

	stats, err := h.svc.GetAnalyticsStats(c.Request.Context(), identity(c), r, asOf)
	h.respond(c, "stats", stats, err)
}

// MonthlyTrends returns the monthly sales series.
func (h *AnalyticsHandler) MonthlyTrends(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	data, err := h.svc.GetMonthlyTrends(c.Request.Context(), identity(c), r)
	h.respond(c, "trends", data, err)
}

// BreedPerformance returns the per-breed breakdown.
func (h *AnalyticsHandler) BreedPerformance(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	data, err := h.svc.GetBreedPerformance(c.Request.Context(), identity(c), r)
	h.respond(c, "breeds", data, err)
}

// HealthMetrics returns the monthly flock health series.
func (h *AnalyticsHandler) HealthMetrics(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	data, err := h.svc.GetHealthMetrics(c.Request.Context(), identity(c), r)
	h.respond(c, "health", data, err)
}

// CustomerRatings returns the daily rating series.
func (h *AnalyticsHandler) CustomerRatings(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	data, err := h.svc.GetCustomerRatings(c.Request.Context(), identity(c), r)
	h.respond(c, "ratings", data, err)
}

// Export writes every report to the configured spreadsheet.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	r, ok := h.dateRange(c)
	if !ok {
		return
	}
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": export.ErrExportDisabled.Error()})
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), identity(c), r)
	switch {
	case errors.Is(err, export.ErrExportDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("analytics export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "export failed"})
	default:
		c.JSON(http.StatusCreated, result)
	}
}

func (h *AnalyticsHandler) respond(c *gin.Context, report string, data interface{}, err error) {
	if err != nil {
		h.logger.Error("failed computing analytics", zap.String("report", report), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to load analytics"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *AnalyticsHandler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("invalid analytics query", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// dateRange reads startDate/endDate. A date-only endDate covers that whole day.
func (h *AnalyticsHandler) dateRange(c *gin.Context) (models.DateRange, bool) {
	r, err := ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.badRequest(c, err)
		return models.DateRange{}, false
	}
	return r, true
}

// ParseDateRange parses the query representation of a date range. Either bound may
// be omitted, which leaves the range open and disables filtering.
func ParseDateRange(start, end string) (models.DateRange, error) {
	var r models.DateRange
	var err error

	if start != "" {
		if r.Start, err = parseQueryTime(start, false); err != nil {
			return models.DateRange{}, fmt.Errorf("%w: startDate: %v", ErrInvalidRange, err)
		}
	}
	if end != "" {
		if r.End, err = parseQueryTime(end, true); err != nil {
			return models.DateRange{}, fmt.Errorf("%w: endDate: %v", ErrInvalidRange, err)
		}
	}
	if r.Bounded() && r.End.Before(r.Start) {
		return models.DateRange{}, fmt.Errorf("%w: endDate is before startDate", ErrInvalidRange)
	}
	return r, nil
}

func parseQueryTime(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC3339, got %q", value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func identity(c *gin.Context) string {
	return c.GetHeader(IdentityHeader)
}
