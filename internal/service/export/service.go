package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/roostery/internal/domain/models"
	repo "github.com/mamadbah2/roostery/internal/repository/sheets"
)

// ErrExportDisabled is returned when no spreadsheet has been configured.
var ErrExportDisabled = errors.New("spreadsheet export is not configured")

// Tab names written by an export.
const (
	TabSummary = "Summary"
	TabMonthly = "Monthly"
	TabBreeds  = "Breeds"
	TabHealth  = "Health"
	TabRatings = "Ratings"
)

// AnalyticsProvider is the subset of the analytics service the export reads.
type AnalyticsProvider interface {
	GetAnalyticsStats(ctx context.Context, identity string, r models.DateRange, asOf time.Time) (models.AnalyticsStats, error)
	GetMonthlyTrends(ctx context.Context, identity string, r models.DateRange) ([]models.MonthlyData, error)
	GetBreedPerformance(ctx context.Context, identity string, r models.DateRange) ([]models.BreedData, error)
	GetHealthMetrics(ctx context.Context, identity string, r models.DateRange) ([]models.HealthMetrics, error)
	GetCustomerRatings(ctx context.Context, identity string, r models.DateRange) ([]models.CustomerRating, error)
}

// Service writes analytics tables to a spreadsheet, one tab per report.
type Service struct {
	analytics AnalyticsProvider
	sheets    repo.Repository
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the export service. A nil sheets repository disables export.
func NewService(analytics AnalyticsProvider, sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{analytics: analytics, sheets: sheets, logger: logger, now: time.Now}
}

// Enabled reports whether a spreadsheet is available.
func (s *Service) Enabled() bool {
	return s != nil && s.sheets != nil
}

// Export computes every report for the range and overwrites the matching tabs.
func (s *Service) Export(ctx context.Context, identity string, r models.DateRange) (models.ExportResult, error) {
	if !s.Enabled() {
		return models.ExportResult{}, ErrExportDisabled
	}

	generatedAt := s.now().UTC()
	tables, err := s.buildTables(ctx, identity, r, generatedAt)
	if err != nil {
		return models.ExportResult{}, err
	}

	result := models.ExportResult{
		ID:          uuid.NewString(),
		GeneratedAt: generatedAt,
		Rows:        make(map[string]int, len(tables)),
	}
	if r.Bounded() {
		start, end := r.Start, r.End
		result.Start, result.End = &start, &end
	}

	for _, tbl := range tables {
		if err := s.sheets.ClearRange(ctx, tbl.tab+"!A:Z"); err != nil {
			return models.ExportResult{}, fmt.Errorf("clear %s tab: %w", tbl.tab, err)
		}
		if err := s.sheets.WriteRows(ctx, tbl.tab+"!A1", tbl.rows); err != nil {
			return models.ExportResult{}, fmt.Errorf("write %s tab: %w", tbl.tab, err)
		}
		result.Rows[tbl.tab] = len(tbl.rows) - 1
	}

	s.logger.Info("analytics exported",
		zap.String("export_id", result.ID),
		zap.String("identity", identity),
		zap.Any("rows", result.Rows))
	return result, nil
}

type table struct {
	tab  string
	rows [][]interface{}
}

func (s *Service) buildTables(ctx context.Context, identity string, r models.DateRange, asOf time.Time) ([]table, error) {
	stats, err := s.analytics.GetAnalyticsStats(ctx, identity, r, asOf)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	monthly, err := s.analytics.GetMonthlyTrends(ctx, identity, r)
	if err != nil {
		return nil, fmt.Errorf("compute monthly trends: %w", err)
	}
	breeds, err := s.analytics.GetBreedPerformance(ctx, identity, r)
	if err != nil {
		return nil, fmt.Errorf("compute breed performance: %w", err)
	}
	health, err := s.analytics.GetHealthMetrics(ctx, identity, r)
	if err != nil {
		return nil, fmt.Errorf("compute health metrics: %w", err)
	}
	ratings, err := s.analytics.GetCustomerRatings(ctx, identity, r)
	if err != nil {
		return nil, fmt.Errorf("compute customer ratings: %w", err)
	}

	return []table{
		{TabSummary, SummaryRows(stats)},
		{TabMonthly, MonthlyRows(monthly)},
		{TabBreeds, BreedRows(breeds)},
		{TabHealth, HealthRows(health)},
		{TabRatings, RatingRows(ratings)},
	}, nil
}
