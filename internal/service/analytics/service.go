package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/roostery/internal/domain/models"
)

// RecordSource is the read side of the farm record store. The identity is passed
// through untouched; sources use it for scoping.
type RecordSource interface {
	SalesTransactions(ctx context.Context, identity string) ([]models.SalesTransaction, error)
	SalesStats(ctx context.Context, identity string) (models.SalesStats, error)
	Roosters(ctx context.Context, identity string) ([]models.Rooster, error)
	RoosterStats(ctx context.Context, identity string) (models.RoosterStats, error)
	InventoryStats(ctx context.Context, identity string) (models.InventoryStats, error)
	Reviews(ctx context.Context, identity string) ([]models.Review, error)
}

// Service computes dashboard analytics from the record store. It holds no state
// between calls; every call refetches its source collections.
type Service struct {
	source RecordSource
	logger *zap.Logger
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the clock used when no reference time is supplied.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a new analytics service instance.
func NewService(source RecordSource, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{source: source, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAnalyticsStats computes headline statistics for the range. Growth rates compare
// the month and year containing asOf against the preceding ones over the full
// history; a zero asOf means the service clock.
func (s *Service) GetAnalyticsStats(ctx context.Context, identity string, r models.DateRange, asOf time.Time) (models.AnalyticsStats, error) {
	if asOf.IsZero() {
		asOf = s.now()
	}

	var in StatsInput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.SalesStats, err = s.source.SalesStats(gctx, identity)
		return wrap("load sales stats", err)
	})
	g.Go(func() (err error) {
		in.RoosterStats, err = s.source.RoosterStats(gctx, identity)
		return wrap("load rooster stats", err)
	})
	g.Go(func() (err error) {
		in.InventoryStats, err = s.source.InventoryStats(gctx, identity)
		return wrap("load inventory stats", err)
	})
	g.Go(func() (err error) {
		in.History, err = s.source.SalesTransactions(gctx, identity)
		return wrap("load sales transactions", err)
	})
	g.Go(func() (err error) {
		in.Reviews, err = s.source.Reviews(gctx, identity)
		return wrap("load reviews", err)
	})
	if err := g.Wait(); err != nil {
		return models.AnalyticsStats{}, err
	}

	in.Transactions = filterByDate(in.History, transactionDate, r)
	in.Reviews = filterByDate(in.Reviews, reviewDate, r)
	in.AsOf = asOf

	stats := ComputeStats(in)
	s.logger.Debug("analytics stats computed",
		zap.String("identity", identity),
		zap.Int("transactions", len(in.Transactions)),
		zap.Int("history", len(in.History)),
		zap.Time("as_of", asOf))
	return stats, nil
}

// GetMonthlyTrends returns revenue, sales, profit and customers per month.
func (s *Service) GetMonthlyTrends(ctx context.Context, identity string, r models.DateRange) ([]models.MonthlyData, error) {
	txs, err := s.source.SalesTransactions(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("load sales transactions: %w", err)
	}
	return MonthlyTrends(filterByDate(txs, transactionDate, r)), nil
}

// GetBreedPerformance returns per-breed sales and revenue share.
func (s *Service) GetBreedPerformance(ctx context.Context, identity string, r models.DateRange) ([]models.BreedData, error) {
	txs, err := s.source.SalesTransactions(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("load sales transactions: %w", err)
	}
	return BreedPerformance(filterByDate(txs, transactionDate, r)), nil
}

// GetHealthMetrics returns flock health indicators per month of arrival.
func (s *Service) GetHealthMetrics(ctx context.Context, identity string, r models.DateRange) ([]models.HealthMetrics, error) {
	roosters, err := s.source.Roosters(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("load roosters: %w", err)
	}
	return HealthByMonth(filterByDate(roosters, roosterDate, r)), nil
}

// GetCustomerRatings returns the daily average review rating.
func (s *Service) GetCustomerRatings(ctx context.Context, identity string, r models.DateRange) ([]models.CustomerRating, error) {
	reviews, err := s.source.Reviews(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	return RatingsByDay(filterByDate(reviews, reviewDate, r)), nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
