package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/roostery/internal/config"
	"github.com/mamadbah2/roostery/internal/repository/mongodb"
	"github.com/mamadbah2/roostery/internal/repository/sheets"
	"github.com/mamadbah2/roostery/internal/service/analytics"
	"github.com/mamadbah2/roostery/pkg/clients/records"
)

// CloseFunc releases a record source.
type CloseFunc func(ctx context.Context) error

// OpenRecordSource connects the record backend selected in cfg.
func OpenRecordSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (analytics.RecordSource, CloseFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Records.Backend {
	case config.BackendHTTP:
		logger.Info("reading records from http api", zap.String("base_url", cfg.Records.BaseURL))
		return records.NewClient(cfg.Records), func(context.Context) error { return nil }, nil
	case config.BackendMongo:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("reading records from mongodb", zap.String("db", cfg.MongoDB.DBName))
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported records backend %q", cfg.Records.Backend)
	}
}

// OpenSheets returns the spreadsheet repository, or nil when export is not configured.
func OpenSheets(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (sheets.Repository, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	repo, err := sheets.NewGoogleSheetRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
