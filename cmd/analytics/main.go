package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/roostery/internal/config"
	"github.com/mamadbah2/roostery/internal/domain/models"
	"github.com/mamadbah2/roostery/internal/repository"
	"github.com/mamadbah2/roostery/internal/server/handlers"
	"github.com/mamadbah2/roostery/internal/service/analytics"
	"github.com/mamadbah2/roostery/internal/service/export"
	"github.com/mamadbah2/roostery/pkg/logger"
)

var (
	envFile    string
	identity   string
	startDate  string
	endDate    string
	asOfDate   string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "roostery-analytics",
	Short: "Farm analytics from the command line",
	Long: `Compute the dashboard analytics (stats, monthly trends, breed performance,
flock health, customer ratings) straight from the record store and print them
as tables or JSON, or push them to the configured spreadsheet.`,
	SilenceUsage: true,
}

func reportCmd(use, short string, run func(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := handlers.ParseDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			return run(cmd.Context(), env, r, cmd.OutOrStdout())
		},
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&identity, "identity", "", "Identity used to scope records")
	rootCmd.PersistentFlags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")

	statsCmd := reportCmd("stats", "Show headline statistics", runStats)
	statsCmd.Flags().StringVar(&asOfDate, "as-of", "", "Reference date for growth rates (defaults to now)")

	rootCmd.AddCommand(
		statsCmd,
		reportCmd("trends", "Show monthly sales trends", runTrends),
		reportCmd("breeds", "Show breed performance", runBreeds),
		reportCmd("health", "Show monthly flock health", runHealth),
		reportCmd("ratings", "Show daily customer ratings", runRatings),
		reportCmd("export", "Export every report to the configured spreadsheet", runExport),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type environment struct {
	analytics *analytics.Service
	exporter  *export.Service
	close     func()
}

func openEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	source, closeSource, err := repository.OpenRecordSource(ctx, cfg, log.Named("repo.records"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record source: %w", err)
	}

	sheetsRepo, err := repository.OpenSheets(ctx, cfg.Sheets, log.Named("repo.sheets"))
	if err != nil {
		_ = closeSource(ctx)
		return nil, fmt.Errorf("failed to initialize sheets: %w", err)
	}

	svc := analytics.NewService(source, log.Named("svc.analytics"))
	return &environment{
		analytics: svc,
		exporter:  export.NewService(svc, sheetsRepo, log.Named("svc.export")),
		close: func() {
			if err := closeSource(context.Background()); err != nil {
				log.Warn("failed to close record source", zap.Error(err))
			}
			_ = log.Sync()
		},
	}, nil
}

func runStats(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error {
	// A start-only range leaves the as-of date parsed but the range open.
	ref, err := handlers.ParseDateRange(asOfDate, "")
	if err != nil {
		return fmt.Errorf("--as-of: %w", err)
	}

	stats, err := env.analytics.GetAnalyticsStats(ctx, identity, r, ref.Start)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}
	if outputJSON {
		return writeJSON(out, stats)
	}
	return renderTable(out, export.SummaryRows(stats))
}

func runTrends(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error {
	data, err := env.analytics.GetMonthlyTrends(ctx, identity, r)
	if err != nil {
		return fmt.Errorf("failed to get monthly trends: %w", err)
	}
	if outputJSON {
		return writeJSON(out, data)
	}
	return renderTable(out, export.MonthlyRows(data))
}

func runBreeds(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error {
	data, err := env.analytics.GetBreedPerformance(ctx, identity, r)
	if err != nil {
		return fmt.Errorf("failed to get breed performance: %w", err)
	}
	if outputJSON {
		return writeJSON(out, data)
	}
	return renderTable(out, export.BreedRows(data))
}

func runHealth(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error {
	data, err := env.analytics.GetHealthMetrics(ctx, identity, r)
	if err != nil {
		return fmt.Errorf("failed to get health metrics: %w", err)
	}
	if outputJSON {
		return writeJSON(out, data)
	}
	return renderTable(out, export.HealthRows(data))
}

func runRatings(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error {
	data, err := env.analytics.GetCustomerRatings(ctx, identity, r)
	if err != nil {
		return fmt.Errorf("failed to get customer ratings: %w", err)
	}
	if outputJSON {
		return writeJSON(out, data)
	}
	return renderTable(out, export.RatingRows(data))
}

func runExport(ctx context.Context, env *environment, r models.DateRange, out io.Writer) error {
	result, err := env.exporter.Export(ctx, identity, r)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if outputJSON {
		return writeJSON(out, result)
	}

	rows := [][]interface{}{{"Tab", "Rows"}}
	for _, tab := range []string{export.TabSummary, export.TabMonthly, export.TabBreeds, export.TabHealth, export.TabRatings} {
		rows = append(rows, []interface{}{tab, result.Rows[tab]})
	}
	fmt.Fprintf(out, "Export %s generated at %s\n", result.ID, result.GeneratedAt.Format("2006-01-02 15:04:05"))
	return renderTable(out, rows)
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable prints rows with the first row as header.
func renderTable(out io.Writer, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(toStrings(rows[0]))
	for _, row := range rows[1:] {
		table.Append(toStrings(row))
	}
	table.Render()
	return nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch val := v.(type) {
		case float64:
			out[i] = fmt.Sprintf("%.2f", val)
		default:
			out[i] = fmt.Sprint(val)
		}
	}
	return out
}
