package export

import "github.com/mamadbah2/roostery/internal/domain/models"

// SummaryRows renders the headline statistics as metric/value pairs.
func SummaryRows(s models.AnalyticsStats) [][]interface{} {
	return [][]interface{}{
		{"Metric", "Value"},
		{"Total revenue", s.TotalRevenue},
		{"Total sales", s.TotalSales},
		{"Average sale", s.AverageSale},
		{"Monthly growth %", s.MonthlyGrowth},
		{"Yearly growth %", s.YearlyGrowth},
		{"Monthly sales growth %", s.MonthlySalesGrowth},
		{"Top breed", s.TopBreed},
		{"Total customers", s.TotalCustomers},
		{"Active roosters", s.ActiveRoosters},
		{"Total roosters", s.TotalRoosters},
		{"Low stock items", s.LowStockItems},
		{"Pending payments", s.PendingPayments},
		{"Average rating", s.AverageRating},
	}
}

// MonthlyRows renders the monthly trend table.
func MonthlyRows(data []models.MonthlyData) [][]interface{} {
	rows := [][]interface{}{{"Month", "Revenue", "Sales", "Profit", "Customers"}}
	for _, m := range data {
		rows = append(rows, []interface{}{m.Label, m.Revenue, m.Sales, m.Profit, m.Customers})
	}
	return rows
}

// BreedRows renders the breed performance table.
func BreedRows(data []models.BreedData) [][]interface{} {
	rows := [][]interface{}{{"Breed", "Sales", "Revenue", "Share %"}}
	for _, b := range data {
		rows = append(rows, []interface{}{b.Breed, b.Sales, b.Revenue, b.Percentage})
	}
	return rows
}

// HealthRows renders the monthly health table.
func HealthRows(data []models.HealthMetrics) [][]interface{} {
	rows := [][]interface{}{{"Month", "Roosters", "Overall health", "Vaccination %", "Disease %", "Mortality %", "Avg weight (kg)"}}
	for _, h := range data {
		rows = append(rows, []interface{}{h.Label, h.Roosters, h.OverallHealth, h.VaccinationCoverage, h.DiseaseIncidence, h.MortalityRate, h.AverageWeight})
	}
	return rows
}

// RatingRows renders the daily rating table.
func RatingRows(data []models.CustomerRating) [][]interface{} {
	rows := [][]interface{}{{"Date", "Rating", "Reviews"}}
	for _, r := range data {
		rows = append(rows, []interface{}{r.Date, r.Rating, r.Reviews})
	}
	return rows
}
