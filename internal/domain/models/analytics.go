package models

import "time"

// DateRange is an inclusive [Start, End] window. A zero bound leaves the range open,
// in which case no filtering is applied.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounded reports whether both bounds are set.
func (r DateRange) Bounded() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// AnalyticsStats is the dashboard headline snapshot.
type AnalyticsStats struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalSales         int     `json:"totalSales"`
	AverageSale        float64 `json:"averageSale"`
	MonthlyGrowth      float64 `json:"monthlyGrowth"`
	YearlyGrowth       float64 `json:"yearlyGrowth"`
	MonthlySalesGrowth float64 `json:"monthlySalesGrowth"`
	TopBreed           string  `json:"topBreed"`
	TotalCustomers     int     `json:"totalCustomers"`
	ActiveRoosters     int     `json:"activeRoosters"`
	TotalRoosters      int     `json:"totalRoosters"`
	LowStockItems      int     `json:"lowStockItems"`
	PendingPayments    float64 `json:"pendingPayments"`
	AverageRating      float64 `json:"averageRating"`
}

// MonthlyData is one calendar month of sales activity.
type MonthlyData struct {
	Month     string  `json:"month"` // 2006-01
	Label     string  `json:"label"` // Jan 2006
	Revenue   float64 `json:"revenue"`
	Sales     int     `json:"sales"`
	Profit    float64 `json:"profit"`
	Customers int     `json:"customers"`
}

// BreedData is the sales performance of a single breed.
type BreedData struct {
	Breed      string  `json:"breed"`
	Sales      int     `json:"sales"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// HealthMetrics describes the roosters added during one calendar month.
type HealthMetrics struct {
	Month               string  `json:"month"`
	Label               string  `json:"label"`
	OverallHealth       float64 `json:"overallHealth"`
	VaccinationCoverage float64 `json:"vaccinationCoverage"`
	DiseaseIncidence    float64 `json:"diseaseIncidence"`
	MortalityRate       float64 `json:"mortalityRate"`
	AverageWeight       float64 `json:"averageWeight"`
	Roosters            int     `json:"roosters"`
}

// CustomerRating is the mean review rating for a single day.
type CustomerRating struct {
	Date          string  `json:"date"` // 2006-01-02
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	CustomerID    string  `json:"customerId,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
}
