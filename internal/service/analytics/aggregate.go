package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/roostery/internal/domain/models"
)

const (
	// NoBreed is reported as the top breed when there are no transactions.
	NoBreed = "N/A"

	profitMargin = 0.3
)

var healthPoints = map[models.HealthGrade]int64{
	models.HealthExcellent: 100,
	models.HealthGood:      75,
	models.HealthFair:      50,
	models.HealthPoor:      25,
}

// StatsInput gathers everything the stat aggregator reads.
type StatsInput struct {
	// Transactions is the range-filtered transaction set.
	Transactions []models.SalesTransaction
	// History is the full, unfiltered transaction set used for growth rates.
	History        []models.SalesTransaction
	Reviews        []models.Review
	SalesStats     models.SalesStats
	RoosterStats   models.RoosterStats
	InventoryStats models.InventoryStats
	AsOf           time.Time
}

// ComputeStats derives the headline statistics.
func ComputeStats(in StatsInput) models.AnalyticsStats {
	revenue := decimal.Zero
	paid := 0
	customers := make(map[string]struct{})
	breedCounts := make(map[string]int)
	var breedOrder []string

	for _, tx := range in.Transactions {
		if tx.IsPaid() {
			revenue = revenue.Add(amountOf(tx))
			paid++
		}
		customers[tx.CustomerName] = struct{}{}
		if _, seen := breedCounts[tx.Breed]; !seen {
			breedOrder = append(breedOrder, tx.Breed)
		}
		breedCounts[tx.Breed]++
	}

	topBreed := NoBreed
	best := 0
	for _, breed := range breedOrder {
		if breedCounts[breed] > best {
			topBreed = breed
			best = breedCounts[breed]
		}
	}

	average := 0.0
	if paid > 0 {
		average = toFloat(revenue.Div(decimal.NewFromInt(int64(paid))), 2)
	}

	g := computeGrowth(in.History, in.AsOf)

	return models.AnalyticsStats{
		TotalRevenue:       toFloat(revenue, 2),
		TotalSales:         len(in.Transactions),
		AverageSale:        average,
		MonthlyGrowth:      g.monthlyRevenue,
		YearlyGrowth:       g.yearlyRevenue,
		MonthlySalesGrowth: g.monthlySales,
		TopBreed:           topBreed,
		TotalCustomers:     len(customers),
		ActiveRoosters:     in.RoosterStats.Available,
		TotalRoosters:      in.RoosterStats.Total,
		LowStockItems:      in.InventoryStats.LowStockItems,
		PendingPayments:    in.SalesStats.PendingPayments,
		AverageRating:      averageRating(in.Reviews),
	}
}

type growthRates struct {
	monthlyRevenue float64
	yearlyRevenue  float64
	monthlySales   float64
}

func computeGrowth(history []models.SalesTransaction, asOf time.Time) growthRates {
	asOf = asOf.UTC()
	thisMonth := monthStart(asOf)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	thisYear, lastYear := asOf.Year(), asOf.Year()-1

	var (
		monthRevenue, prevMonthRevenue decimal.Decimal
		yearRevenue, prevYearRevenue   decimal.Decimal
		monthSales, prevMonthSales     int64
	)

	for _, tx := range history {
		t, err := ParseDate(tx.Date)
		if err != nil {
			continue
		}
		amount := decimal.Zero
		if tx.IsPaid() {
			amount = amountOf(tx)
		}

		switch monthStart(t) {
		case thisMonth:
			monthRevenue = monthRevenue.Add(amount)
			monthSales++
		case lastMonth:
			prevMonthRevenue = prevMonthRevenue.Add(amount)
			prevMonthSales++
		}

		switch t.Year() {
		case thisYear:
			yearRevenue = yearRevenue.Add(amount)
		case lastYear:
			prevYearRevenue = prevYearRevenue.Add(amount)
		}
	}

	return growthRates{
		monthlyRevenue: growth(monthRevenue, prevMonthRevenue),
		yearlyRevenue:  growth(yearRevenue, prevYearRevenue),
		monthlySales:   growth(decimal.NewFromInt(monthSales), decimal.NewFromInt(prevMonthSales)),
	}
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return round(float64(sum)/float64(len(reviews)), 1)
}

// MonthlyTrends buckets transactions by calendar month, oldest first. Months without
// transactions are not emitted.
func MonthlyTrends(transactions []models.SalesTransaction) []models.MonthlyData {
	type bucket struct {
		revenue   decimal.Decimal
		sales     int
		customers map[string]struct{}
	}

	buckets := make(map[time.Time]*bucket)
	for _, tx := range transactions {
		t, err := ParseDate(tx.Date)
		if err != nil {
			continue
		}
		key := monthStart(t)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{customers: make(map[string]struct{})}
			buckets[key] = b
		}
		if tx.IsPaid() {
			b.revenue = b.revenue.Add(amountOf(tx))
		}
		b.sales++
		b.customers[tx.CustomerName] = struct{}{}
	}

	out := make([]models.MonthlyData, 0, len(buckets))
	for _, month := range sortedKeys(buckets) {
		b := buckets[month]
		out = append(out, models.MonthlyData{
			Month:     month.Format(monthLayout),
			Label:     month.Format(labelLayout),
			Revenue:   toFloat(b.revenue, 2),
			Sales:     b.sales,
			Profit:    toFloat(b.revenue.Mul(decimal.NewFromFloat(profitMargin)), 2),
			Customers: len(b.customers),
		})
	}
	return out
}

// BreedPerformance groups transactions by breed, highest revenue first. Breeds with
// equal revenue keep the order in which they were first seen.
func BreedPerformance(transactions []models.SalesTransaction) []models.BreedData {
	type bucket struct {
		breed   string
		sales   int
		revenue decimal.Decimal
	}

	index := make(map[string]int)
	var buckets []*bucket
	total := decimal.Zero

	for _, tx := range transactions {
		i, ok := index[tx.Breed]
		if !ok {
			i = len(buckets)
			index[tx.Breed] = i
			buckets = append(buckets, &bucket{breed: tx.Breed})
		}
		b := buckets[i]
		b.sales++
		if tx.IsPaid() {
			amount := amountOf(tx)
			b.revenue = b.revenue.Add(amount)
			total = total.Add(amount)
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].revenue.GreaterThan(buckets[j].revenue)
	})

	out := make([]models.BreedData, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, models.BreedData{
			Breed:      b.breed,
			Sales:      b.sales,
			Revenue:    toFloat(b.revenue, 2),
			Percentage: percent(b.revenue, total, 2),
		})
	}
	return out
}

// HealthByMonth buckets roosters by the month they were added, oldest first.
func HealthByMonth(roosters []models.Rooster) []models.HealthMetrics {
	type bucket struct {
		total    int64
		points   int64
		grades   map[models.HealthGrade]int64
		deceased int64
		weight   decimal.Decimal
		weighed  int64
	}

	buckets := make(map[time.Time]*bucket)
	for _, r := range roosters {
		t, err := ParseDate(r.DateAdded)
		if err != nil {
			continue
		}
		key := monthStart(t)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{grades: make(map[models.HealthGrade]int64)}
			buckets[key] = b
		}
		b.total++
		b.points += healthPoints[r.Health]
		b.grades[r.Health]++
		if r.Status == models.RoosterDeceased {
			b.deceased++
		}
		if w, ok := parseWeight(string(r.Weight)); ok {
			b.weight = b.weight.Add(w)
			b.weighed++
		}
	}

	out := make([]models.HealthMetrics, 0, len(buckets))
	for _, month := range sortedKeys(buckets) {
		b := buckets[month]
		total := decimal.NewFromInt(b.total)

		avgWeight := 0.0
		if b.weighed > 0 {
			avgWeight = toFloat(b.weight.Div(decimal.NewFromInt(b.weighed)), 1)
		}

		out = append(out, models.HealthMetrics{
			Month:               month.Format(monthLayout),
			Label:               month.Format(labelLayout),
			OverallHealth:       toFloat(decimal.NewFromInt(b.points).Div(total), 1),
			VaccinationCoverage: percent(decimal.NewFromInt(b.grades[models.HealthExcellent]+b.grades[models.HealthGood]), total, 1),
			DiseaseIncidence:    percent(decimal.NewFromInt(b.grades[models.HealthPoor]), total, 1),
			MortalityRate:       percent(decimal.NewFromInt(b.deceased), total, 1),
			AverageWeight:       avgWeight,
			Roosters:            int(b.total),
		})
	}
	return out
}

// RatingsByDay averages review ratings per calendar day, oldest first. The customer
// and transaction identifiers of each day come from the first review seen for it.
func RatingsByDay(reviews []models.Review) []models.CustomerRating {
	type bucket struct {
		first models.Review
		sum   int
		count int
	}

	buckets := make(map[time.Time]*bucket)
	for _, r := range reviews {
		t, err := ParseDate(r.Date)
		if err != nil {
			continue
		}
		key := dayStart(t)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{first: r}
			buckets[key] = b
		}
		b.sum += r.Rating
		b.count++
	}

	out := make([]models.CustomerRating, 0, len(buckets))
	for _, day := range sortedKeys(buckets) {
		b := buckets[day]
		out = append(out, models.CustomerRating{
			Date:          day.Format(dateLayout),
			Rating:        round(float64(b.sum)/float64(b.count), 1),
			Reviews:       b.count,
			CustomerID:    b.first.CustomerID,
			TransactionID: b.first.TransactionID,
		})
	}
	return out
}

func sortedKeys[V any](m map[time.Time]V) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
