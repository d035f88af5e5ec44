package analytics

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/roostery/internal/domain/models"
)

var hundred = decimal.NewFromInt(100)

// round rounds half away from zero to the given number of decimal places.
func round(value float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// percent returns part/whole*100 rounded to places, or zero when whole is zero.
func percent(part, whole decimal.Decimal, places int32) float64 {
	if whole.IsZero() {
		return 0
	}
	f, _ := part.Div(whole).Mul(hundred).Round(places).Float64()
	return f
}

// growth is the percentage change from previous to current, zero when previous is zero.
func growth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return percent(current.Sub(previous), previous, 1)
}

// amountOf returns the transaction amount, or zero when the stored value is NaN or
// infinite.
func amountOf(tx models.SalesTransaction) decimal.Decimal {
	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(tx.Amount)
}

func toFloat(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}

// parseWeight reads a rooster weight such as "2.4" or "2.4 kg". The second return
// is false for missing, non-numeric or non-positive weights.
func parseWeight(value string) (decimal.Decimal, bool) {
	str := strings.ToLower(strings.TrimSpace(value))
	str = strings.TrimSpace(strings.TrimSuffix(str, "kg"))
	if str == "" {
		return decimal.Zero, false
	}

	w, err := decimal.NewFromString(str)
	if err != nil || !w.IsPositive() {
		return decimal.Zero, false
	}
	return w, true
}
