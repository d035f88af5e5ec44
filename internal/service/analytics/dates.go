package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/roostery/internal/domain/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
	labelLayout = "Jan 2006"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseDate reads the date encodings found in stored records. Values without a zone
// are taken as UTC; the result is always in UTC.
func ParseDate(value string) (time.Time, error) {
	str := strings.TrimSpace(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// filterByDate keeps the items whose date lies inside r. An open range returns items
// untouched; with a bounded range, items with unparseable dates are dropped.
func filterByDate[T any](items []T, dateOf func(T) string, r models.DateRange) []T {
	if !r.Bounded() {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		t, err := ParseDate(dateOf(item))
		if err != nil {
			continue
		}
		if r.Contains(t) {
			out = append(out, item)
		}
	}
	return out
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func transactionDate(t models.SalesTransaction) string { return t.Date }
func roosterDate(r models.Rooster) string              { return r.DateAdded }
func reviewDate(r models.Review) string                { return r.Date }
