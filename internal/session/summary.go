package session

import (
	"math"
	"sort"
	"time"

	"pillar2/internal/models"
	"pillar2/internal/utils"
)

// Summarize counts records, positives and tests per date. Positivity is rounded to two
// decimal places and is zero for an empty set.
func Summarize(records []models.TestingRecord) models.Summary {
	summary := models.Summary{
		Total:  len(records),
		ByDate: []models.DateCount{},
	}

	perDate := make(map[time.Time]int)
	for _, record := range records {
		if record.TestResult == models.TestResultPositive {
			summary.Positive++
		}
		perDate[utils.Day(record.Date)]++
	}

	if summary.Total > 0 {
		percentage := float64(summary.Positive) / float64(summary.Total) * 100
		summary.Percentage = math.Round(percentage*100) / 100
	}

	for date, count := range perDate {
		summary.ByDate = append(summary.ByDate, models.DateCount{Date: date, Count: count})
	}
	sort.Slice(summary.ByDate, func(i, j int) bool {
		return summary.ByDate[i].Date.Before(summary.ByDate[j].Date)
	})

	return summary
}
