package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatUKDate      DateFormat = "02/01/2006"
	FormatISO8601Date DateFormat = "2006-01-02"
)

var ukDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, days int) time.Time {
	return Day(t).AddDate(0, 0, days)
}

func FormatDate(t time.Time) string {
	return t.Format(string(FormatUKDate))
}

// ParseDate accepts DD/MM/YYYY (single digit day or month allowed) and ISO dates.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if matches := ukDatePattern.FindStringSubmatch(input); matches != nil {
		day, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		year, _ := strconv.Atoi(matches[3])

		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("invalid date %q", input)
		}

		parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if parsed.Day() != day {
			return time.Time{}, fmt.Errorf("invalid date %q", input)
		}
		return parsed, nil
	}

	if parsed, err := time.Parse(string(FormatISO8601Date), input); err == nil {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("unsupported date format %q", input)
}
