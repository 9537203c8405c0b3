// Package format converts raw backend values into display strings for the
// dashboard. All prices are rendered with Vietnamese digit grouping and all
// timestamps with the dd/mm/yyyy convention the UI uses.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.Vietnamese)

// FormatPrice renders a monetary amount with vi-VN grouping ("1.234.567").
// Fractions are dropped; amounts are whole VND.
func FormatPrice(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0"
	}
	return pricePrinter.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(0)))
}

// acceptedLayouts covers the timestamp shapes the backend emits.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an ISO-8601-ish timestamp. The zero time and false are
// returned when nothing matches.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders an ISO timestamp as "02/01/2006 15:04". Empty input
// renders as "-", unparsable input is echoed unchanged so the user still sees
// whatever the backend sent.
func FormatDateTime(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	t, ok := ParseTime(value)
	if !ok {
		return value
	}
	return t.Format("02/01/2006 15:04")
}

// FormatDateTimeWithSeconds renders "15:04:05 02/01/2006", the shape used on
// audit trails. Empty input renders empty.
func FormatDateTimeWithSeconds(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := ParseTime(value)
	if !ok {
		return value
	}
	return t.Format("15:04:05 02/01/2006")
}

// MergeDateTime combines a calendar date with a wall-clock time into one
// "2006-01-02T15:04:05" timestamp. An empty clock means midnight; an empty
// or unparsable date returns "".
func MergeDateTime(date, clock string) string {
	d, ok := ParseTime(date)
	if !ok {
		return ""
	}
	clock = strings.TrimSpace(clock)
	if clock != "" {
		for _, layout := range []string{"15:04:05", "15:04"} {
			if t, err := time.Parse(layout, clock); err == nil {
				d = time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, d.Location())
				break
			}
		}
	}
	return d.Format("2006-01-02T15:04:05")
}

// ParseNumber reads user-entered numbers tolerantly. Vietnamese thousand
// dots ("21.990.000"), comma grouping ("21,990,000") and decimal commas
// ("123,45") are all accepted. Garbage parses as 0.
func ParseNumber(input string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, input)
	if cleaned == "" {
		return 0
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")
	switch {
	case hasDot && !hasComma:
		// Dots are thousand separators in vi format.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case hasComma:
		lastComma := strings.LastIndex(cleaned, ",")
		afterComma := cleaned[lastComma+1:]
		if len(afterComma) == 3 && strings.Count(cleaned, ",") >= 1 && !strings.Contains(afterComma, ".") {
			// Comma grouping ("1,234,567").
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			// Decimal comma ("123,45").
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// BuildImageURL resolves an attachment path against the asset base URL.
// Absolute URLs pass through untouched; empty input stays empty.
func BuildImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(base, "/") + path
}
