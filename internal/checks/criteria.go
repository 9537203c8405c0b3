package checks

import (
	"net/url"
	"strconv"
	"time"

	"github.com/wareflow/wareflow/internal/format"
	"github.com/wareflow/wareflow/internal/listview"
)

// StatusAll is the filter value meaning "no status constraint".
const StatusAll = "ALL"

// Criteria is the immutable filter record for stocktake searches. The zero
// value is the cleared-filters state.
type Criteria struct {
	Code    string
	Status  string
	From    time.Time
	To      time.Time
	StoreID int64
}

// Values encodes the criteria as backend search query parameters.
func (c Criteria) Values() url.Values {
	q := url.Values{}
	if c.Code != "" {
		q.Set("code", c.Code)
	}
	if c.Status != "" && c.Status != StatusAll {
		q.Set("status", c.Status)
	}
	if !c.From.IsZero() {
		q.Set("from", c.From.Format("2006-01-02"))
	}
	if !c.To.IsZero() {
		q.Set("to", c.To.Format("2006-01-02"))
	}
	if c.StoreID != 0 {
		q.Set("storeId", strconv.FormatInt(c.StoreID, 10))
	}
	return q
}

// Matches applies the criteria to one already-loaded check, page-locally.
func (c Criteria) Matches(chk Check) bool {
	if !listview.ContainsFold(chk.Code, c.Code) {
		return false
	}
	if c.Status != "" && c.Status != StatusAll && string(chk.Status) != c.Status {
		return false
	}
	if c.StoreID != 0 && chk.StoreID != c.StoreID {
		return false
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		ts, ok := format.ParseTime(chk.CheckDate)
		if !ok {
			return false
		}
		if !listview.InDayRange(ts, c.From, c.To) {
			return false
		}
	}
	return true
}

// Filter returns the checks matching c, preserving order, input untouched.
func Filter(list []Check, c Criteria) []Check {
	out := make([]Check, 0, len(list))
	for _, chk := range list {
		if c.Matches(chk) {
			out = append(out, chk)
		}
	}
	return out
}

// Sort fields understood by the stocktake table.
const (
	SortByDate       = "date"
	SortByDifference = "difference"
)

// Sort stable-sorts a copy of list page-locally.
func Sort(list []Check, field string, dir listview.SortDirection) []Check {
	switch field {
	case SortByDifference:
		return listview.SortBy(list, listview.NumericLess(func(c Check) float64 { return c.TotalDifference }), dir)
	case SortByDate:
		return listview.SortBy(list, listview.DateLess(func(c Check) string { return c.CheckDate }), dir)
	default:
		return listview.SortBy(list, nil, dir)
	}
}
