package receipts

import (
	"net/url"
	"strconv"
	"time"

	"github.com/wareflow/wareflow/internal/format"
	"github.com/wareflow/wareflow/internal/listview"
)

// StatusAll is the filter value meaning "no status constraint".
const StatusAll = "ALL"

// Criteria is the one immutable filter record for receipt searches. Absent
// fields impose no constraint; present fields combine with AND semantics.
// The zero value is the cleared-filters state.
type Criteria struct {
	Code       string
	Status     string
	From       time.Time
	To         time.Time
	StoreID    int64
	SupplierID int64
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
	if c.SupplierID != 0 {
		q.Set("supplierId", strconv.FormatInt(c.SupplierID, 10))
	}
	return q
}

// Matches applies the criteria to one already-loaded receipt. This is the
// page-local filter path; it only ever sees the current page's content.
func (c Criteria) Matches(r Receipt) bool {
	if !listview.ContainsFold(r.Code, c.Code) {
		return false
	}
	if c.Status != "" && c.Status != StatusAll && string(r.Status) != c.Status {
		return false
	}
	if c.StoreID != 0 && r.StoreID != c.StoreID {
		return false
	}
	if c.SupplierID != 0 && r.SupplierID != c.SupplierID {
		return false
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		ts, ok := format.ParseTime(r.Date)
		if !ok {
			return false
		}
		if !listview.InDayRange(ts, c.From, c.To) {
			return false
		}
	}
	return true
}

// Filter returns the receipts matching c, preserving order, input untouched.
func Filter(list []Receipt, c Criteria) []Receipt {
	out := make([]Receipt, 0, len(list))
	for _, r := range list {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Sort fields understood by the receipt tables.
const (
	SortByDate  = "date"
	SortByValue = "value"
)

// Sort stable-sorts a copy of list page-locally. Unknown fields return the
// copy unsorted.
func Sort(list []Receipt, field string, dir listview.SortDirection) []Receipt {
	switch field {
	case SortByValue:
		return listview.SortBy(list, listview.NumericLess(func(r Receipt) float64 { return r.TotalValue }), dir)
	case SortByDate:
		return listview.SortBy(list, listview.DateLess(func(r Receipt) string { return r.Date }), dir)
	default:
		return listview.SortBy(list, nil, dir)
	}
}
