// Package checks implements the inventory-check screens' data layer:
// paged stocktake search, difference recomputation, and the approval
// workflow over the backend's inventory-check endpoints.
package checks

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wareflow/wareflow/internal/platform/httpx"
	"github.com/wareflow/wareflow/internal/upstream"
)

// Status enumerates stocktake lifecycle states. Wire literals.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Item is one counted product line. Difference and TotalValue are always
// recomputed here from the raw counts; backend copies of those fields are
// ignored so a stale snapshot can never show an inconsistent row.
type Item struct {
	ID                 int64   `json:"id,omitempty"`
	ProductID          int64   `json:"productId"`
	ProductCode        string  `json:"productCode,omitempty"`
	ProductName        string  `json:"productName,omitempty"`
	Unit               string  `json:"unit,omitempty"`
	SystemQuantity     float64 `json:"systemQuantity"`
	ActualQuantity     float64 `json:"actualQuantity"`
	DifferenceQuantity float64 `json:"differenceQuantity"`
	UnitPrice          float64 `json:"unitPrice"`
	TotalValue         float64 `json:"totalValue"`
	Note               string  `json:"note,omitempty"`
}

// Check is the normalized stocktake shown on list and detail screens.
type Check struct {
	ID              int64                 `json:"id"`
	Code            string                `json:"code"`
	Status          Status                `json:"status"`
	StoreID         int64                 `json:"storeId"`
	StoreName       string                `json:"storeName,omitempty"`
	CheckDate       string                `json:"checkDate"`
	Note            string                `json:"note,omitempty"`
	TotalDifference float64               `json:"totalDifference"`
	Items           []Item                `json:"items,omitempty"`
	Created         *upstream.AuditRecord `json:"created,omitempty"`
	Approved        *upstream.AuditRecord `json:"approved,omitempty"`
	Rejected        *upstream.AuditRecord `json:"rejected,omitempty"`
	Completed       *upstream.AuditRecord `json:"completed,omitempty"`
}

// Difference computes actual minus system count.
func Difference(actual, system float64) float64 {
	v, _ := decimal.NewFromFloat(actual).Sub(decimal.NewFromFloat(system)).Float64()
	return v
}

// LineValue prices a count difference. Negative differences yield negative
// values, which is exactly what the shrinkage column shows.
func LineValue(difference, unitPrice float64) float64 {
	v, _ := decimal.NewFromFloat(difference).Mul(decimal.NewFromFloat(unitPrice)).Round(0).Float64()
	return v
}

// Recompute fills DifferenceQuantity and TotalValue on every line and
// returns the summed difference value.
func Recompute(items []Item) float64 {
	sum := decimal.Zero
	for i := range items {
		items[i].DifferenceQuantity = Difference(items[i].ActualQuantity, items[i].SystemQuantity)
		items[i].TotalValue = LineValue(items[i].DifferenceQuantity, items[i].UnitPrice)
		sum = sum.Add(decimal.NewFromFloat(items[i].TotalValue))
	}
	v, _ := sum.Float64()
	return v
}

// Domain errors mirror the receipt workflow's taxonomy.
var (
	ErrPermissionDenied  = fmt.Errorf("%w: không có quyền thực hiện thao tác này", httpx.ErrForbidden)
	ErrInvalidTransition = fmt.Errorf("%w: trạng thái phiếu kiểm không cho phép thao tác này", httpx.ErrConflict)
	ErrReasonRequired    = fmt.Errorf("%w: cần nhập lý do từ chối", httpx.ErrValidation)
)
