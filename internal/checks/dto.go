package checks

import (
	"strings"

	"github.com/wareflow/wareflow/internal/format"
	"github.com/wareflow/wareflow/internal/upstream"
)

// checkDTO mirrors the backend's inventory-check payload with its legacy
// field spellings. Normalization into Check happens once, here.
type checkDTO struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"`
	Status    string  `json:"status"`
	StoreID   int64   `json:"storeId"`
	StoreName string  `json:"storeName"`
	CheckDate string  `json:"checkDate"`
	CheckTime string  `json:"checkTime"`
	Note      string  `json:"note"`
	TotalDiff float64 `json:"totalDifferenceValue"`

	Items []checkItemDTO `json:"items"`

	CreatedBy     string `json:"createdBy"`
	CreatedByName string `json:"createdByName"`
	CreatedByRole string `json:"createdByRole"`
	CreatedAt     string `json:"createdAt"`
	CreatedDate   string `json:"createdDate"`

	ApprovedBy     string `json:"approvedBy"`
	ApprovedByName string `json:"approvedByName"`
	ApprovedAt     string `json:"approvedAt"`

	RejectedBy   string `json:"rejectedBy"`
	RejectedAt   string `json:"rejectedAt"`
	RejectReason string `json:"rejectReason"`

	CompletedBy string `json:"completedBy"`
	CompletedAt string `json:"completedAt"`
}

type checkItemDTO struct {
	ID            int64   `json:"id"`
	CheckDetailID int64   `json:"checkDetailId"`
	ProductID     int64   `json:"productId"`
	ProductCode   string  `json:"productCode"`
	ProductName   string  `json:"productName"`
	Unit          string  `json:"unit"`
	UnitName      string  `json:"unitName"`
	SystemQty     float64 `json:"systemQuantity"`
	ActualQty     float64 `json:"actualQuantity"`
	UnitPrice     float64 `json:"unitPrice"`
	Note          string  `json:"note"`
}

func (d checkDTO) toDomain() Check {
	c := Check{
		ID:        d.ID,
		Code:      d.Code,
		Status:    Status(d.Status),
		StoreID:   d.StoreID,
		StoreName: d.StoreName,
		CheckDate: mergeCheckDate(d.CheckDate, d.CheckTime),
		Note:      d.Note,
		Created: upstream.NewAuditRecord(d.CreatedBy, d.CreatedByName, d.CreatedByRole,
			upstream.FirstNonEmpty(d.CreatedAt, d.CreatedDate)),
		Approved:  upstream.NewAuditRecord(d.ApprovedBy, d.ApprovedByName, "", d.ApprovedAt),
		Rejected:  upstream.NewAuditRecord(d.RejectedBy, "", "", d.RejectedAt),
		Completed: upstream.NewAuditRecord(d.CompletedBy, "", "", d.CompletedAt),
	}
	if len(d.Items) > 0 {
		c.Items = make([]Item, 0, len(d.Items))
		for _, it := range d.Items {
			c.Items = append(c.Items, Item{
				ID:             firstNonZero(it.ID, it.CheckDetailID),
				ProductID:      it.ProductID,
				ProductCode:    it.ProductCode,
				ProductName:    it.ProductName,
				Unit:           upstream.FirstNonEmpty(it.UnitName, it.Unit),
				SystemQuantity: it.SystemQty,
				ActualQuantity: it.ActualQty,
				UnitPrice:      it.UnitPrice,
				Note:           it.Note,
			})
		}
	}
	// Difference columns come from the raw counts, never the snapshot.
	c.TotalDifference = Recompute(c.Items)
	return c
}

// mergeCheckDate combines the legacy split date and time fields. A date
// already carrying a time component wins over the separate time field.
func mergeCheckDate(date, clock string) string {
	if clock == "" || strings.Contains(date, "T") {
		return date
	}
	if merged := format.MergeDateTime(date, clock); merged != "" {
		return merged
	}
	return date
}

func firstNonZero(ids ...int64) int64 {
	for _, id := range ids {
		if id != 0 {
			return id
		}
	}
	return 0
}

func toDomainPage(p upstream.Page[checkDTO]) upstream.Page[Check] {
	out := upstream.Page[Check]{
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
	}
	out.Content = make([]Check, 0, len(p.Content))
	for _, d := range p.Content {
		out.Content = append(out.Content, d.toDomain())
	}
	return out
}
