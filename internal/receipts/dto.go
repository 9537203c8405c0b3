package receipts

import "github.com/wareflow/wareflow/internal/upstream"

// receiptDTO mirrors the backend's receipt payload, including every legacy
// field-name variant the API has accumulated. Normalization into Receipt
// happens exactly once, here, so views never have to try alternate spellings.
type receiptDTO struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	Status       string  `json:"status"`
	StoreID      int64   `json:"storeId"`
	StoreName    string  `json:"storeName"`
	SupplierID   int64   `json:"supplierId"`
	SupplierName string  `json:"supplierName"`
	ImportsDate  string  `json:"importsDate"`
	ExportsDate  string  `json:"exportsDate"`
	Note         string  `json:"note"`
	Description  string  `json:"description"`
	TotalValue   float64 `json:"totalValue"`

	AttachmentImages []string  `json:"attachmentImages"`
	Items            []itemDTO `json:"items"`

	CreatedBy     string `json:"createdBy"`
	CreatedByName string `json:"createdByName"`
	CreatedByRole string `json:"createdByRole"`
	CreatedAt     string `json:"createdAt"`
	CreatedDate   string `json:"createdDate"`

	ApprovedBy     string `json:"approvedBy"`
	ApprovedByName string `json:"approvedByName"`
	ApprovedByRole string `json:"approvedByRole"`
	ApprovedAt     string `json:"approvedAt"`
	ApprovedDate   string `json:"approvedDate"`

	RejectedBy     string `json:"rejectedBy"`
	RejectedByName string `json:"rejectedByName"`
	RejectedByRole string `json:"rejectedByRole"`
	RejectedAt     string `json:"rejectedAt"`
	RejectReason   string `json:"rejectReason"`

	ImportedBy     string `json:"importedBy"`
	ImportedByName string `json:"importedByName"`
	ImportedAt     string `json:"importedAt"`
	ExportedBy     string `json:"exportedBy"`
	ExportedByName string `json:"exportedByName"`
	ExportedAt     string `json:"exportedAt"`
}

type itemDTO struct {
	ID              int64   `json:"id"`
	ImportDetailID  int64   `json:"importDetailId"`
	ExportDetailID  int64   `json:"exportDetailId"`
	ProductID       int64   `json:"productId"`
	ProductCode     string  `json:"productCode"`
	ProductName     string  `json:"productName"`
	Unit            string  `json:"unit"`
	UnitName        string  `json:"unitName"`
	StoreID         int64   `json:"storeId"`
	StoreName       string  `json:"storeName"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

func (d receiptDTO) toDomain(kind Kind) Receipt {
	r := Receipt{
		ID:           d.ID,
		Code:         d.Code,
		Kind:         kind,
		Status:       Status(d.Status),
		StoreID:      d.StoreID,
		StoreName:    d.StoreName,
		SupplierID:   d.SupplierID,
		SupplierName: d.SupplierName,
		Date:         upstream.FirstNonEmpty(d.ImportsDate, d.ExportsDate),
		Note:         d.Note,
		Description:  d.Description,
		TotalValue:   d.TotalValue,
		Attachments:  d.AttachmentImages,
		Created: upstream.NewAuditRecord(d.CreatedBy, d.CreatedByName, d.CreatedByRole,
			upstream.FirstNonEmpty(d.CreatedAt, d.CreatedDate)),
		Approved: upstream.NewAuditRecord(d.ApprovedBy, d.ApprovedByName, d.ApprovedByRole,
			upstream.FirstNonEmpty(d.ApprovedAt, d.ApprovedDate)),
		Rejected: upstream.NewAuditRecord(d.RejectedBy, d.RejectedByName, d.RejectedByRole, d.RejectedAt),
		Completed: upstream.NewAuditRecord(
			upstream.FirstNonEmpty(d.ImportedBy, d.ExportedBy),
			upstream.FirstNonEmpty(d.ImportedByName, d.ExportedByName),
			"",
			upstream.FirstNonEmpty(d.ImportedAt, d.ExportedAt)),
	}
	if len(d.Items) > 0 {
		r.Items = make([]Item, 0, len(d.Items))
		for _, it := range d.Items {
			r.Items = append(r.Items, Item{
				ID:              firstNonZero(it.ID, it.ImportDetailID, it.ExportDetailID),
				ProductID:       it.ProductID,
				ProductCode:     it.ProductCode,
				ProductName:     it.ProductName,
				Unit:            upstream.FirstNonEmpty(it.UnitName, it.Unit),
				StoreID:         it.StoreID,
				StoreName:       it.StoreName,
				Quantity:        it.Quantity,
				UnitPrice:       it.UnitPrice,
				DiscountPercent: it.DiscountPercent,
			})
		}
	}
	return r
}

func firstNonZero(ids ...int64) int64 {
	for _, id := range ids {
		if id != 0 {
			return id
		}
	}
	return 0
}

func toDomainPage(p upstream.Page[receiptDTO], kind Kind) upstream.Page[Receipt] {
	out := upstream.Page[Receipt]{
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
	}
	out.Content = make([]Receipt, 0, len(p.Content))
	for _, d := range p.Content {
		out.Content = append(out.Content, d.toDomain(kind))
	}
	return out
}
