// Package receipts implements the import/export receipt screens' data
// layer: paged search, page-local sort/filter, and the permission-gated
// approval workflow over the backend's receipt endpoints.
package receipts

import (
	"fmt"

	"github.com/wareflow/wareflow/internal/platform/httpx"
	"github.com/wareflow/wareflow/internal/rbac"
	"github.com/wareflow/wareflow/internal/upstream"
)

// Kind identifies one backend receipt collection. The supplier-facing
// kinds go through manager approval; internal transfers and staff receipts
// are confirmed straight from PENDING.
type Kind string

const (
	// KindImport is a goods receipt from a supplier.
	KindImport Kind = "IMPORT"
	// KindExport is a goods issue to a customer or store.
	KindExport Kind = "EXPORT"
	// KindInternalImport is a goods receipt from another store.
	KindInternalImport Kind = "INTERNAL_IMPORT"
	// KindInternalExport is a goods issue to another store.
	KindInternalExport Kind = "INTERNAL_EXPORT"
	// KindStaffImport is a goods receipt handled by an employee.
	KindStaffImport Kind = "STAFF_IMPORT"
	// KindStaffExport is a goods issue handled by an employee.
	KindStaffExport Kind = "STAFF_EXPORT"
)

// outbound reports whether k issues stock rather than receiving it.
func (k Kind) outbound() bool {
	return k == KindExport || k == KindInternalExport || k == KindStaffExport
}

// hasApproval reports whether k's lifecycle includes the manager approval
// stage. Internal and staff receipts skip it.
func (k Kind) hasApproval() bool { return k == KindImport || k == KindExport }

// paged reports whether the backend serves k through a paged /search
// endpoint. Internal and staff collections are plain lists.
func (k Kind) paged() bool { return k == KindImport || k == KindExport }

// confirmFrom is the status a receipt must hold before confirm.
func (k Kind) confirmFrom() Status {
	if k.hasApproval() {
		return StatusApproved
	}
	return StatusPending
}

// basePath is k's backend collection path.
func (k Kind) basePath() string {
	switch k {
	case KindExport:
		return "/api/exports"
	case KindInternalImport:
		return "/api/imports/internal"
	case KindInternalExport:
		return "/api/exports/internal"
	case KindStaffImport:
		return "/api/imports/staff"
	case KindStaffExport:
		return "/api/exports/staff"
	default:
		return "/api/imports"
	}
}

// Status enumerates receipt lifecycle states. Values are wire literals; the
// client never invents additional ones.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusImported  Status = "IMPORTED"
	StatusExported  Status = "EXPORTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusReturned  Status = "RETURNED"
)

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusImported, StatusExported, StatusRejected, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// Item is one receipt line.
type Item struct {
	ID              int64   `json:"id,omitempty"`
	ProductID       int64   `json:"productId"`
	ProductCode     string  `json:"productCode,omitempty"`
	ProductName     string  `json:"productName,omitempty"`
	Unit            string  `json:"unit,omitempty"`
	StoreID         int64   `json:"storeId,omitempty"`
	StoreName       string  `json:"storeName,omitempty"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountPercent float64 `json:"discountPercent"`
}

// Receipt is the normalized receipt shown on list and detail screens. The
// backend owns every field; Date round-trips as the unmodified ISO string.
type Receipt struct {
	ID           int64                 `json:"id"`
	Code         string                `json:"code"`
	Kind         Kind                  `json:"kind"`
	Status       Status                `json:"status"`
	StoreID      int64                 `json:"storeId"`
	StoreName    string                `json:"storeName,omitempty"`
	SupplierID   int64                 `json:"supplierId"`
	SupplierName string                `json:"supplierName,omitempty"`
	Date         string                `json:"date"`
	Note         string                `json:"note,omitempty"`
	Description  string                `json:"description,omitempty"`
	TotalValue   float64               `json:"totalValue"`
	Attachments  []string              `json:"attachmentImages,omitempty"`
	Items        []Item                `json:"items,omitempty"`
	Created      *upstream.AuditRecord `json:"created,omitempty"`
	Approved     *upstream.AuditRecord `json:"approved,omitempty"`
	Rejected     *upstream.AuditRecord `json:"rejected,omitempty"`
	Completed    *upstream.AuditRecord `json:"completed,omitempty"`
}

// Permissions holds the flag names gating each operation for one kind.
type Permissions struct {
	View    string
	Create  string
	Edit    string
	Delete  string
	Approve string
	Reject  string
	Cancel  string
	Confirm string
}

// PermissionsFor returns the flag set for a receipt kind. Internal and
// staff kinds share their direction's flags; the approval flags are cleared
// because their lifecycle has no approval stage.
func PermissionsFor(kind Kind) Permissions {
	p := Permissions{
		View:    rbac.ImportView,
		Create:  rbac.ImportCreate,
		Edit:    rbac.ImportEdit,
		Delete:  rbac.ImportDelete,
		Approve: rbac.ImportApprove,
		Reject:  rbac.ImportReject,
		Cancel:  rbac.ImportCancel,
		Confirm: rbac.ImportConfirm,
	}
	if kind.outbound() {
		p = Permissions{
			View:    rbac.ExportView,
			Create:  rbac.ExportCreate,
			Edit:    rbac.ExportEdit,
			Delete:  rbac.ExportDelete,
			Approve: rbac.ExportApprove,
			Reject:  rbac.ExportReject,
			Cancel:  rbac.ExportCancel,
			Confirm: rbac.ExportConfirm,
		}
	}
	if !kind.hasApproval() {
		p.Approve, p.Reject = "", ""
	}
	return p
}

// Domain errors. All wrap an httpx sentinel so the HTTP boundary maps them
// without bespoke switch arms.
var (
	// ErrPermissionDenied is raised before any network call is made.
	ErrPermissionDenied = fmt.Errorf("%w: không có quyền thực hiện thao tác này", httpx.ErrForbidden)
	// ErrInvalidTransition means the receipt's current status forbids the action.
	ErrInvalidTransition = fmt.Errorf("%w: trạng thái phiếu không cho phép thao tác này", httpx.ErrConflict)
	// ErrReasonRequired gates reject: a non-empty reason is mandatory.
	ErrReasonRequired = fmt.Errorf("%w: cần nhập lý do từ chối", httpx.ErrValidation)
)
