// Package rbac maps dashboard roles to the permission flags gating the
// receipt and inventory-check workflows.
package rbac

// Permission flags. These are wire literals shared with the backend and the
// dashboard UI; do not rename.
const (
	ImportCreate  = "IMPORT_CREATE"
	ImportEdit    = "IMPORT_EDIT"
	ImportDelete  = "IMPORT_DELETE"
	ImportApprove = "IMPORT_APPROVE"
	ImportReject  = "IMPORT_REJECT"
	ImportCancel  = "IMPORT_CANCEL"
	ImportConfirm = "IMPORT_CONFIRM"
	ImportView    = "IMPORT_VIEW"

	ExportCreate  = "EXPORT_CREATE"
	ExportEdit    = "EXPORT_EDIT"
	ExportDelete  = "EXPORT_DELETE"
	ExportApprove = "EXPORT_APPROVE"
	ExportReject  = "EXPORT_REJECT"
	ExportCancel  = "EXPORT_CANCEL"
	ExportConfirm = "EXPORT_CONFIRM"
	ExportView    = "EXPORT_VIEW"

	CheckCreate  = "INVENTORY_CHECK_CREATE"
	CheckEdit    = "INVENTORY_CHECK_EDIT"
	CheckDelete  = "INVENTORY_CHECK_DELETE"
	CheckApprove = "INVENTORY_CHECK_APPROVE"
	CheckReject  = "INVENTORY_CHECK_REJECT"
	CheckConfirm = "INVENTORY_CHECK_CONFIRM"
	CheckView    = "INVENTORY_CHECK_VIEW"

	ReportView = "REPORT_VIEW"
)

// allPermissions lists every flag, in declaration order.
var allPermissions = []string{
	ImportCreate, ImportEdit, ImportDelete, ImportApprove, ImportReject, ImportCancel, ImportConfirm, ImportView,
	ExportCreate, ExportEdit, ExportDelete, ExportApprove, ExportReject, ExportCancel, ExportConfirm, ExportView,
	CheckCreate, CheckEdit, CheckDelete, CheckApprove, CheckReject, CheckConfirm, CheckView,
	ReportView,
}

// rolePermissions is the role-to-flag grant table. Admin holds everything,
// managers approve and reject, staff create, plain users only view.
var rolePermissions = map[string][]string{
	"ADMIN": allPermissions,
	"MANAGER": {
		ImportCreate, ImportApprove, ImportReject, ImportConfirm, ImportView,
		ExportCreate, ExportApprove, ExportReject, ExportConfirm, ExportView,
		CheckCreate, CheckApprove, CheckReject, CheckConfirm, CheckView,
		ReportView,
	},
	"STAFF": {
		ImportCreate, ImportView,
		ExportCreate, ExportView,
		CheckCreate, CheckView,
	},
	"USER": {ImportView, ExportView, CheckView},
}
