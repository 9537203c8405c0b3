package upstream

import "strings"

// AuditRecord is the one canonical shape for "who acted and when". The
// backend has accumulated several field-name variants for the same concept
// (createdAt vs createdDate, actor id vs display name); they are folded into
// this record once, at the boundary, instead of checked ad hoc in every view.
type AuditRecord struct {
	Actor string `json:"actor"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	At    string `json:"at"`
}

// NewAuditRecord builds a record from already-normalized fields, returning
// nil when every field is empty so absent transitions stay absent.
func NewAuditRecord(actor, name, role, at string) *AuditRecord {
	actor = strings.TrimSpace(actor)
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	at = strings.TrimSpace(at)
	if actor == "" && name == "" && role == "" && at == "" {
		return nil
	}
	if name == "" {
		name = actor
	}
	return &AuditRecord{Actor: actor, Name: name, Role: role, At: at}
}

// FirstNonEmpty picks the first non-blank candidate among legacy field-name
// variants.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
