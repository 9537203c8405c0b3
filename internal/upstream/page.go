package upstream

// Page is the backend-owned pagination envelope. totalElements and
// totalPages are authoritative; clients only ever slice within content.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}
