// Package lookup serves the slow-moving reference data the dashboard joins
// against receipts and stocktakes: products, stores, suppliers and stock
// levels. Values are cached in Redis with a short TTL and loads are
// deduplicated so a burst of page views costs one backend call.
package lookup

import "fmt"

// Product is one sellable item.
type Product struct {
	ID    int64   `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Unit  string  `json:"unit,omitempty"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// Store is one warehouse or shop location.
type Store struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// Supplier is one goods source.
type Supplier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Stock is the on-hand quantity of one product at one store.
type Stock struct {
	ProductID int64   `json:"productId"`
	StoreID   int64   `json:"storeId"`
	Quantity  float64 `json:"quantity"`
}

// DeletedProductName is the placeholder shown when a receipt references a
// product that no longer exists. Old receipts must stay renderable.
func DeletedProductName(id int64) string {
	return fmt.Sprintf("Sản phẩm đã xóa #%d", id)
}

// DeletedStoreName is the placeholder for a removed store reference.
func DeletedStoreName(id int64) string {
	return fmt.Sprintf("Cửa hàng đã xóa #%d", id)
}

// DeletedSupplierName is the placeholder for a removed supplier reference.
func DeletedSupplierName(id int64) string {
	return fmt.Sprintf("Nhà cung cấp đã xóa #%d", id)
}
