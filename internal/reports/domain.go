// Package reports serves the dashboard's analytics screens: the AI sales
// trend, ABC classification, operational alerts and the import/export
// volume summary. Everything here is read-only backend data held in a
// short-lived cache that the worker refreshes in the background.
package reports

// TrendPoint is one bucket of the sales trend chart.
type TrendPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Growth  float64 `json:"growth"`
}

// SalesTrend is the backend's sales trend analysis for one period.
type SalesTrend struct {
	Period          string       `json:"period"`
	TrendData       []TrendPoint `json:"trendData"`
	Trend           string       `json:"trend"`
	GrowthRate      float64      `json:"growthRate"`
	Analysis        string       `json:"analysis"`
	Forecast        string       `json:"forecast"`
	TopProducts     []string     `json:"topProducts"`
	Recommendations []string     `json:"recommendations"`
}

// ABCProduct is one product line in the ABC classification.
type ABCProduct struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
	Quantity   float64 `json:"quantity"`
}

// ABCAnalysis groups products into revenue-contribution categories.
type ABCAnalysis struct {
	CategoryA       []ABCProduct `json:"categoryA"`
	CategoryB       []ABCProduct `json:"categoryB"`
	CategoryC       []ABCProduct `json:"categoryC"`
	Analysis        string       `json:"analysis"`
	Recommendations string       `json:"recommendations"`
}

// Alert is one operational warning on the dashboard.
type Alert struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Icon    string `json:"icon,omitempty"`
}

// Alerts is the dashboard alert feed with its one-line summary.
type Alerts struct {
	Alerts  []Alert `json:"alerts"`
	Summary string  `json:"summary"`
}

// Volume sums confirmed receipt values across the whole collection, walked
// page by page from the backend.
type Volume struct {
	ImportTotal float64 `json:"importTotal"`
	ExportTotal float64 `json:"exportTotal"`
	ImportCount int64   `json:"importCount"`
	ExportCount int64   `json:"exportCount"`
}
