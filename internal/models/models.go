package models

// Summary holds the raw KPI values and chart series computed from a
// filtered table.
type Summary struct {
	Rows          int     `json:"rows"`
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity float64 `json:"total_quantity"`
	SalesAfterTax float64 `json:"sales_after_tax"`
	RevenueRate   float64 `json:"revenue_rate"`

	MonthlySales []MonthlyItem `json:"monthly_sales"`
	TopQuantity  []TopItem     `json:"top_products_by_quantity"`
	TopSales     []TopItem     `json:"top_products_by_sales"`
	Payments     []CountItem   `json:"payment_distribution"`
	RatingByCity []TopItem     `json:"rating_by_city"`
}

type MonthlyItem struct {
	Month  string  `json:"month"`
	Volume float64 `json:"sales"`
}

type TopItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type CountItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Dashboard is everything the front end needs to draw one page.
type Dashboard struct {
	Language string   `json:"language"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Notice   string   `json:"notice,omitempty"`
	Rows     int      `json:"rows"`
	KPIs     []KPI    `json:"kpis"`
	Charts   []Chart  `json:"charts"`
	Insights []string `json:"insights"`
}

type KPI struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Chart describes a chart to render; Kind is "line", "bar" or "pie".
// Title heads the chart's section, PlotTitle sits inside the plot.
type Chart struct {
	Key       string      `json:"key"`
	Kind      string      `json:"kind"`
	Title     string      `json:"title"`
	PlotTitle string      `json:"plot_title,omitempty"`
	XTitle    string      `json:"x_title,omitempty"`
	YTitle    string      `json:"y_title,omitempty"`
	Points    []Point     `json:"points"`
	YRange    *[2]float64 `json:"y_range,omitempty"`
	Hole      float64     `json:"hole,omitempty"`
}

type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// FilterOptions lists the filters offered for an uploaded file.
type FilterOptions struct {
	Categorical []CategoricalFilter `json:"categorical"`
	DateRange   *DateFilter         `json:"date_range,omitempty"`
}

type CategoricalFilter struct {
	Column string   `json:"column"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

type DateFilter struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	Min    string `json:"min"`
	Max    string `json:"max"`
}

// Selection is the client's choice of filter values. A categorical column
// that is absent is not filtered; a present column with no values matches
// nothing.
type Selection struct {
	Categories map[string][]string `json:"categories,omitempty"`
	DateRange  *DateSelection      `json:"date_range,omitempty"`
}

type DateSelection struct {
	Column string `json:"column"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type UploadResult struct {
	SessionID string        `json:"session_id"`
	FileName  string        `json:"file_name"`
	Rows      int           `json:"rows"`
	Columns   []string      `json:"columns"`
	Filters   FilterOptions `json:"filters"`
	ReadError string        `json:"read_error,omitempty"`
}

type TablePage struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}
