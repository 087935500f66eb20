// Package i18n holds the dashboard's label tables. Language only changes
// text; it never changes a computed value.
package i18n

import (
	"golang.org/x/text/language"
)

var (
	English    = language.English
	Indonesian = language.Indonesian
)

var supported = []language.Tag{English, Indonesian}

var matcher = language.NewMatcher(supported)

// Resolve matches a client language string ("en", "id-ID", "Indonesia", an
// Accept-Language header) to a supported tag. Unknown input falls back to
// English.
func Resolve(lang string) language.Tag {
	switch lang {
	case "English":
		return English
	case "Indonesia", "Bahasa":
		return Indonesian
	}
	_, idx := language.MatchStrings(matcher, lang)
	return supported[idx]
}

// Labels is the text shown around the computed values.
type Labels struct {
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	UploadSection string `json:"upload_section"`
	UploadLabel   string `json:"upload_label"`
	Filters       string `json:"filters"`
	DateRange     string `json:"date_range"`
	UploadInfo    string `json:"upload_info"`
	ReadError     string `json:"read_error"`
	KPITitle      string `json:"kpi_title"`

	TotalSales    string `json:"kpi_total_sales"`
	ProductsSold  string `json:"kpi_products_sold"`
	SalesAfterTax string `json:"kpi_sales_after_tax"`
	RevenueRate   string `json:"kpi_revenue_rate"`

	MonthlyChart  string `json:"chart_monthly"`
	QuantityChart string `json:"chart_quantity"`
	SalesChart    string `json:"chart_sales"`
	PaymentChart  string `json:"chart_payment"`
	RatingChart   string `json:"chart_rating"`

	MonthAxis       string `json:"axis_month"`
	SalesAxis       string `json:"axis_sales"`
	ProductAxis     string `json:"axis_product"`
	QuantityAxis    string `json:"axis_quantity"`
	ProductLineAxis string `json:"axis_product_line"`
	CityAxis        string `json:"axis_city"`
	AvgRatingAxis   string `json:"axis_avg_rating"`
	PaymentTitle    string `json:"payment_title"`

	DataTitle     string   `json:"data_title"`
	ExpandLabel   string   `json:"expand_label"`
	DownloadBtn   string   `json:"download_btn"`
	InsightsTitle string   `json:"insights_title"`
	Insights      []string `json:"insights"`
	Welcome       string   `json:"welcome"`
	FilterBy      string   `json:"filter_by"`
	All           string   `json:"all"`
}

var tables = map[language.Tag]Labels{
	English: {
		Title:         "SUPERMARKET SALES DASHBOARD",
		Subtitle:      "Performance Sales, Deals Analysis, and Business Insights Dashboard",
		UploadSection: "DATA UPLOAD",
		UploadLabel:   "Choose Excel File",
		Filters:       "FILTER CONTROLS",
		DateRange:     "Date Range",
		UploadInfo:    "Upload Excel file to activate filters",
		ReadError:     "Cannot read the uploaded file. Please check the format.",
		KPITitle:      "KEY PERFORMANCE INDICATORS",

		TotalSales:    "Total Sales",
		ProductsSold:  "Products Sold",
		SalesAfterTax: "Sales After Tax",
		RevenueRate:   "Revenue Realized",

		MonthlyChart:  "Monthly Sales Trend",
		QuantityChart: "Products Sold",
		SalesChart:    "Sales by Product Line",
		PaymentChart:  "Payment Methods",
		RatingChart:   "Rating by City",

		MonthAxis:       "Month",
		SalesAxis:       "Sales",
		ProductAxis:     "Product",
		QuantityAxis:    "Quantity",
		ProductLineAxis: "Product Line",
		CityAxis:        "City",
		AvgRatingAxis:   "Average Rating",
		PaymentTitle:    "Payment Method Distribution",

		DataTitle:     "DATA OVERVIEW",
		ExpandLabel:   "View Raw Data",
		DownloadBtn:   "Download CSV",
		InsightsTitle: "BUSINESS INSIGHTS",
		Insights: []string{
			"Top Category: Electronics leads with 25% growth",
			"Seasonal Trend: Holiday season boosts sales",
			"Note: Cash payments declining",
		},
		Welcome:  "Upload data to start analysis",
		FilterBy: "Filter",
		All:      "All",
	},
	Indonesian: {
		Title:         "DASHBOARD PENJUALAN SUPERMARKET",
		Subtitle:      "Dashboard Analisis Kinerja Penjualan, Transaksi, dan Wawasan Bisnis",
		UploadSection: "UNGGAH DATA",
		UploadLabel:   "Pilih File Excel",
		Filters:       "KONTROL FILTER",
		DateRange:     "Rentang Tanggal",
		UploadInfo:    "Unggah file Excel untuk mengaktifkan filter",
		ReadError:     "Tidak dapat membaca file. Silakan periksa format file.",
		KPITitle:      "INDIKATOR KINERJA UTAMA",

		TotalSales:    "Total Penjualan",
		ProductsSold:  "Produk Terjual",
		SalesAfterTax: "Penjualan Setelah Pajak",
		RevenueRate:   "Pendapatan Tercapai",

		MonthlyChart:  "Tren Penjualan Bulanan",
		QuantityChart: "Produk Terjual",
		SalesChart:    "Penjualan berdasarkan Lini Produk",
		PaymentChart:  "Metode Pembayaran",
		RatingChart:   "Rating berdasarkan Kota",

		MonthAxis:       "Bulan",
		SalesAxis:       "Penjualan",
		ProductAxis:     "Produk",
		QuantityAxis:    "Jumlah",
		ProductLineAxis: "Lini Produk",
		CityAxis:        "Kota",
		AvgRatingAxis:   "Rating Rata-rata",
		PaymentTitle:    "Distribusi Metode Pembayaran",

		DataTitle:     "IKHTISAR DATA",
		ExpandLabel:   "Lihat Data Mentah",
		DownloadBtn:   "Unduh CSV",
		InsightsTitle: "WAWASAN BISNIS",
		Insights: []string{
			"Kategori Teratas: Elektronik memimpin dengan pertumbuhan 25%",
			"Tren Musiman: Musim liburan meningkatkan penjualan",
			"Catatan: Pembayaran tunai menurun",
		},
		Welcome:  "Unggah data untuk memulai analisis",
		FilterBy: "Filter berdasarkan",
		All:      "Semua",
	},
}

// For returns the labels of tag, falling back to English.
func For(tag language.Tag) Labels {
	if l, ok := tables[tag]; ok {
		return l
	}
	return tables[Resolve(tag.String())]
}
