package engine

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"salesdash/internal/i18n"
	"salesdash/internal/models"
)

// Figures are always printed the English way; only labels follow the
// selected language.
var numbers = message.NewPrinter(language.English)

func formatCurrency(v float64) string { return numbers.Sprintf("$%.2f", v) }
func formatCount(v float64) string    { return numbers.Sprintf("%d", int64(math.Round(v))) }
func formatPercent(v float64) string  { return numbers.Sprintf("%.2f%%", v) }

// BuildDashboard lays out a summary as KPIs and charts labelled for lang.
func BuildDashboard(sum *models.Summary, lang language.Tag) *models.Dashboard {
	t := i18n.For(lang)
	d := &models.Dashboard{
		Language: lang.String(),
		Title:    t.Title,
		Subtitle: t.Subtitle,
		Rows:     sum.Rows,
		Insights: append([]string(nil), t.Insights...),
	}

	d.KPIs = []models.KPI{
		{Key: "total_sales", Label: t.TotalSales, Value: sum.TotalSales, Display: formatCurrency(sum.TotalSales)},
		{Key: "products_sold", Label: t.ProductsSold, Value: sum.TotalQuantity, Display: formatCount(sum.TotalQuantity)},
		{Key: "sales_after_tax", Label: t.SalesAfterTax, Value: sum.SalesAfterTax, Display: formatCurrency(sum.SalesAfterTax)},
		{Key: "revenue_rate", Label: t.RevenueRate, Value: sum.RevenueRate, Display: formatPercent(sum.RevenueRate)},
	}

	monthly := make([]models.Point, 0, len(sum.MonthlySales))
	for _, m := range sum.MonthlySales {
		monthly = append(monthly, models.Point{X: m.Month, Y: m.Volume})
	}
	payments := make([]models.Point, 0, len(sum.Payments))
	for _, p := range sum.Payments {
		payments = append(payments, models.Point{X: p.Name, Y: float64(p.Count)})
	}

	d.Charts = []models.Chart{
		{Key: "monthly_sales", Kind: "line", Title: t.MonthlyChart, XTitle: t.MonthAxis, YTitle: t.SalesAxis, Points: monthly},
		{Key: "top_quantity", Kind: "bar", Title: t.QuantityChart, XTitle: t.ProductAxis, YTitle: t.QuantityAxis, Points: points(sum.TopQuantity)},
		{Key: "top_sales", Kind: "bar", Title: t.SalesChart, XTitle: t.ProductLineAxis, YTitle: t.SalesAxis, Points: points(sum.TopSales)},
		{Key: "payments", Kind: "pie", Title: t.PaymentChart, PlotTitle: t.PaymentTitle, Points: payments, Hole: 0.4},
		{Key: "rating_by_city", Kind: "bar", Title: t.RatingChart, XTitle: t.CityAxis, YTitle: t.AvgRatingAxis, Points: points(sum.RatingByCity), YRange: &[2]float64{0, 5}},
	}
	return d
}

func points(items []models.TopItem) []models.Point {
	out := make([]models.Point, 0, len(items))
	for _, it := range items {
		out = append(out, models.Point{X: it.Name, Y: it.Value})
	}
	return out
}
