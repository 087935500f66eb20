package engine

import (
	"sort"

	"salesdash/internal/models"
)

// Placeholder business constants carried over from the dashboard's first
// version; neither has a documented source.
const (
	// AfterTaxFactor is the share of sales kept after the flat 12% deduction.
	AfterTaxFactor = 0.88
	// RevenueOffset is added to total sales in the revenue-rate denominator.
	RevenueOffset = 10000.0

	// TopN bounds the ranked product charts.
	TopN = 10

	monthLayout = "2006-01"
)

// group accumulates a metric per key, remembering first-appearance order.
type group struct {
	keys   []string
	idx    map[string]int
	sums   []float64
	counts []int
}

func newGroup() *group {
	return &group{idx: make(map[string]int)}
}

// add registers key and, when ok, adds v to its sum.
func (g *group) add(key string, v float64, ok bool) {
	i, exists := g.idx[key]
	if !exists {
		i = len(g.keys)
		g.idx[key] = i
		g.keys = append(g.keys, key)
		g.sums = append(g.sums, 0)
		g.counts = append(g.counts, 0)
	}
	if ok {
		g.sums[i] += v
		g.counts[i]++
	}
}

// top returns the n largest sums, descending, ties in first-appearance order.
func (g *group) top(n int) []models.TopItem {
	items := make([]models.TopItem, len(g.keys))
	for i, k := range g.keys {
		items[i] = models.TopItem{Name: k, Value: g.sums[i]}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// Aggregate computes the KPIs and chart series of t. Any role missing from
// roles yields a zero KPI or an empty series.
func Aggregate(t *Table, roles Roles) *models.Summary {
	data := &models.Summary{
		Rows:         t.Len(),
		MonthlySales: make([]models.MonthlyItem, 0),
		TopQuantity:  make([]models.TopItem, 0),
		TopSales:     make([]models.TopItem, 0),
		Payments:     make([]models.CountItem, 0),
		RatingByCity: make([]models.TopItem, 0),
	}

	// 1. Resolve role columns against this table
	col := func(r Role) *Column {
		name, ok := roles.Column(r)
		if !ok {
			return nil
		}
		c, _ := t.Column(name)
		return c
	}
	sales := col(RoleSales)
	qty := col(RoleQuantity)
	date := col(RoleDate)
	category := col(RoleCategory)
	payment := col(RolePayment)
	city := col(RoleCity)
	rating := col(RoleRating)

	// 2. KPIs
	if sales != nil {
		data.TotalSales = sum(sales, t.Len())
		data.SalesAfterTax = data.TotalSales * AfterTaxFactor
		data.RevenueRate = data.TotalSales / (data.TotalSales + RevenueOffset) * 100
	}
	if qty != nil {
		data.TotalQuantity = sum(qty, t.Len())
	}

	// 3. Monthly sales
	if sales != nil && date != nil {
		months := make(map[string]float64)
		for i := 0; i < t.Len(); i++ {
			ts, ok := date.Time(i)
			if !ok {
				continue
			}
			m := ts.Format(monthLayout)
			v, _ := sales.Float(i)
			months[m] += v
		}
		for m, vol := range months {
			data.MonthlySales = append(data.MonthlySales, models.MonthlyItem{Month: m, Volume: vol})
		}
		sort.Slice(data.MonthlySales, func(i, j int) bool { return data.MonthlySales[i].Month < data.MonthlySales[j].Month })
	}

	// 4. Top products
	if category != nil && qty != nil {
		data.TopQuantity = groupBy(t, category, qty).top(TopN)
	}
	if category != nil && sales != nil {
		data.TopSales = groupBy(t, category, sales).top(TopN)
	}

	// 5. Payment distribution
	if payment != nil {
		g := newGroup()
		for i := 0; i < t.Len(); i++ {
			if payment.Missing(i) {
				continue
			}
			g.add(payment.Value(i), 0, true)
		}
		for i, k := range g.keys {
			data.Payments = append(data.Payments, models.CountItem{Name: k, Count: g.counts[i]})
		}
		sort.SliceStable(data.Payments, func(i, j int) bool { return data.Payments[i].Count > data.Payments[j].Count })
	}

	// 6. Rating by city
	if city != nil && rating != nil {
		g := groupBy(t, city, rating)
		for i, k := range g.keys {
			if g.counts[i] == 0 {
				continue
			}
			data.RatingByCity = append(data.RatingByCity, models.TopItem{
				Name: k, Value: g.sums[i] / float64(g.counts[i]),
			})
		}
	}

	return data
}

func sum(c *Column, n int) float64 {
	var s float64
	for i := 0; i < n; i++ {
		if v, ok := c.Float(i); ok {
			s += v
		}
	}
	return s
}

// groupBy sums metric per non-missing key.
func groupBy(t *Table, key, metric *Column) *group {
	g := newGroup()
	for i := 0; i < t.Len(); i++ {
		if key.Missing(i) {
			continue
		}
		v, ok := metric.Float(i)
		g.add(key.Value(i), v, ok)
	}
	return g
}
