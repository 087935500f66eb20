package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/i18n"
	"salesdash/internal/models"
)

func TestBuildDashboard(t *testing.T) {
	tb := scenarioTable(t)
	d := BuildDashboard(Aggregate(tb, ResolveRoles(tb.Names())), i18n.English)

	require.Len(t, d.KPIs, 4)
	assert.Equal(t, "$300.00", d.KPIs[0].Display)
	assert.Equal(t, "6", d.KPIs[1].Display)
	assert.Equal(t, "$264.00", d.KPIs[2].Display)
	assert.Equal(t, "2.91%", d.KPIs[3].Display)

	require.Len(t, d.Charts, 5)
	kinds := []string{}
	for _, c := range d.Charts {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"line", "bar", "bar", "pie", "bar"}, kinds)

	assert.Equal(t, []models.Point{{X: "2024-01", Y: 150}, {X: "2024-02", Y: 150}}, d.Charts[0].Points)
	assert.Equal(t, []models.Point{{X: "Cash", Y: 2}, {X: "Card", Y: 1}}, d.Charts[3].Points)
	assert.Equal(t, 0.4, d.Charts[3].Hole)
	assert.Equal(t, "Payment Methods", d.Charts[3].Title)
	assert.Equal(t, "Payment Method Distribution", d.Charts[3].PlotTitle)

	rating := d.Charts[4]
	require.NotNil(t, rating.YRange)
	assert.Equal(t, [2]float64{0, 5}, *rating.YRange)
	assert.Equal(t, "City", rating.XTitle)

	assert.Len(t, d.Insights, 3)
	assert.Equal(t, "en", d.Language)
}

func TestBuildDashboardIndonesian(t *testing.T) {
	d := BuildDashboard(Aggregate(NewTable(nil, nil), nil), i18n.Indonesian)

	assert.Equal(t, "DASHBOARD PENJUALAN SUPERMARKET", d.Title)
	assert.Equal(t, "Bulan", d.Charts[0].XTitle)
	assert.Equal(t, "Distribusi Metode Pembayaran", d.Charts[3].PlotTitle)
	assert.Equal(t, "$0.00", d.KPIs[0].Display)
	assert.Equal(t, "0.00%", d.KPIs[3].Display)
	for _, c := range d.Charts {
		assert.NotNil(t, c.Points)
		assert.Empty(t, c.Points)
	}
}

func TestFormatCountGroupsThousands(t *testing.T) {
	assert.Equal(t, "1,234", formatCount(1234))
	assert.Equal(t, "0", formatCount(0))
}
