package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
)

func scenarioOptions(t *testing.T, tb *Table) models.FilterOptions {
	t.Helper()
	return Offer(tb, Sniff(tb, 20), 5)
}

func TestApplyCityFilter(t *testing.T) {
	tb := scenarioTable(t)
	spec, err := BuildFilterSpec(scenarioOptions(t, tb), models.Selection{
		Categories: map[string][]string{"City": {"LA"}},
	})
	require.NoError(t, err)

	out := Apply(tb, spec)
	require.Equal(t, 1, out.Len())

	sum := Aggregate(out, ResolveRoles(tb.Names()))
	assert.Equal(t, 50.0, sum.TotalSales)
	assert.Equal(t, []models.TopItem{{Name: "LA", Value: 3.0}}, sum.RatingByCity)
}

func TestApplyEmptyValueSetExcludesAll(t *testing.T) {
	tb := scenarioTable(t)
	for _, col := range []string{"Product", "Category", "Payment", "City"} {
		spec, err := BuildFilterSpec(scenarioOptions(t, tb), models.Selection{
			Categories: map[string][]string{col: {}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, Apply(tb, spec).Len(), col)
	}
}

func TestApplyNoFiltersKeepsTable(t *testing.T) {
	tb := scenarioTable(t)
	spec, err := BuildFilterSpec(scenarioOptions(t, tb), models.Selection{})
	require.NoError(t, err)
	assert.Equal(t, 3, Apply(tb, spec).Len())
}

func TestApplyDateRange(t *testing.T) {
	tb := scenarioTable(t)
	opts := scenarioOptions(t, tb)

	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"whole preview", "2024-01-05", "2024-02-10", 3},
		{"inclusive bounds", "2024-01-20", "2024-01-20", 1},
		{"january only", "2024-01-01", "2024-01-31", 2},
		{"nothing", "2023-01-01", "2023-12-31", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := BuildFilterSpec(opts, models.Selection{
				DateRange: &models.DateSelection{Column: "Date", Start: tt.start, End: tt.end},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, Apply(tb, spec).Len())
		})
	}
}

func TestApplyDateRangeDropsUnparseableCells(t *testing.T) {
	tb := NewTable([]string{"Date", "Sales"}, [][]string{
		{"2024-01-05", "1"},
		{"soon", "2"},
		{"", "3"},
		{"2024-01-06 13:45:00", "4"},
	})
	spec := FilterSpec{Dates: map[string]DateRange{}}
	r, err := parseRange("2024-01-01", "2024-01-06")
	require.NoError(t, err)
	spec.Dates["Date"] = r

	out := Apply(tb, spec)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "1", out.Row(0)[1])
	assert.Equal(t, "4", out.Row(1)[1])
}

func TestApplyIsConjunctive(t *testing.T) {
	tb := scenarioTable(t)
	spec, err := BuildFilterSpec(scenarioOptions(t, tb), models.Selection{
		Categories: map[string][]string{
			"City":    {"NYC", "LA"},
			"Payment": {"Card"},
		},
		DateRange: &models.DateSelection{Column: "Date", Start: "2024-01-01", End: "2024-12-31"},
	})
	require.NoError(t, err)

	out := Apply(tb, spec)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "B", out.Row(0)[1])
}

func TestBuildFilterSpecRejects(t *testing.T) {
	tb := scenarioTable(t)
	opts := scenarioOptions(t, tb)

	_, err := BuildFilterSpec(opts, models.Selection{Categories: map[string][]string{"Sales": {"100"}}})
	assert.ErrorIs(t, err, ErrFilterNotOffered)

	_, err = BuildFilterSpec(opts, models.Selection{
		DateRange: &models.DateSelection{Column: "Shipped", Start: "2024-01-01", End: "2024-01-02"},
	})
	assert.ErrorIs(t, err, ErrFilterNotOffered)

	_, err = BuildFilterSpec(opts, models.Selection{
		DateRange: &models.DateSelection{Column: "Date", Start: "2024-02-01", End: "2024-01-01"},
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = BuildFilterSpec(opts, models.Selection{
		DateRange: &models.DateSelection{Column: "Date", Start: "yesterday", End: "2024-01-01"},
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}
