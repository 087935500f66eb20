package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", English},
		{"en", English},
		{"en-US", English},
		{"English", English},
		{"id", Indonesian},
		{"id-ID", Indonesian},
		{"Indonesia", Indonesian},
		{"fr", English},
		{"id-ID,id;q=0.9,en;q=0.8", Indonesian},
	}

	for _, tt := range tests {
		if got := Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestForFallsBackToEnglish(t *testing.T) {
	if got := For(language.Japanese).Title; got != For(English).Title {
		t.Errorf("For(ja).Title = %q", got)
	}
	if got := For(Indonesian).TotalSales; got != "Total Penjualan" {
		t.Errorf("For(id).TotalSales = %q", got)
	}
}

func TestTablesAreComplete(t *testing.T) {
	for tag, l := range tables {
		if l.ReadError == "" || l.Title == "" || l.RatingChart == "" || l.FilterBy == "" {
			t.Errorf("%v: missing labels", tag)
		}
		if len(l.Insights) != 3 {
			t.Errorf("%v: want 3 insights, got %d", tag, len(l.Insights))
		}
	}
}
