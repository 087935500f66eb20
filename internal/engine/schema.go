package engine

import (
	"strings"
	"time"

	"salesdash/internal/models"
)

// Schema is the column classification of a preview.
type Schema struct {
	Dates       []string
	Numeric     []string
	Categorical []string
}

// Sniff classifies the columns of a preview. Text columns with threshold or
// more distinct values, and columns with no values at all, are left out of
// Categorical.
func Sniff(preview *Table, threshold int) Schema {
	var s Schema
	for _, c := range preview.Columns {
		switch c.Kind {
		case KindDate:
			s.Dates = append(s.Dates, c.Name)
		case KindNumeric:
			s.Numeric = append(s.Numeric, c.Name)
		default:
			if n := len(distinct(c)); n > 0 && n < threshold {
				s.Categorical = append(s.Categorical, c.Name)
			}
		}
	}
	return s
}

// distinct returns the non-missing values of c in first-appearance order.
func distinct(c *Column) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range c.Raw {
		if c.Missing(i) {
			continue
		}
		v := c.Value(i)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Offer builds the filters shown for a preview: the first maxCategorical
// categorical columns with their values, and a range over the first date
// column.
func Offer(preview *Table, s Schema, maxCategorical int) models.FilterOptions {
	opts := models.FilterOptions{Categorical: []models.CategoricalFilter{}}

	cats := s.Categorical
	if maxCategorical < 0 {
		maxCategorical = 0
	}
	if len(cats) > maxCategorical {
		cats = cats[:maxCategorical]
	}
	for _, name := range cats {
		c, ok := preview.Column(name)
		if !ok {
			continue
		}
		values := distinct(c)
		if values == nil {
			values = []string{}
		}
		opts.Categorical = append(opts.Categorical, models.CategoricalFilter{
			Column: name,
			Values: values,
		})
	}

	if len(s.Dates) > 0 {
		if c, ok := preview.Column(s.Dates[0]); ok {
			if lo, hi, ok := timeBounds(c); ok {
				opts.DateRange = &models.DateFilter{
					Column: c.Name,
					Min:    lo.Format(dayLayout),
					Max:    hi.Format(dayLayout),
				}
			}
		}
	}
	return opts
}

func timeBounds(c *Column) (lo, hi time.Time, ok bool) {
	for i := range c.Raw {
		t, valid := c.Time(i)
		if !valid {
			continue
		}
		if !ok || t.Before(lo) {
			lo = t
		}
		if !ok || t.After(hi) {
			hi = t
		}
		ok = true
	}
	return lo, hi, ok
}

// Role is the business meaning of a column, found by name.
type Role string

const (
	RoleSales    Role = "sales"
	RoleQuantity Role = "quantity"
	RoleCity     Role = "city"
	RoleRating   Role = "rating"
	RoleCategory Role = "category"
	RolePayment  Role = "payment"
	RoleDate     Role = "date"
)

// roleKeywords maps each role to the lowercase substrings that select it.
var roleKeywords = []struct {
	role     Role
	keywords []string
}{
	{RoleSales, []string{"sales", "total"}},
	{RoleQuantity, []string{"qty", "quantity"}},
	{RoleCity, []string{"city"}},
	{RoleRating, []string{"rating"}},
	{RoleCategory, []string{"product", "category"}},
	{RolePayment, []string{"payment"}},
	{RoleDate, []string{"date"}},
}

// Roles maps each resolved role to its column name. Unresolved roles are
// absent.
type Roles map[Role]string

// Column returns the column holding role, or false when no column matched.
func (r Roles) Column(role Role) (string, bool) {
	name, ok := r[role]
	return name, ok
}

// ResolveRoles assigns to every role the leftmost column whose lowercased
// name contains one of the role's keywords. One column may serve several
// roles.
func ResolveRoles(columns []string) Roles {
	roles := make(Roles, len(roleKeywords))
	for _, rk := range roleKeywords {
		for _, name := range columns {
			if containsAny(strings.ToLower(name), rk.keywords) {
				roles[rk.role] = name
				break
			}
		}
	}
	return roles
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
