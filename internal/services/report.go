package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"spendlog/internal/models"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyTotal is the summed amount of one calendar month.
type MonthlyTotal struct {
	Month time.Time       `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// ChartSeries is a label/value pair list ready for a chart library.
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

const monthLabelLayout = "Jan 2006"

// CategoryTotals sums amounts per category present in expenses, largest total
// first. Equal totals keep the fixed category order.
func CategoryTotals(expenses []models.Expense) []CategoryTotal {
	sums := make(map[models.Category]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for _, c := range models.Categories {
		if sum, ok := sums[c]; ok {
			totals = append(totals, CategoryTotal{Category: c, Total: sum})
			delete(sums, c)
		}
	}
	// Legacy rows may carry a category outside the enum; they sort after the
	// known ones on ties.
	extra := make([]models.Category, 0, len(sums))
	for c := range sums {
		extra = append(extra, c)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		totals = append(totals, CategoryTotal{Category: c, Total: sums[c]})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

// MonthlyTotals sums amounts per calendar month, oldest month first. Months
// without expenses are omitted.
func MonthlyTotals(expenses []models.Expense) []MonthlyTotal {
	sums := make(map[time.Time]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		y, m, _ := e.Date.Date()
		month := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		sums[month] = sums[month].Add(e.Amount)
	}

	totals := make([]MonthlyTotal, 0, len(sums))
	for month, sum := range sums {
		totals = append(totals, MonthlyTotal{Month: month, Label: month.Format(monthLabelLayout), Total: sum})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month.Before(totals[j].Month)
	})
	return totals
}

// CategorySeries converts category totals into chart data.
func CategorySeries(totals []CategoryTotal) ChartSeries {
	series := ChartSeries{Labels: make([]string, 0, len(totals)), Values: make([]float64, 0, len(totals))}
	for _, t := range totals {
		series.Labels = append(series.Labels, t.Category.Label())
		series.Values = append(series.Values, t.Total.InexactFloat64())
	}
	return series
}

// MonthlySeries converts monthly totals into chart data.
func MonthlySeries(totals []MonthlyTotal) ChartSeries {
	series := ChartSeries{Labels: make([]string, 0, len(totals)), Values: make([]float64, 0, len(totals))}
	for _, t := range totals {
		series.Labels = append(series.Labels, t.Label)
		series.Values = append(series.Values, t.Total.InexactFloat64())
	}
	return series
}
