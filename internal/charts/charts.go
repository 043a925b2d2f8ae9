// Package charts renders PNG visualizations of a user's transactions.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

// Renderer generates chart images from transaction sets.
type Renderer struct{}

// NewRenderer creates a chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// CategoryPie renders the per-category share of the given transaction type
// as a pie chart. Returns nil bytes when there is nothing to draw.
func (g *Renderer) CategoryPie(transactions []models.Transaction, txType string) ([]byte, error) {
	totals := make(map[string]float64)
	var grand float64
	for _, t := range transactions {
		if t.Type != txType {
			continue
		}
		totals[t.Category] += t.Amount
		grand += t.Amount
	}
	if grand == 0 {
		return nil, nil
	}

	title := "Expense Breakdown"
	if txType == models.TypeIncome {
		title = "Income Breakdown"
	}

	values := make([]chart.Value, 0, len(totals))
	for category, amount := range totals {
		share := (amount / grand) * 100
		// Slivers under 1% make the chart unreadable.
		if share <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: $%.2f (%.1f%%)", category, amount, share),
			Value: amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// IncomeExpenseBars renders total income, total expenses, and net as a bar
// chart. Returns nil bytes when there are no transactions.
func (g *Renderer) IncomeExpenseBars(transactions []models.Transaction) ([]byte, error) {
	if len(transactions) == 0 {
		return nil, nil
	}

	var income, expenses float64
	for _, t := range transactions {
		if t.Type == models.TypeIncome {
			income += t.Amount
		} else {
			expenses += t.Amount
		}
	}

	bars := chart.BarChart{
		Title:    "Income vs Expenses",
		Width:    800,
		Height:   500,
		BarWidth: 120,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("$%.0f", v.(float64))
			},
		},
		Bars: []chart.Value{
			{Label: "Income", Value: income, Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen}},
			{Label: "Expenses", Value: expenses, Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed}},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bars.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render income/expense chart: %w", err)
	}
	return buffer.Bytes(), nil
}
