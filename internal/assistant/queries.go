package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

func (a *Assistant) handleBalance(ctx context.Context, userID string) (Reply, error) {
	transactions, err := a.store.ListTransactions(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("balance query: %w", err)
	}

	now := a.now()
	var totalIncome, totalExpenses, monthIncome, monthExpenses float64
	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			totalIncome += t.Amount
			if sameMonth(t.Date, now) {
				monthIncome += t.Amount
			}
		case models.TypeExpense:
			totalExpenses += t.Amount
			if sameMonth(t.Date, now) {
				monthExpenses += t.Amount
			}
		}
	}
	balance := totalIncome - totalExpenses

	text := fmt.Sprintf("💰 Current Balance: %s\n\n", formatCurrency(balance)) +
		"This Month:\n" +
		fmt.Sprintf("📈 Income: %s\n", formatCurrency(monthIncome)) +
		fmt.Sprintf("📉 Expenses: %s\n", formatCurrency(monthExpenses)) +
		fmt.Sprintf("💵 Net: %s\n\n", formatCurrency(monthIncome-monthExpenses)) +
		"All Time:\n" +
		fmt.Sprintf("📈 Total Income: %s\n", formatCurrency(totalIncome)) +
		fmt.Sprintf("📉 Total Expenses: %s", formatCurrency(totalExpenses))

	return Reply{Text: text}, nil
}

func (a *Assistant) handleListing(ctx context.Context, userID, prompt string) (Reply, error) {
	window := resolveTimeframe(prompt, a.now())

	transactions, err := a.store.ListTransactions(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("transaction query: %w", err)
	}

	var filtered []models.Transaction
	for _, t := range transactions {
		if window.contains(t.Date) {
			filtered = append(filtered, t)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	if len(filtered) == 0 {
		return Reply{Text: fmt.Sprintf("No transactions found between %s and %s.\n\n", formatDate(window.Start), formatDate(window.End)) +
			"Try adding some transactions or checking a different time period."}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Transactions (%s to %s):\n\n", formatDate(window.Start), formatDate(window.End))

	const maxShown = 5
	shown := filtered
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for _, t := range shown {
		icon, sign := "💸", "-"
		if t.Type == models.TypeIncome {
			icon, sign = "💵", "+"
		}
		fmt.Fprintf(&b, "%s %s\n%s%s - %s\nCategory: %s\n\n",
			icon, formatDate(t.Date), sign, formatCurrency(t.Amount), t.Description, t.Category)
	}
	if len(filtered) > maxShown {
		fmt.Fprintf(&b, "...and %d more transactions.\n\n", len(filtered)-maxShown)
	}

	var income, expenses float64
	for _, t := range filtered {
		if t.Type == models.TypeIncome {
			income += t.Amount
		} else {
			expenses += t.Amount
		}
	}
	fmt.Fprintf(&b, "📊 Summary:\n📈 Income: %s\n📉 Expenses: %s\n💰 Net: %s",
		formatCurrency(income), formatCurrency(expenses), formatCurrency(income-expenses))

	return Reply{Text: b.String()}, nil
}

func (a *Assistant) handleCategorySpending(ctx context.Context, userID, prompt string) (Reply, error) {
	window := resolveTimeframe(prompt, a.now())

	transactions, err := a.store.ListTransactions(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("category query: %w", err)
	}

	category := matchCategory(prompt)

	var filtered []models.Transaction
	for _, t := range transactions {
		if !window.contains(t.Date) {
			continue
		}
		if category != "" && !strings.Contains(t.Category, category) {
			continue
		}
		filtered = append(filtered, t)
	}

	if len(filtered) == 0 {
		if category != "" {
			return Reply{Text: fmt.Sprintf("No transactions found for category %q in this period.", category)}, nil
		}
		return Reply{Text: "No transactions found for this period."}, nil
	}

	totals := make(map[string]float64)
	for _, t := range filtered {
		totals[t.Category] += t.Amount
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	var b strings.Builder
	if category != "" {
		fmt.Fprintf(&b, "📊 Spending for %q:\n\n", category)
	} else {
		b.WriteString("📊 Category breakdown:\n\n")
	}

	var grand float64
	for _, name := range names {
		icon := "💸"
		if strings.Contains(strings.ToLower(name), "income") {
			icon = "💵"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", icon, name, formatCurrency(totals[name]))
		grand += totals[name]
	}
	fmt.Fprintf(&b, "\n💰 Total: %s", formatCurrency(grand))

	return Reply{Text: b.String()}, nil
}

// matchCategory scans the prompt for one of the known categories, by full
// name or by its first word, case-insensitive. Empty means no narrowing.
func matchCategory(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, cat := range knownCategories {
		first := strings.ToLower(strings.Fields(cat)[0])
		if strings.Contains(lower, strings.ToLower(cat)) || strings.Contains(lower, first) {
			return cat
		}
	}
	return ""
}
