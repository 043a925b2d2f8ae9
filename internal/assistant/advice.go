package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

func (a *Assistant) handleSavingsTips(ctx context.Context, userID string) (Reply, error) {
	transactions, err := a.store.ListTransactions(ctx, userID)
	if err != nil {
		return Reply{}, fmt.Errorf("savings tips: %w", err)
	}

	now := a.now()
	var monthIncome, monthExpenses float64
	for _, t := range transactions {
		if !sameMonth(t.Date, now) {
			continue
		}
		if t.Type == models.TypeIncome {
			monthIncome += t.Amount
		} else {
			monthExpenses += t.Amount
		}
	}

	var b strings.Builder
	b.WriteString("💡 Smart Savings Tips:\n\n")

	// The warning banner is the only data-driven part; the rest is a fixed
	// educational template.
	if monthExpenses > monthIncome*0.8 {
		b.WriteString("🚨 High Expense Alert:\n" +
			"• Your expenses are over 80% of your income\n" +
			"• Consider reviewing non-essential spending\n" +
			"• Look for areas to cut back\n\n")
	}

	b.WriteString("1. 💰 Budgeting Strategy:\n" +
		"• Follow the 50/30/20 rule:\n" +
		"  - 50% for needs (housing, food, utilities)\n" +
		"  - 30% for wants (entertainment, shopping)\n" +
		"  - 20% for savings and debt payment\n\n")

	b.WriteString("2. 📉 Expense Reduction:\n" +
		"• Review and cancel unused subscriptions\n" +
		"• Compare prices before purchases\n" +
		"• Use cashback and rewards programs\n\n")

	b.WriteString("3. 📈 Income Growth:\n" +
		"• Explore side hustle opportunities\n" +
		"• Develop high-demand skills\n" +
		"• Look for passive income sources\n\n")

	b.WriteString("4. 🎯 Smart Financial Habits:\n" +
		"• Set up automatic savings transfers\n" +
		"• Create an emergency fund\n" +
		"• Track expenses regularly\n\n")

	b.WriteString("Would you like more specific tips for any category?")

	return Reply{Text: b.String()}, nil
}

var (
	reHelpAdd    = regexp.MustCompile(`add|create|record`)
	reHelpDelete = regexp.MustCompile(`delete|remove`)
)

func (a *Assistant) handleHelp(prompt string) Reply {
	if reHelpAdd.MatchString(prompt) {
		return Reply{Text: "📝 How to Add Transactions:\n\n" +
			"You can say things like:\n" +
			"• 'Add expense of $50 for groceries'\n" +
			"• 'Record income of $1000 from salary'\n" +
			"• 'New payment of $30 for entertainment'\n\n" +
			"Or use the Add Transaction form in the dashboard."}
	}

	if reHelpDelete.MatchString(prompt) {
		return Reply{Text: "❌ How to Delete Transactions:\n\n" +
			"You can:\n" +
			"• Say 'delete last transaction'\n" +
			"• Use the delete button in the transaction list\n\n" +
			"Note: Deletions cannot be undone!"}
	}

	return Reply{Text: "🤖 Finance Assistant Help:\n\n" +
		"1. 💰 View Finances:\n" +
		"• 'What's my balance?'\n" +
		"• 'Show recent transactions'\n" +
		"• 'How much did I spend on food?'\n\n" +
		"2. 📝 Manage Transactions:\n" +
		"• 'Add expense of $50 for groceries'\n" +
		"• 'Record income of $1000'\n" +
		"• 'Delete last transaction'\n\n" +
		"3. 💡 Get Insights:\n" +
		"• 'Give me savings tips'\n" +
		"• 'Analyze my spending'\n" +
		"• 'Show my top expenses'\n\n" +
		"What would you like to know more about?"}
}
