package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

// Best-effort extraction from an add-transaction command. This is keyword
// matching, not a grammar: false positives are acceptable, crashing is not.
var (
	reAmount     = regexp.MustCompile(`\$?\s?(\d+(?:\.\d{2})?)`)
	reIncomeWord = regexp.MustCompile(`(?i)income|salary|earned|received`)
	reSplitDesc  = regexp.MustCompile(`for|from`)
)

// command is the parsed form of an add-transaction prompt.
type command struct {
	Amount      float64
	Type        string
	Description string
	Category    string
}

// extractCommand parses a free-text prompt into amount, type, description and
// category. ok is false when no numeric amount is present, in which case the
// caller must ask for clarification and mutate nothing.
func extractCommand(text string) (command, bool) {
	m := reAmount.FindStringSubmatch(text)
	if m == nil {
		return command{}, false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return command{}, false
	}

	// Ambiguous prompts default to expense; only an explicit income keyword
	// flips the type.
	txType := models.TypeExpense
	if reIncomeWord.MatchString(text) {
		txType = models.TypeIncome
	}

	// Everything after the first "for"/"from" is the description.
	description := ""
	if parts := reSplitDesc.Split(text, 2); len(parts) > 1 {
		description = strings.TrimSpace(parts[1])
	}

	return command{
		Amount:      amount,
		Type:        txType,
		Description: description,
		Category:    inferCategory(txType, description),
	}, true
}

// inferCategory matches the description against the type's keyword rules.
// First rule with a matching keyword wins; no match falls back to the
// catch-all category for the type.
func inferCategory(txType, description string) string {
	rules := expenseCategories
	fallback := otherExpenses
	if txType == models.TypeIncome {
		rules = incomeCategories
		fallback = otherIncome
	}

	lower := strings.ToLower(description)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Name
			}
		}
	}
	return fallback
}
