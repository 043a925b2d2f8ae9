package assistant

// categoryRule maps a category name to the trigger words that select it.
// Rules are ordered association lists: the first rule whose keyword appears
// wins, so iteration order is deterministic.
type categoryRule struct {
	Name     string
	Keywords []string
}

var expenseCategories = []categoryRule{
	{"Housing", []string{"rent", "mortgage", "utilities"}},
	{"Food & Dining", []string{"food", "grocery", "restaurant"}},
	{"Transportation", []string{"transport", "fuel", "gas", "bus"}},
	{"Shopping", []string{"shopping", "clothes", "electronics"}},
	{"Entertainment", []string{"entertainment", "movie", "subscription"}},
}

var incomeCategories = []categoryRule{
	{"salary", []string{"salary", "wage", "paycheck"}},
	{"Business Income", []string{"business", "company"}},
	{"Investments", []string{"investment", "dividend", "interest"}},
	{"Freelancing/Side Hustles", []string{"freelance", "freelancing", "contract"}},
	{"Bonuses", []string{"bonus", "commission"}},
}

// knownCategories is the fixed list the category-spending query matches
// prompts against, by full name or first word, case-insensitive.
var knownCategories = []string{
	"Housing", "Food & Dining", "Transportation", "Shopping", "Entertainment",
	"Salary", "Business Income", "Investments", "Freelancing", "Bonuses",
}

// Fallback categories when no keyword matches.
const (
	otherIncome   = "Other Income"
	otherExpenses = "Other Expenses"
)
