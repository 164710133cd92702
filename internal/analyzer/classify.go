package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StatementCategory is the financial statement a table represents.
type StatementCategory string

const (
	IncomeStatement StatementCategory = "income_statement"
	BalanceSheet    StatementCategory = "balance_sheet"
	CashFlow        StatementCategory = "cash_flow"
	NoStatement     StatementCategory = "none"
)

// MinNumericFacts is the number of inline XBRL numeric facts a table must
// carry before it is considered a data table. Tables of contents share the
// statement vocabulary but tag no facts.
const MinNumericFacts = 4

// numericFactTag is the inline XBRL element wrapping a tagged number.
const numericFactTag = "ix:nonfraction"

// ClassificationRule maps a statement category to its marker phrases.
type ClassificationRule struct {
	Category StatementCategory
	Keywords []string
}

// classificationRules are evaluated in order; the first rule with a matching
// keyword decides the category.
var classificationRules = []ClassificationRule{
	{
		Category: BalanceSheet,
		Keywords: []string{
			"total assets",
			"liabilities and equity",
			"liabilities and shareholders",
			"stockholders’ equity",
			"stockholders' equity",
			"shareholders’ equity",
			"shareholders' equity",
		},
	},
	{
		Category: CashFlow,
		Keywords: []string{
			"net cash provided",
			"operating activities",
			"investing activities",
			"financing activities",
		},
	},
	{
		Category: IncomeStatement,
		Keywords: []string{
			"net sales",
			"revenue",
			"gross margin",
			"operating income",
			"net income",
			"earnings per share",
		},
	},
}

// ClassificationRules returns a copy of the ordered rule list.
func ClassificationRules() []ClassificationRule {
	out := make([]ClassificationRule, len(classificationRules))
	copy(out, classificationRules)
	return out
}

// TableCandidate is one table element together with its normalized text.
type TableCandidate struct {
	Selection *goquery.Selection
	Text      string
}

// NewTableCandidate wraps a single table selection.
func NewTableCandidate(sel *goquery.Selection) TableCandidate {
	return TableCandidate{
		Selection: sel,
		Text:      normalizeText(selectionText(sel)),
	}
}

// NumericFacts counts the inline XBRL numeric facts inside the table.
func (c TableCandidate) NumericFacts() int {
	if c.Selection == nil {
		return 0
	}
	return countElements(c.Selection, numericFactTag)
}

// Classify decides which statement the table holds.
func Classify(c TableCandidate) StatementCategory {
	if c.NumericFacts() < MinNumericFacts {
		return NoStatement
	}
	return classifyText(c.Text)
}

func classifyText(text string) StatementCategory {
	for _, rule := range classificationRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return NoStatement
}
