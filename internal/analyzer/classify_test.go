package analyzer

import "testing"

func TestClassify(t *testing.T) {
	facts := fact("A", "1") + fact("B", "2") + fact("C", "3") + fact("D", "4")

	tests := []struct {
		name   string
		markup string
		want   StatementCategory
	}{
		{
			name:   "balance sheet beats revenue keyword",
			markup: table(row("Total Assets", facts), row("Stockholders' Equity"), row("Deferred revenue")),
			want:   BalanceSheet,
		},
		{
			name:   "curly apostrophe equity",
			markup: table(row("Total shareholders’ equity", facts)),
			want:   BalanceSheet,
		},
		{
			name:   "cash flow beats net income",
			markup: table(row("Net income", facts), row("Cash generated by operating activities")),
			want:   CashFlow,
		},
		{
			name:   "income statement",
			markup: table(row("Net sales", facts), row("Gross margin")),
			want:   IncomeStatement,
		},
		{
			name:   "case and whitespace insensitive",
			markup: table(row("EARNINGS\n   PER   SHARE", facts)),
			want:   IncomeStatement,
		},
		{
			name:   "keywords without facts",
			markup: table(row("Total Assets", "1", "2", "3", "4"), row("Stockholders' Equity")),
			want:   NoStatement,
		},
		{
			name:   "three facts is not enough",
			markup: table(row("Net sales", fact("A", "1")+fact("B", "2")+fact("C", "3"))),
			want:   NoStatement,
		},
		{
			name:   "facts without keywords",
			markup: table(row("Weighted-average shares", facts)),
			want:   NoStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(firstTable(t, tt.markup))
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassificationRuleOrder(t *testing.T) {
	rules := ClassificationRules()
	want := []StatementCategory{BalanceSheet, CashFlow, IncomeStatement}
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.Category != want[i] {
			t.Errorf("rule %d = %q, want %q", i, r.Category, want[i])
		}
		if len(r.Keywords) == 0 {
			t.Errorf("rule %q has no keywords", r.Category)
		}
	}

	// Mutating the copy must not affect classification.
	rules[0].Category = NoStatement
	if ClassificationRules()[0].Category != BalanceSheet {
		t.Error("ClassificationRules exposed internal slice")
	}
}

func TestTableCandidateNumericFacts(t *testing.T) {
	c := firstTable(t, balanceTable)
	if got := c.NumericFacts(); got != 7 {
		t.Errorf("NumericFacts() = %d, want 7", got)
	}
	if c.Text == "" || c.Text != normalizeText(c.Text) {
		t.Errorf("candidate text not normalized: %q", c.Text)
	}
}
