package analyzer

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"—", 0, false},
		{"-", 0, false},
		{"–", 0, false},
		{"— —", 0, false},
		{"$", 0, false},
		{"N/A", 0, false},
		{"66,613", 66613, true},
		{"1,234", 1234, true},
		{"(1,234.5)", -1234.5, true},
		{"( 1,234 )", -1234, true},
		{"(-5)", -5, true},
		{"-42", -42, true},
		{"$ 12.34", 12.34, true},
		{"1 234", 1234, true},
		{"0.5%", 0.5, true},
		{" 94,930 ", 94930, true},
		{"1.57 ▲ +11.1%", 1.57, true},
		{"12.", 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumberParenNeedsClosing(t *testing.T) {
	got, ok := ParseNumber("(see note 4")
	if !ok || got != 4 {
		t.Errorf("ParseNumber = %v, %v; want 4, true", got, ok)
	}
}
