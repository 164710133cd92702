// Package analyzer locates the financial statement tables inside an SEC
// periodic filing, parses their figures and annotates period-over-period
// changes.
package analyzer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberRun matches the first numeric run: optional minus, digits with
// grouping commas, optional decimal part.
var numberRun = regexp.MustCompile(`-?\d[\d,]*\.?\d*`)

// Placeholders filers print in place of a value.
var dashPlaceholders = map[string]bool{
	"—":   true,
	"–":   true,
	"-":   true,
	"— —": true,
	"——":  true,
}

// ParseNumber parses financial number text such as "66,613", "(1,234.5)"
// or "$ 12.3". It returns false when the text holds no recognizable number;
// dash placeholders are "no value", not zero.
func ParseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" || dashPlaceholders[text] {
		return 0, false
	}

	negative := isParenNegative(text)
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	run := numberRun.FindString(compact)
	if run == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(run, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if negative {
		return -math.Abs(v), true
	}
	return v, true
}

// isParenNegative reports whether text wraps its value in accounting
// parentheses: an opening paren with a closing one after it.
func isParenNegative(text string) bool {
	open := strings.Index(text, "(")
	return open >= 0 && strings.LastIndex(text, ")") > open
}
