package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FlatEpsilon is the absolute percent change below which a badge shows as flat.
const FlatEpsilon = 0.1

// BadgeClass marks injected badge spans. Direction classes are
// "delta-up", "delta-down", "delta-flat" and "delta-na".
const BadgeClass = "delta-badge"

// Badge directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
	DirectionFlat = "flat"
	DirectionNA   = "na"
)

const (
	glyphUp   = "▲"
	glyphDown = "▼"
	glyphFlat = "•"
)

var currencySymbols = map[string]bool{"$": true, "€": true, "£": true, "¥": true}

// periodLabel matches column header text naming a period: dates and
// "months ended" style labels.
var periodLabel = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b|\b(months|weeks|year) ended\b`)

// bareYear matches a cell holding only a four-digit year.
var bareYear = regexp.MustCompile(`^(19|20)\d{2}$`)

// Badge is the rendered form of one percent change.
type Badge struct {
	Text      string
	Direction string
}

// NewBadge renders a percent change. ok=false yields the "N/A" badge.
func NewBadge(pct float64, ok bool) Badge {
	if !ok {
		return Badge{Text: "N/A", Direction: DirectionNA}
	}
	switch {
	case math.Abs(pct) < FlatEpsilon:
		// unsigned so tiny moves never print as "-0.0%"
		return Badge{Text: glyphFlat + " 0.0%", Direction: DirectionFlat}
	case pct > 0:
		return Badge{Text: fmt.Sprintf("%s %+.1f%%", glyphUp, pct), Direction: DirectionUp}
	default:
		return Badge{Text: fmt.Sprintf("%s %+.1f%%", glyphDown, pct), Direction: DirectionDown}
	}
}

// Class returns the CSS class list for the badge span.
func (b Badge) Class() string {
	return BadgeClass + " delta-" + b.Direction
}

func (b Badge) node() *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: b.Class()}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: b.Text})
	return span
}

// appendBadge adds a space and the badge after the cell's existing content.
func appendBadge(cell *html.Node, b Badge) {
	cell.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
	cell.AppendChild(b.node())
}

type numericCell struct {
	node  *html.Node
	value float64
}

// rowAnnotator decides whether a row's numeric cells get badges and adds
// them. It reports whether the row was modified.
type rowAnnotator func(cells []numericCell) bool

// AnnotateIncome adds change badges to an income statement table. In each
// row the first four numeric cells are read as (current quarter, prior
// quarter, current year-to-date, prior year-to-date); the quarter change is
// appended to the first cell and the year-to-date change to the third.
// Rows with fewer than four numeric cells, column header rows and rows
// that already carry badges are left alone. Empty input is returned unchanged.
func AnnotateIncome(tableHTML string) string {
	return annotateTable(tableHTML, annotateFourColumn)
}

// AnnotateComparative adds a single change badge to rows holding exactly two
// numeric cells (current, prior), the layout of balance sheets and cash
// flow statements.
func AnnotateComparative(tableHTML string) string {
	return annotateTable(tableHTML, annotateTwoColumn)
}

func annotateFourColumn(cells []numericCell) bool {
	if len(cells) < 4 || hasBadge(cells[0].node) || hasBadge(cells[2].node) {
		return false
	}
	appendBadge(cells[0].node, NewBadge(PercentChange(cells[0].value, &cells[1].value)))
	appendBadge(cells[2].node, NewBadge(PercentChange(cells[2].value, &cells[3].value)))
	return true
}

func annotateTwoColumn(cells []numericCell) bool {
	if len(cells) != 2 || hasBadge(cells[0].node) {
		return false
	}
	appendBadge(cells[0].node, NewBadge(PercentChange(cells[0].value, &cells[1].value)))
	return true
}

func annotateTable(tableHTML string, annotate rowAnnotator) string {
	if strings.TrimSpace(tableHTML) == "" {
		return tableHTML
	}
	doc, err := ParseDocument(tableHTML)
	if err != nil {
		return tableHTML
	}

	changed := false
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells, header := rowCells(row)
		if header {
			return
		}
		if annotate(cells) {
			changed = true
		}
	})
	if !changed {
		return tableHTML
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return tableHTML
	}
	return out
}

// rowCells collects the row's numeric data cells in order. Empty cells and
// bare currency symbols are skipped. header is true when the row carries a
// period label and every other filled cell is a label or a bare year. Rows of
// bare numbers are data, even when every value looks like a year.
func rowCells(row *goquery.Selection) (cells []numericCell, header bool) {
	labels, years, filled := 0, 0, 0
	row.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
		n := td.Get(0)
		text := nodeText(n)
		if text == "" || currencySymbols[text] {
			return
		}
		filled++
		switch {
		case periodLabel.MatchString(text):
			labels++
		case bareYear.MatchString(text):
			years++
		}
		if v, ok := ParseNumber(text); ok {
			cells = append(cells, numericCell{node: n, value: v})
		}
	})
	return cells, labels > 0 && labels+years == filled
}

// hasBadge reports whether n already contains an injected badge.
func hasBadge(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			for _, a := range c.Attr {
				if a.Key == "class" && strings.Contains(" "+a.Val+" ", " "+BadgeClass+" ") {
					return true
				}
			}
		}
		if hasBadge(c) {
			return true
		}
	}
	return false
}
