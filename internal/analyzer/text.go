package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// nodeText joins the trimmed text pieces under n with single spaces,
// skipping empty pieces.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// selectionText is nodeText over every node of a selection.
func selectionText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		if s := nodeText(n); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// normalizeText lowercases s and collapses whitespace runs to one space.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// countElements counts descendants of the selection whose tag name equals
// name. Namespaced inline XBRL tags keep their prefix in the parsed tree.
func countElements(sel *goquery.Selection, name string) int {
	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && strings.EqualFold(c.Data, name) {
				count++
			}
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return count
}
