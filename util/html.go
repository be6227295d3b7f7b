package util

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextContent parses the input as an HTML fragment and concatenates its text
// nodes, separated by single spaces. Markup is discarded.
func TextContent(fragment string) string {

	nodes, err := html.ParseFragment(
		io.MultiReader(
			strings.NewReader("<body>"),
			strings.NewReader(fragment),
			strings.NewReader("</body>"),
		),
		&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Html,
			Data:     "html",
		},
	)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, node := range nodes {
		collectText(node, &sb)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(node *html.Node, sb *strings.Builder) {
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		sb.WriteString(" ")
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

// Excerpt makes a plain-text teaser of at most maxRunes runes from an HTML fragment.
func Excerpt(fragment string, maxRunes int) string {
	return Trunc(TextContent(fragment), maxRunes)
}
