package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// StripMarkup flattens a text field that may carry stray tags or entities
// into plain printable text. Fields without markup pass through unchanged
// apart from whitespace cleanup.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return cleanup(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanup(s)
	}
	var buffer bytes.Buffer
	for _, node := range doc.Nodes {
		buffer.WriteString(GetText(node))
	}
	return cleanup(buffer.String())
}

func cleanup(s string) string {
	var out strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' {
			out.WriteRune(c)
		}
	}
	s = innerWhitespace.ReplaceAllString(out.String(), " ")
	return strings.Trim(s, " \n\t")
}
