package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// minSentenceLength drops fragments such as list bullets and stray initials
const minSentenceLength = 3

// VisibleText extracts the text nodes of an HTML document, skipping
// scripts and styles. Block elements end a line.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return visibleText(doc), nil
}

func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return buf.String()
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "td", "th", "h1", "h2", "h3", "h4", "h5", "h6",
		"section", "article", "header", "footer", "blockquote", "pre", "title":
		return true
	}
	return false
}

// SplitSentences splits text on sentence terminators followed by whitespace
// and on line breaks. Clinical notes rarely punctuate section lines, so a
// newline always ends a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len([]rune(sentence)) >= minSentenceLength {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		if r == '\n' || r == '\r' {
			flush()
			continue
		}

		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// decimals like "2.5" do not end a sentence
			if i+1 < len(text) && isSpace(text[i+1]) {
				flush()
			}
		}
	}
	flush()

	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
