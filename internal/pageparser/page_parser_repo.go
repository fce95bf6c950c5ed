package pageparser

import (
	"strings"

	"html-reader/internal/domain/data"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

type ParserRepo struct {
	Logger *zap.SugaredLogger
}

func NewParserRepo(logger *zap.SugaredLogger) *ParserRepo {
	return &ParserRepo{
		Logger: logger,
	}
}

// Parse always extracts the title and meta description; a missing title is
// not an error. The error path only triggers when the input cannot be
// tokenized at all, which the lenient parser makes close to unreachable.
func (repo *ParserRepo) Parse(rawHTML string) (*ParsedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		repo.Logger.Warnw("Failed to tokenize document", "err", err)
		return nil, data.NewParseError(err.Error(), err)
	}

	parsed := &ParsedContent{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", "")),
	}

	if root := doc.Get(0); root != nil {
		parsed.Text = extractVisibleText(root)
	}

	return parsed, nil
}

// extractVisibleText walks the body subtree in document order, skipping
// non-visible elements and collapsing whitespace runs to single spaces.
func extractVisibleText(root *html.Node) string {
	start := findBody(root)
	if start == nil {
		start = root
	}

	var chunks []string
	collectText(start, &chunks)

	return strings.Join(strings.Fields(strings.Join(chunks, " ")), " ")
}

func findBody(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && node.Data == "body" {
		return node
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if body := findBody(child); body != nil {
			return body
		}
	}

	return nil
}

func collectText(node *html.Node, chunks *[]string) {
	if node.Type == html.ElementNode {
		if _, skip := skippedElements[node.Data]; skip {
			return
		}
	}

	if node.Type == html.TextNode {
		*chunks = append(*chunks, node.Data)
		return
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, chunks)
	}
}
