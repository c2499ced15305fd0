// Package extract implements the Extractor interface.
// It pulls an article out of a full HTML page:
//  1. The first <title> text, or NoTitle when the page has none
//  2. The text of every <p> element, in document order, joined by spaces
//
// In readability mode the page is first narrowed to its main article with
// go-readability, then step 2 runs on that fragment.
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/gaurav-prasanna/articlescore/core"
)

// NoTitle is the title recorded for pages without a <title> element.
const NoTitle = "No Title Found"

// Mode selects how the article body is located.
type Mode string

const (
	// ModeParagraphs collects every <p> in the page.
	ModeParagraphs Mode = "paragraphs"
	// ModeReadability collects the <p> elements of the readability article only.
	ModeReadability Mode = "readability"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeParagraphs:
		return ModeParagraphs, nil
	case ModeReadability:
		return ModeReadability, nil
	default:
		return "", fmt.Errorf("unknown body mode %q (want %q or %q)", s, ModeParagraphs, ModeReadability)
	}
}

// ArticleExtractor extracts titles and paragraph text with goquery.
type ArticleExtractor struct {
	mode Mode
}

// New creates an ArticleExtractor for the given mode.
func New(mode Mode) *ArticleExtractor {
	if mode == "" {
		mode = ModeParagraphs
	}
	return &ArticleExtractor{mode: mode}
}

// Extract parses raw HTML and returns its title and paragraph text.
// A page without <title> gets NoTitle; an empty <title> yields "".
// pageURL is only used by readability mode to resolve relative links.
func (e *ArticleExtractor) Extract(html string, pageURL string) (*core.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := NoTitle
	if sel := doc.Find("title").First(); sel.Length() > 0 {
		title = sel.Text()
	}

	body := doc.Selection
	if e.mode == ModeReadability {
		body, err = readableContent(html, pageURL)
		if err != nil {
			return nil, err
		}
	}

	text, fragment := collectParagraphs(body)
	return &core.Article{
		Title:    title,
		Body:     text,
		BodyHTML: fragment,
	}, nil
}

// collectParagraphs joins the text of every <p> under sel with single
// spaces and trims the result. It also returns the paragraphs' outer HTML.
func collectParagraphs(sel *goquery.Selection) (string, string) {
	var (
		texts    []string
		fragment strings.Builder
	)
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		texts = append(texts, p.Text())
		if outer, err := goquery.OuterHtml(p); err == nil {
			fragment.WriteString(outer)
			fragment.WriteByte('\n')
		}
	})
	return strings.TrimSpace(strings.Join(texts, " ")), fragment.String()
}

func readableContent(html string, pageURL string) (*goquery.Selection, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("parsing readable content: %w", err)
	}
	return doc.Selection, nil
}
