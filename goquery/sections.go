package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// ExtractSections returns the page's level2 and level3 sections as
// question-generation input, in document order. Sections without a
// heading get an empty title.
func ExtractSections(html string) ([]docsearch.PageSection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	var sections []docsearch.PageSection
	doc.Find("section.level2, section.level3").Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find("h2, h3").First().Text())
		sections = append(sections, docsearch.PageSection{
			Title:   title,
			Content: strings.TrimSpace(sel.Text()),
		})
	})

	return sections, nil
}
