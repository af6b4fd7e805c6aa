// Package goquery provides HTML parsing implementations: the content-unit
// extractor consumed by the index builder and link extraction for page
// collection.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docsearch"
)

// maxSectionLevel is the deepest section nesting carrying a levelN class
// in the generated markup.
const maxSectionLevel = 4

// Compile-time interface verification.
var _ docsearch.Extractor = (*Extractor)(nil)

// Extractor parses page markup into content units, one per heading,
// paragraph or list item, in document order.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract implements docsearch.Extractor.
func (e *Extractor) Extract(pageURL, html string) ([]docsearch.ContentUnit, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "No title"
	}

	var units []docsearch.ContentUnit
	doc.Find("h1, h2, p, li").Each(func(i int, sel *goquery.Selection) {
		units = append(units, docsearch.ContentUnit{
			URL:       pageURL,
			Type:      goquery.NodeName(sel),
			Order:     i,
			ID:        attrPtr(sel, "id"),
			Ancestors: sectionAncestors(sel),
			Title:     title,
			RawText:   sel.Text(),
		})
	})
	return units, nil
}

// sectionAncestors walks the element's enclosing <section class="levelN">
// elements and returns one ref per section heading, outermost first.
func sectionAncestors(sel *goquery.Selection) []docsearch.SectionRef {
	var refs []docsearch.SectionRef

	sel.ParentsFiltered("section").Each(func(_ int, section *goquery.Selection) {
		for level := 1; level <= maxSectionLevel; level++ {
			if !section.HasClass(fmt.Sprintf("level%d", level)) {
				continue
			}
			heading := section.Find(fmt.Sprintf("h%d", level)).First()
			if heading.Length() > 0 {
				refs = append(refs, docsearch.SectionRef{
					Type: goquery.NodeName(heading),
					ID:   attrPtr(section, "id"),
					Text: heading.Text(),
				})
			}
			break
		}
	})

	// Parents come closest-first; ancestors are reported outermost-first.
	for i, j := 0, len(refs)-1; i < j; i, j = i+1, j-1 {
		refs[i], refs[j] = refs[j], refs[i]
	}
	return refs
}

func attrPtr(sel *goquery.Selection, name string) *string {
	if v, ok := sel.Attr(name); ok {
		return &v
	}
	return nil
}
