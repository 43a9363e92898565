package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scentbase/models"
)

// attributeLabels maps a label substring (matched case-insensitively) to the
// attribute it fills. Unrecognized labels are ignored.
var attributeLabels = []struct {
	substring string
	assign    func(*models.DetailAttributes, string)
}{
	{"артикул", func(d *models.DetailAttributes, v string) { d.Article = v }},
	{"качество", func(d *models.DetailAttributes, v string) { d.Quality = v }},
	{"бренд", func(d *models.DetailAttributes, v string) { d.BrandDetailed = v }},
	{"пол", func(d *models.DetailAttributes, v string) { d.Gender = v }},
	{"группа аромата", func(d *models.DetailAttributes, v string) { d.FragranceGroup = v }},
	{"фабрика", func(d *models.DetailAttributes, v string) { d.FactoryDetailed = v }},
}

// DetailExtractor scrapes the structured attributes block from a product
// detail page.
type DetailExtractor struct {
	fetcher *PageFetcher
}

// NewDetailExtractor creates a DetailExtractor over the shared fetcher.
func NewDetailExtractor(fetcher *PageFetcher) *DetailExtractor {
	return &DetailExtractor{fetcher: fetcher}
}

// Extract fetches the detail page and returns whatever attributes it
// carries. A page without an attributes block yields empty attributes and
// no error; only fetch-level failures are returned.
func (e *DetailExtractor) Extract(ctx context.Context, url string) (models.DetailAttributes, error) {
	doc, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return models.DetailAttributes{}, err
	}
	return ParseDetailAttributes(doc), nil
}

// ParseDetailAttributes reads the labeled feature list of a detail page.
func ParseDetailAttributes(doc *goquery.Document) models.DetailAttributes {
	var details models.DetailAttributes

	features := doc.Find("div.ty-features-list").First()
	if features.Length() == 0 {
		return details
	}

	features.Find(".ty-control-group").Each(func(_ int, group *goquery.Selection) {
		labelElem := group.Find("span.ty-product-feature__label").First()
		if labelElem.Length() == 0 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(labelElem.Text()))
		value := featureValue(group)
		if value == "" {
			return
		}

		for _, attr := range attributeLabels {
			if strings.Contains(label, attr.substring) {
				attr.assign(&details, value)
				break
			}
		}
	})

	return details
}

// featureValue finds the value span next to the label. The value is nested
// in an em tag on most pages, directly in the span on older ones.
func featureValue(group *goquery.Selection) string {
	value := ""
	group.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if span.HasClass("ty-product-feature__label") {
			return true
		}
		if em := span.Find("em").First(); em.Length() > 0 {
			value = strings.TrimSpace(em.Text())
		} else {
			value = strings.TrimSpace(span.Text())
		}
		return false
	})
	return value
}
