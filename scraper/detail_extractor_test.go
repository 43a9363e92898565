package scraper

import "testing"

const detailPageHTML = `
<html><body>
<div class="ty-features-list">
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Артикул:</span>
    <span class="ty-feature-value"><em>TF-1001</em></span>
  </div>
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Качество:</span>
    <span>Люкс</span>
  </div>
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Бренд:</span>
    <span><em>Tom Ford</em></span>
  </div>
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Пол:</span>
    <span>Женский</span>
  </div>
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Группа аромата:</span>
    <span><em>Цветочные, восточные</em></span>
  </div>
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Фабрика:</span>
    <span>Givaudan</span>
  </div>
  <div class="ty-control-group">
    <span class="ty-product-feature__label">Объем:</span>
    <span>30 мл</span>
  </div>
</div>
</body></html>`

func TestParseDetailAttributes(t *testing.T) {
	doc := docFromHTML(t, detailPageHTML)
	details := ParseDetailAttributes(doc)

	if details.Article != "TF-1001" {
		t.Errorf("article = %q, want TF-1001", details.Article)
	}
	if details.Quality != "Люкс" {
		t.Errorf("quality = %q", details.Quality)
	}
	if details.BrandDetailed != "Tom Ford" {
		t.Errorf("brand = %q", details.BrandDetailed)
	}
	if details.Gender != "Женский" {
		t.Errorf("gender = %q", details.Gender)
	}
	if details.FragranceGroup != "Цветочные, восточные" {
		t.Errorf("fragrance group = %q", details.FragranceGroup)
	}
	if details.FactoryDetailed != "Givaudan" {
		t.Errorf("factory = %q", details.FactoryDetailed)
	}
}

// A page without the attributes block yields empty attributes, not an error.
func TestParseDetailAttributesMissingBlock(t *testing.T) {
	doc := docFromHTML(t, `<html><body><h1>Перчатки</h1></body></html>`)

	details := ParseDetailAttributes(doc)
	if !details.IsEmpty() {
		t.Errorf("expected empty attributes, got %+v", details)
	}
}

func TestParseDetailAttributesIgnoresUnknownLabels(t *testing.T) {
	doc := docFromHTML(t, detailPageHTML)
	details := ParseDetailAttributes(doc)

	// "Объем" is not a recognized label and must land nowhere.
	for _, v := range []string{details.Article, details.Quality, details.BrandDetailed,
		details.Gender, details.FragranceGroup, details.FactoryDetailed} {
		if v == "30 мл" {
			t.Fatalf("unrecognized label value leaked into attributes: %+v", details)
		}
	}
}
