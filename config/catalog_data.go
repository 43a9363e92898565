package config

// VocabEntry maps a canonical label to the substrings that identify it.
// Entries are evaluated in order; the first synonym hit wins.
type VocabEntry struct {
	Label    string
	Synonyms []string
}

// CatalogData carries the reference tables the classifier and normalizer
// depend on. It is built once at startup and injected, so tests and
// alternate locales can swap it without touching package state.
type CatalogData struct {
	KnownBrands    []string
	KnownFactories []string

	GenderVocab  []VocabEntry
	GroupVocab   []VocabEntry
	QualityVocab []VocabEntry
}

// DefaultCatalogData returns the reference tables for the aroma-euro catalog.
func DefaultCatalogData() *CatalogData {
	return &CatalogData{
		KnownBrands: []string{
			"Tom Ford", "Chanel", "Dior", "Christian Dior", "Creed", "Amouage",
			"Maison Francis Kurkdjian", "Byredo", "Le Labo", "Escentric Molecules",
			"Tiziana Terenzi", "Ex Nihilo", "Nasomatto", "Orto Parisi",
			"Giorgio Armani", "Versace", "Gucci", "Prada", "Yves Saint Laurent",
			"Givenchy", "Hermès", "Bulgari", "Dolce&Gabbana", "Paco Rabanne",
			"Lacoste", "Hugo Boss", "Calvin Klein", "Antonio Banderas",
			"Lanvin", "Attar Collection", "Marc-Antoine Barrois", "Ajmal",
			"Victoria's Secret", "Thomas Kosmala",
		},
		KnownFactories: []string{
			"Bin Tammam", "EPS", "Givaudan", "Givaudan Premium", "Givaudan SuperLux",
			"Hamidi", "Iberchem", "LZ AG", "Lz", "LZ", "MG Gulcicek", "Reiha",
			"Argeville", "SELUZ", "Seluz", "LUZI", "Luzi",
		},

		GenderVocab: []VocabEntry{
			{Label: "unisex", Synonyms: []string{"унисекс", "unisex"}},
			{Label: "female", Synonyms: []string{"жен", "female", "women"}},
			{Label: "male", Synonyms: []string{"муж", "male", "men"}},
		},
		GroupVocab: []VocabEntry{
			{Label: "Floral", Synonyms: []string{"цветочн", "floral"}},
			{Label: "Citrus", Synonyms: []string{"цитрус", "citrus"}},
			{Label: "Woody", Synonyms: []string{"древесн", "woody"}},
			{Label: "Fresh", Synonyms: []string{"свеж", "fresh"}},
			{Label: "Oriental", Synonyms: []string{"восточн", "oriental"}},
			{Label: "Gourmand", Synonyms: []string{"гурман", "gourmand"}},
			{Label: "Fougere", Synonyms: []string{"фужер", "fougere"}},
			{Label: "Chypre", Synonyms: []string{"шипр", "chypre"}},
			{Label: "Amber", Synonyms: []string{"амбр", "amber"}},
			{Label: "Musk", Synonyms: []string{"мускус", "musk"}},
		},
		QualityVocab: []VocabEntry{
			{Label: "Premium", Synonyms: []string{"премиум", "premium"}},
			{Label: "Lux", Synonyms: []string{"люкс", "lux"}},
			{Label: "Standard", Synonyms: []string{"стандарт", "standard"}},
			{Label: "Econom", Synonyms: []string{"эконом", "econom"}},
		},
	}
}
