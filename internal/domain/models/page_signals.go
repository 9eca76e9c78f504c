package models

// PageSignals is a flat record of the SEO-relevant facts extracted from one
// fetched document. It is computed once per request and never mutated after.
type PageSignals struct {
	Title                 string         `json:"title"`
	TitleLength           int            `json:"titleLength"`
	MetaDescription       string         `json:"metaDescription"`
	MetaDescriptionLength int            `json:"metaDescriptionLength"`
	HeadingCounts         HeadingCounts  `json:"headings"`
	Images                ImageCounts    `json:"images"`
	Links                 LinkCounts     `json:"links"`
	Social                SocialTags     `json:"social"`
	StructuredData        StructuredData `json:"structuredData"`
	Technical             TechnicalTags  `json:"technical"`
}

type HeadingCounts struct {
	H1    int `json:"h1"`
	H2    int `json:"h2"`
	H3    int `json:"h3"`
	Total int `json:"total"`
}

// ImageCounts preserves the invariant WithAlt + WithoutAlt == Total.
// An empty alt attribute counts as missing, same as no attribute at all.
type ImageCounts struct {
	Total      int `json:"total"`
	WithoutAlt int `json:"withoutAlt"`
	WithAlt    int `json:"withAlt"`
}

// LinkCounts is a three-way split: anchors that are neither internal nor
// external (mailto:, #fragment) still count toward Total.
type LinkCounts struct {
	Total    int `json:"total"`
	Internal int `json:"internal"`
	External int `json:"external"`
}

type SocialTags struct {
	HasOgTitle       bool `json:"hasOgTitle"`
	HasOgDescription bool `json:"hasOgDescription"`
	HasOgImage       bool `json:"hasOgImage"`
	HasTwitterCard   bool `json:"hasTwitterCard"`
}

type StructuredData struct {
	Present bool `json:"present"`
	Count   int  `json:"count"`
}

type TechnicalTags struct {
	HasViewport      bool `json:"hasViewport"`
	HasCanonical     bool `json:"hasCanonical"`
	HasRobots        bool `json:"hasRobots"`
	PreconnectCount  int  `json:"preconnectCount"`
	DNSPrefetchCount int  `json:"dnsPrefetchCount"`
}
