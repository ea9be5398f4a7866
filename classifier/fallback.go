package classifier

import "regexp"

// searchTermTable maps product mentions to the catalog search term used
// when the model-based intent classifier is unavailable. Ordered,
// first match wins.
var searchTermTable = []entry{
	{"pendente", regexp.MustCompile(`(?i)\bpendente(s)?\b`)},
	{"luminária", regexp.MustCompile(`(?i)\b(lumin[aá]ria(s)?|spot(s)?|trilho(s)?|plafon(s)?)\b`)},
	{"arandela", regexp.MustCompile(`(?i)\barandela(s)?\b`)},
	{"abajur", regexp.MustCompile(`(?i)\babajur(es)?\b`)},
	{"vaso", regexp.MustCompile(`(?i)\bvaso(s)?\b`)},
}

// FallbackProductIntent is the deterministic regex path of product-intent
// resolution. It reports whether the text mentions a purchasable product
// and which search term to use.
func FallbackProductIntent(text string) (bool, string) {
	if term := matchFirst(searchTermTable, text); term != "" {
		return true, term
	}
	return false, ""
}
