// Package classifier derives categorical labels from raw chat text.
// Everything here is a pure function of its input: no I/O, no state.
package classifier

import "regexp"

// Category names used as the metric category key.
const (
	CategoryRoom    = "room"
	CategoryProduct = "product"
	CategoryStyle   = "style"
	CategoryColor   = "color"
	CategoryIntent  = "intent"
)

// entry is one (label, pattern) pair of a dictionary table.
// Tables are scanned in order; the first matching entry wins.
type entry struct {
	label   string
	pattern *regexp.Regexp
}

var roomTable = []entry{
	{"sala", regexp.MustCompile(`(?i)\bsala(s)?\b`)},
	{"quarto", regexp.MustCompile(`(?i)\bquarto(s)?\b`)},
	{"cozinha", regexp.MustCompile(`(?i)\bcozinha(s)?\b`)},
	{"banheiro", regexp.MustCompile(`(?i)\bbanheiro(s)?\b`)},
	{"varanda", regexp.MustCompile(`(?i)\bvaranda(s)?\b`)},
	{"home office", regexp.MustCompile(`(?i)\b(home ?office|escrit[oó]rio)\b`)},
}

var productTable = []entry{
	{"vaso", regexp.MustCompile(`(?i)\bvaso(s)?\b`)},
	{"abajur", regexp.MustCompile(`(?i)\babajur(es)?\b`)},
	{"pendente", regexp.MustCompile(`(?i)\bpendente(s)?\b`)},
	{"arandela", regexp.MustCompile(`(?i)\barandela(s)?\b`)},
	{"luminária", regexp.MustCompile(`(?i)\blumin[aá]ria(s)?\b`)},
}

var styleTable = []entry{
	{"minimalista", regexp.MustCompile(`(?i)\bminimal(ista|ismo)\b`)},
	{"escandinavo", regexp.MustCompile(`(?i)\bescandin(av|avo)\b`)},
	{"industrial", regexp.MustCompile(`(?i)\bindustrial\b`)},
	{"rústico", regexp.MustCompile(`(?i)\br[uú]stic[oa]\b`)},
	{"moderno", regexp.MustCompile(`(?i)\bmoderno\b`)},
	{"boho", regexp.MustCompile(`(?i)\bboho\b`)},
}

var colorTable = []entry{
	{"bege", regexp.MustCompile(`(?i)\bbege\b`)},
	{"cinza", regexp.MustCompile(`(?i)\bcinza\b`)},
	{"preto", regexp.MustCompile(`(?i)\bpreto\b`)},
	{"branco", regexp.MustCompile(`(?i)\bbranco\b`)},
	{"terracota", regexp.MustCompile(`(?i)\bterracota\b`)},
	{"madeira", regexp.MustCompile(`(?i)\bmadeira\b`)},
}

var intentTable = []entry{
	{"orçamento", regexp.MustCompile(`(?i)\bor[cç]a?ment(o|a)\b`)},
	{"compra", regexp.MustCompile(`(?i)\bcompr(ar|a|ando|aria)\b`)},
	{"descoberta", regexp.MustCompile(`(?i)\bideia(s)?|inspira(c|ç)[aã]o|dica(s)?\b`)},
}

// doubtTokens matches interrogative/modal words. The right guard is a
// non-letter (or end of text) instead of \b because the accented "será"
// never satisfies RE2's ASCII word boundary.
var doubtTokens = regexp.MustCompile(`(?i)\b(duv[ií]da|d[uú]vida|como|qual|quanto|pode|devo|ser[aá])([^\p{L}]|$)`)

// Tags is the full classification of one user message.
type Tags struct {
	Room     string
	Product  string
	Style    string
	Color    string
	Intent   string
	HasDoubt bool
}

// Label is one (category, item) pair for metric aggregation.
type Label struct {
	Category string
	Item     string
}

// Classify runs all five dictionary tables plus the doubt detector
// against the given text. Identical input always yields identical tags.
func Classify(text string) Tags {
	return Tags{
		Room:     matchFirst(roomTable, text),
		Product:  matchFirst(productTable, text),
		Style:    matchFirst(styleTable, text),
		Color:    matchFirst(colorTable, text),
		Intent:   matchFirst(intentTable, text),
		HasDoubt: HasDoubt(text),
	}
}

// HasDoubt reports whether the text reads like a question: it contains
// a question mark or one of the interrogative/modal tokens.
func HasDoubt(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] == '?' {
			return true
		}
	}
	return doubtTokens.MatchString(text)
}

// Labels returns the non-empty (category, item) pairs of the tags,
// in the fixed category order used by the metrics aggregator.
func (t Tags) Labels() []Label {
	all := []Label{
		{CategoryRoom, t.Room},
		{CategoryProduct, t.Product},
		{CategoryStyle, t.Style},
		{CategoryColor, t.Color},
		{CategoryIntent, t.Intent},
	}
	out := all[:0]
	for _, l := range all {
		if l.Item != "" {
			out = append(out, l)
		}
	}
	return out
}

func matchFirst(table []entry, text string) string {
	for _, e := range table {
		if e.pattern.MatchString(text) {
			return e.label
		}
	}
	return ""
}
