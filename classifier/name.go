package classifier

import (
	"regexp"
	"strings"
	"unicode"
)

// namePatterns are the self-introduction phrases tried in order.
// Each captures the token immediately after the phrase; a single
// letter is never a name, so captures require at least two.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmeu nome é\s+([\p{L}]{2,})`),
	regexp.MustCompile(`(?i)\bme chamo\s+([\p{L}]{2,})`),
	regexp.MustCompile(`(?i)\bpode me chamar de\s+([\p{L}]{2,})`),
	regexp.MustCompile(`(?i)\b(?:eu\s+)?sou\s+(?:[oa]\s+)?([\p{L}]{2,})`),
	regexp.MustCompile(`(?i)\baqui é\s+(?:[oa]\s+)?([\p{L}]{2,})`),
}

// bareName matches a message that is nothing but a single word of
// 2 to 20 letters, diacritics allowed.
var bareName = regexp.MustCompile(`^[\p{L}]{2,20}$`)

// ExtractFirstName attempts to pull a first name out of free text.
// It tries the introduction phrases first and falls back to treating a
// bare single-word message as the name itself. Returns "" when nothing
// matches. The result is normalized: first token only, capitalized.
func ExtractFirstName(text string) string {
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return normalizeName(m[1])
		}
	}
	trimmed := strings.TrimSpace(text)
	if bareName.MatchString(trimmed) {
		return normalizeName(trimmed)
	}
	return ""
}

func normalizeName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	runes := []rune(strings.ToLower(fields[0]))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
