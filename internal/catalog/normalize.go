package catalog

import (
	"strings"
	"unicode"
)

// arabicFolds collapses Arabic letter variants that riders use
// interchangeably: hamza-carrying alef forms to bare alef, taa marbuta to
// haa, alef maqsura to yaa, hamza on waw/yaa to the bare letter, and the
// tatweel stretch character to nothing.
var arabicFolds = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ة", "ه",
	"ى", "ي",
	"ؤ", "و",
	"ئ", "ي",
	"ـ", "",
)

// Normalize produces the canonical lookup form of a station name or user
// query: trimmed, lowercased, Arabic variants folded, punctuation replaced
// by spaces, and internal whitespace collapsed.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = arabicFolds.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
