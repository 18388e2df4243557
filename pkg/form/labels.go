package form

import "strings"

// labelAcronyms maps words that should render fully uppercased instead of
// title-cased. The set matches the formats and identifier suffixes the
// descriptor vocabulary already distinguishes.
var labelAcronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"api":  "API",
	"ip":   "IP",
	"html": "HTML",
	"json": "JSON",
	"yaml": "YAML",
	"uuid": "UUID",
	"csv":  "CSV",
}

// DefaultLabeler derives a display label from a field name when the
// descriptor carries no explicit title. It splits on underscore, dash,
// whitespace, and camelCase boundaries, title-cases each word, and keeps
// common acronyms uppercased ("avatar_url" becomes "Avatar URL").
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var words []string
	chunks := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '\t'
	})
	for _, chunk := range chunks {
		words = append(words, splitCamelWords(chunk)...)
	}

	labeled := make([]string, 0, len(words))
	for _, word := range words {
		labeled = append(labeled, labelWord(word))
	}
	return strings.Join(labeled, " ")
}

func labelWord(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	if acronym, ok := labelAcronyms[lower]; ok {
		return acronym
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// splitCamelWords breaks a single chunk at lower-to-upper and letter-digit
// transitions: "firstName2x" yields ["first", "Name", "2", "x"].
func splitCamelWords(chunk string) []string {
	if chunk == "" {
		return nil
	}
	runes := []rune(chunk)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if camelBoundary(runes[i-1], runes[i]) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func camelBoundary(prev, cur rune) bool {
	switch {
	case isLowerRune(prev) && isUpperRune(cur):
		return true
	case isLetterRune(prev) && isDigitRune(cur):
		return true
	case isDigitRune(prev) && isLetterRune(cur):
		return true
	}
	return false
}

func isUpperRune(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLowerRune(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigitRune(r rune) bool  { return r >= '0' && r <= '9' }
func isLetterRune(r rune) bool { return isUpperRune(r) || isLowerRune(r) }
