package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// joinTitle joins collected title fragments with single spaces, omitting the
// space when a fragment begins with punctuation so a continuation such as
// ", fast" attaches to the preceding words.
func joinTitle(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 && !startsWithPunct(part) {
			b.WriteByte(' ')
		}
		b.WriteString(part)
	}
	return b.String()
}

func startsWithPunct(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsPunct(r)
}

// collectTagTitle gathers the trimmed non-blank lines between start and the
// closing tag of the named wrapper. It returns the fragments, the number of
// input lines consumed including the closer, and whether the closer was
// actually found; callers leave the construct untouched when it never closes.
func collectTagTitle(lines []string, start int, name string) ([]string, int, bool) {
	parts := []string{}
	for j := start; j < len(lines); j++ {
		if closeName, ok := matchCloseTag(lines[j]); ok && closeName == name {
			return parts, j - start + 1, true
		}
		if trimmed := strings.TrimSpace(lines[j]); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts, len(lines) - start, false
}

// normalizeTitle collapses internal whitespace and strips trailing
// punctuation so duplicated step titles compare reliably. Case is preserved;
// matching stays case-sensitive.
func normalizeTitle(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	return strings.TrimRight(collapsed, ".,:;!?")
}

// titleFromID derives a human title from a machine identifier by splitting on
// hyphens and capitalising each word: "create-one" becomes "Create One".
func titleFromID(id string) string {
	fields := strings.Split(strings.TrimSpace(id), "-")
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		words = append(words, upperFirst(field))
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
