package formats

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var words = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et", "dolore",
	"magna", "aliqua", "enim", "ad", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
	"consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
	"occaecat", "cupidatat", "non", "proident", "sunt", "culpa", "qui", "officia",
	"deserunt", "mollit", "anim", "id", "est", "laborum",
}

// Word returns a single lowercase dictionary word.
func Word(r Rand) string {
	return words[r.IntN(len(words))]
}

// Text returns space separated words, the first one capitalized, whose
// total length is exactly n bytes. The final word is trimmed to fit and the
// result never ends in a space.
func Text(r Rand, n int) string {
	if n <= 0 {
		return ""
	}

	// Casers keep state and must not be shared between goroutines.
	caser := cases.Title(language.English)

	var b strings.Builder
	b.Grow(n)
	for b.Len() < n {
		w := Word(r)
		if b.Len() == 0 {
			w = caser.String(w)
		} else {
			// a separator as the last byte would leave a trailing space
			if n-b.Len() < 2 {
				b.WriteString(w[:n-b.Len()])
				break
			}
			b.WriteByte(' ')
		}
		b.WriteString(w[:min(len(w), n-b.Len())])
	}
	return b.String()
}
