package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Token is one word of a field value. Start and Length are byte offsets into
// the original text; Text is the original slice and Term its normalized form.
type Token struct {
	Term   string
	Text   string
	Start  int
	Length int
}

// isSeparator matches the characters words are split on: whitespace and hyphens.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-'
}

// isWordRune reports whether r survives the trimmer.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits text on runs of whitespace and hyphens.
// Every token is lowercased and NFKC-normalized; offsets refer to text as given.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0) // Initialize as empty slice, not nil
	start := -1

	for i, r := range text {
		if isSeparator(r) {
			if start >= 0 {
				tokens = append(tokens, newToken(text, start, i))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, newToken(text, start, len(text)))
	}
	return tokens
}

func newToken(text string, start, end int) Token {
	original := text[start:end]
	return Token{
		Term:   Normalize(original),
		Text:   original,
		Start:  start,
		Length: end - start,
	}
}

// Normalize lowercases a term and applies NFKC so compatibility forms
// (ligatures, full-width digits) index the same as their plain spelling.
func Normalize(term string) string {
	return norm.NFKC.String(strings.ToLower(term))
}

// Trim strips leading and trailing characters that are not letters, digits or
// underscores, moving the token offsets so they cover only what is left.
func Trim(tok Token) (Token, bool) {
	text := tok.Text
	lead := 0
	for lead < len(text) {
		r, size := utf8.DecodeRuneInString(text[lead:])
		if isWordRune(r) {
			break
		}
		lead += size
	}
	trail := len(text)
	for trail > lead {
		r, size := utf8.DecodeLastRuneInString(text[:trail])
		if isWordRune(r) {
			break
		}
		trail -= size
	}

	tok.Text = text[lead:trail]
	tok.Start += lead
	tok.Length = trail - lead
	tok.Term = strings.TrimFunc(tok.Term, func(r rune) bool { return !isWordRune(r) })

	return tok, tok.Term != ""
}
