package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexemeType int

const (
	lexTerm lexemeType = iota
	lexField
	lexPresence
	lexEditDistance
	lexBoost
)

func (t lexemeType) String() string {
	switch t {
	case lexTerm:
		return "TERM"
	case lexField:
		return "FIELD"
	case lexPresence:
		return "PRESENCE"
	case lexEditDistance:
		return "EDIT_DISTANCE"
	case lexBoost:
		return "BOOST"
	default:
		return "UNKNOWN"
	}
}

type lexeme struct {
	typ   lexemeType
	str   string
	start int
	end   int
}

func isTermSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-'
}

// lexer turns a query string into lexemes. Offsets are byte offsets into the input.
type lexer struct {
	input   string
	pos     int
	start   int
	escaped []int // positions of escape characters inside the current lexeme
	lexemes []lexeme
}

func lex(input string) []lexeme {
	l := &lexer{input: input}
	l.run()
	return l.lexemes
}

func (l *lexer) width() int {
	return l.pos - l.start
}

func (l *lexer) next() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return r, true
}

func (l *lexer) backup(r rune) {
	l.pos -= utf8.RuneLen(r)
}

// slice returns the current lexeme text with escape characters removed.
func (l *lexer) slice() string {
	if len(l.escaped) == 0 {
		return l.input[l.start:l.pos]
	}
	var b strings.Builder
	from := l.start
	for _, esc := range l.escaped {
		b.WriteString(l.input[from:esc])
		from = esc + 1
	}
	if from < l.pos {
		b.WriteString(l.input[from:l.pos])
	}
	return b.String()
}

func (l *lexer) emit(typ lexemeType) {
	l.lexemes = append(l.lexemes, lexeme{typ: typ, str: l.slice(), start: l.start, end: l.pos})
	l.ignore()
}

func (l *lexer) ignore() {
	l.start = l.pos
	l.escaped = l.escaped[:0]
}

func (l *lexer) acceptDigitRun() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r < '0' || r > '9' {
			return
		}
		l.pos += size
	}
}

// emitTerm emits the pending text as a term unless it is empty after unescaping.
func (l *lexer) emitTerm() {
	if l.width() > 0 && l.slice() != "" {
		l.emit(lexTerm)
		return
	}
	l.ignore()
}

func (l *lexer) run() {
	for {
		r, ok := l.next()
		if !ok {
			l.emitTerm()
			return
		}

		switch {
		case r == '\\':
			// The escape itself is dropped; the next rune is taken literally.
			l.escaped = append(l.escaped, l.pos-1)
			if _, ok := l.next(); !ok {
				l.emitTerm()
				return
			}
		case r == ':':
			l.backup(r)
			l.emit(lexField)
			l.next()
			l.ignore()
		case r == '~':
			l.backup(r)
			l.emitTerm()
			l.next()
			l.ignore()
			l.acceptDigitRun()
			l.emit(lexEditDistance)
		case r == '^':
			l.backup(r)
			l.emitTerm()
			l.next()
			l.ignore()
			l.acceptDigitRun()
			l.emit(lexBoost)
		case r == '+' && l.width() == 1:
			l.emit(lexPresence)
		case r == '-' && l.width() == 1:
			l.emit(lexPresence)
		case isTermSeparator(r):
			l.backup(r)
			l.emitTerm()
			l.next()
			l.ignore()
		}
	}
}
