// Package query parses the search box syntax into clauses.
//
// The syntax is a whitespace separated list of terms. Each term may carry:
//
//	name:steel     restrict the term to one indexed field
//	steel*  *ing   wildcard, '*' matches any run of characters
//	steel~1        edit distance
//	steel^10       boost
//	+steel -steel  required / prohibited
//	\:             escape the next character
package query

import (
	"strconv"
	"strings"

	internalErrors "github.com/gcbaptista/mfg-search/internal/errors"
	"github.com/gcbaptista/mfg-search/internal/tokenizer"
)

// Presence controls how a clause combines with the others.
type Presence int

const (
	// Optional clauses add to the score; at least one optional or required clause must match.
	Optional Presence = iota
	// Required clauses must match every returned document.
	Required
	// Prohibited clauses must not match any returned document.
	Prohibited
)

func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case Prohibited:
		return "prohibited"
	default:
		return "optional"
	}
}

// Wildcard is the character matching any run of characters inside a term.
const Wildcard = "*"

// Clause is a single term of a query.
type Clause struct {
	Fields       []string
	Term         string
	Boost        float64
	EditDistance int
	UsePipeline  bool
	Presence     Presence
}

// HasWildcard reports whether the term contains a wildcard.
func (c Clause) HasWildcard() bool {
	return strings.Contains(c.Term, Wildcard)
}

// Query is a parsed query.
type Query struct {
	Clauses   []Clause
	AllFields []string
}

// IsNegated reports whether every clause is prohibited.
// Such a query matches every document the clauses do not exclude.
func (q *Query) IsNegated() bool {
	if len(q.Clauses) == 0 {
		return false
	}
	for _, c := range q.Clauses {
		if c.Presence != Prohibited {
			return false
		}
	}
	return true
}

// Parse parses input against the given indexed fields.
// A syntax error is returned as a *errors.QueryParseError.
func Parse(input string, fields []string) (*Query, error) {
	p := &parser{
		input:   input,
		lexemes: lex(input),
		query:   &Query{AllFields: fields},
		fields:  make(map[string]struct{}, len(fields)),
	}
	for _, f := range fields {
		p.fields[f] = struct{}{}
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.query, nil
}

type parser struct {
	input   string
	lexemes []lexeme
	pos     int
	query   *Query
	fields  map[string]struct{}
	current Clause
}

func (p *parser) peek() (lexeme, bool) {
	if p.pos >= len(p.lexemes) {
		return lexeme{}, false
	}
	return p.lexemes[p.pos], true
}

func (p *parser) consume() (lexeme, bool) {
	lx, ok := p.peek()
	if ok {
		p.pos++
	}
	return lx, ok
}

func (p *parser) errorAt(offset int, message string) error {
	return internalErrors.NewQueryParseError(p.input, offset, message)
}

func (p *parser) newClause() {
	p.current = Clause{Boost: 1, UsePipeline: true, Presence: Optional}
}

func (p *parser) finishClause() {
	if p.current.Fields == nil {
		p.current.Fields = p.query.AllFields
	}
	p.query.Clauses = append(p.query.Clauses, p.current)
}

func (p *parser) parse() error {
	for {
		lx, ok := p.peek()
		if !ok {
			return nil
		}
		p.newClause()

		var err error
		switch lx.typ {
		case lexPresence:
			err = p.parsePresence()
		case lexField:
			err = p.parseField()
		case lexTerm:
			err = p.parseTerm()
		default:
			err = p.errorAt(lx.start, "expected either a field or a term, found "+lx.typ.String()+describe(lx))
		}
		if err != nil {
			return err
		}
	}
}

func describe(lx lexeme) string {
	if lx.str == "" {
		return ""
	}
	return " with value '" + lx.str + "'"
}

func (p *parser) parsePresence() error {
	lx, _ := p.consume()
	switch lx.str {
	case "-":
		p.current.Presence = Prohibited
	case "+":
		p.current.Presence = Required
	default:
		return p.errorAt(lx.start, "unrecognised presence operator '"+lx.str+"'")
	}

	next, ok := p.peek()
	if !ok {
		return p.errorAt(lx.end, "expecting term or field, found nothing")
	}
	switch next.typ {
	case lexField:
		return p.parseField()
	case lexTerm:
		return p.parseTerm()
	default:
		return p.errorAt(next.start, "expecting term or field, found '"+next.typ.String()+"'")
	}
}

func (p *parser) parseField() error {
	lx, _ := p.consume()
	if _, ok := p.fields[lx.str]; !ok {
		return p.errorAt(lx.start, "unrecognised field '"+lx.str+"', possible fields: "+strings.Join(p.query.AllFields, ", "))
	}
	p.current.Fields = []string{lx.str}

	next, ok := p.peek()
	if !ok {
		return p.errorAt(lx.end, "expecting term, found nothing")
	}
	if next.typ != lexTerm {
		return p.errorAt(next.start, "expecting term, found '"+next.typ.String()+"'")
	}
	return p.parseTerm()
}

func (p *parser) parseTerm() error {
	lx, _ := p.consume()
	p.current.Term = tokenizer.Normalize(lx.str)
	if p.current.HasWildcard() {
		p.current.UsePipeline = false
	}
	return p.parseModifiers()
}

// parseModifiers handles what may follow a term: modifiers, or the start of the next clause.
func (p *parser) parseModifiers() error {
	next, ok := p.peek()
	if !ok {
		p.finishClause()
		return nil
	}

	switch next.typ {
	case lexEditDistance:
		p.consume()
		distance, err := strconv.Atoi(next.str)
		if err != nil || distance < 0 {
			return p.errorAt(next.start, "edit distance must be numeric")
		}
		p.current.EditDistance = distance
		return p.parseModifiers()
	case lexBoost:
		p.consume()
		boost, err := strconv.Atoi(next.str)
		if err != nil {
			return p.errorAt(next.start, "boost must be numeric")
		}
		p.current.Boost = float64(boost)
		return p.parseModifiers()
	case lexTerm, lexField, lexPresence:
		p.finishClause()
		return nil
	default:
		return p.errorAt(next.start, "unexpected lexeme type '"+next.typ.String()+"'")
	}
}
