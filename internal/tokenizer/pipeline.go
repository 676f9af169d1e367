package tokenizer

import (
	"github.com/kljensen/snowball/english"
)

// Func transforms one token. Returning false drops the token.
type Func func(Token) (Token, bool)

// Pipeline is an ordered list of token functions.
type Pipeline []Func

// Stem reduces the term to its English Snowball stem. Offsets are untouched.
func Stem(tok Token) (Token, bool) {
	tok.Term = english.Stem(tok.Term, true)
	return tok, tok.Term != ""
}

// IndexPipeline is applied to field values when building the index:
// trimmer, stop-word filter, stemmer.
func IndexPipeline() Pipeline {
	return Pipeline{Trim, FilterStopWords, Stem}
}

// SearchPipeline is applied to query terms: trimmer, stemmer.
func SearchPipeline() Pipeline {
	return Pipeline{Trim, Stem}
}

// Run passes every token through the pipeline in order.
func (p Pipeline) Run(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		keep := true
		for _, fn := range p {
			if tok, keep = fn(tok); !keep {
				break
			}
		}
		if keep {
			out = append(out, tok)
		}
	}
	return out
}

// Process tokenizes text and runs the pipeline over the result.
func (p Pipeline) Process(text string) []Token {
	return p.Run(Tokenize(text))
}

// Terms runs a single query term through the pipeline and returns what is left.
func (p Pipeline) Terms(term string) []string {
	tokens := p.Run([]Token{{Term: Normalize(term), Text: term, Length: len(term)}})
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}
