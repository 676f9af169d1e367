package tokenizer

import (
	"reflect"
	"testing"
)

func terms(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Term
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"punctuation is kept until trimming", "hello, world!", []string{"hello,", "world!"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"all caps word", "HELLO WORLD", []string{"hello", "world"}},
		{"string with hyphen", "state-of-the-art", []string{"state", "of", "the", "art"}},
		{"tabs and newlines", "cnc\tmachining\nservices", []string{"cnc", "machining", "services"}},
		{"underscore is not a separator", "my_variable", []string{"my_variable"}},
		{"only separators", " - -- ", []string{}},
		{"full-width digits are normalized", "ＡＢＣ１２", []string{"abc12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := terms(Tokenize(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "Widgets made of steel"
	tokens := Tokenize(text)

	if len(tokens) != 4 {
		t.Fatalf("Expected 4 tokens, got %d", len(tokens))
	}
	for _, tok := range tokens {
		if text[tok.Start:tok.Start+tok.Length] != tok.Text {
			t.Errorf("Token %q does not match text at [%d,%d]", tok.Text, tok.Start, tok.Length)
		}
	}
	if tokens[3].Start != 16 || tokens[3].Length != 5 {
		t.Errorf("Expected steel at [16,5], got [%d,%d]", tokens[3].Start, tokens[3].Length)
	}
}

func TestTokenize_MultiByteOffsets(t *testing.T) {
	text := "Façade fabrication"
	tokens := Tokenize(text)

	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(tokens))
	}
	// "Façade" is 7 bytes because ç takes two.
	if tokens[0].Length != 7 || tokens[1].Start != 8 {
		t.Errorf("Unexpected byte offsets: %+v", tokens)
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTerm   string
		wantStart  int
		wantLength int
		wantKeep   bool
	}{
		{"plain word", "steel", "steel", 0, 5, true},
		{"trailing comma", "steel,", "steel", 0, 5, true},
		{"quoted word", "\"steel\"", "steel", 1, 5, true},
		{"parenthesized", "(primary)", "primary", 1, 7, true},
		{"inner punctuation kept", "u.s.a.", "u.s.a", 0, 5, true},
		{"only punctuation", "&", "", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Tokenize(tt.input)[0]
			got, keep := Trim(tok)
			if keep != tt.wantKeep {
				t.Fatalf("Trim(%q) keep = %v, want %v", tt.input, keep, tt.wantKeep)
			}
			if !keep {
				return
			}
			if got.Term != tt.wantTerm || got.Start != tt.wantStart || got.Length != tt.wantLength {
				t.Errorf("Trim(%q) = {%q %d %d}, want {%q %d %d}",
					tt.input, got.Term, got.Start, got.Length, tt.wantTerm, tt.wantStart, tt.wantLength)
			}
		})
	}
}

func TestIndexPipeline(t *testing.T) {
	text := "Widgets, made of steel. The stamping shop!"
	tokens := IndexPipeline().Process(text)

	want := []string{"widget", "made", "steel", "stamp", "shop"}
	if got := terms(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("IndexPipeline terms = %v, want %v", got, want)
	}

	for _, tok := range tokens {
		if text[tok.Start:tok.Start+tok.Length] != tok.Text {
			t.Errorf("Offsets of %q point at %q", tok.Term, text[tok.Start:tok.Start+tok.Length])
		}
	}
	if tokens[0].Length != len("Widgets") {
		t.Errorf("Trailing comma should be excluded from the widget token, length %d", tokens[0].Length)
	}
}

func TestSearchPipeline(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Steel", []string{"steel"}},
		{"widgets", []string{"widget"}},
		{"stamping!", []string{"stamp"}},
		{"...", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SearchPipeline().Terms(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchPipeline().Terms(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSearchPipeline_KeepsStopWords(t *testing.T) {
	if got := SearchPipeline().Terms("the"); len(got) != 1 {
		t.Errorf("Search pipeline must not drop stop words, got %v", got)
	}
	if !IsStopWord("the") || IsStopWord("steel") {
		t.Error("Unexpected stop-word classification")
	}
}
