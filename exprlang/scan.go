package exprlang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// ErrSyntax is wrapped by all errors for malformed input.
var ErrSyntax = errors.New("syntax error")

// The tokens representing literal one-char lexemes
var literals = []string{"(", ")", "[", "]", ",", ".", "=", ":", ";", "+", "-", "*", "/", "%"}

// The keyword tokens
var keywords = map[string]TokType{
	"for":    FOR,
	"in":     IN,
	"return": RETURN,
	"True":   TRUE,
	"False":  FALSE,
	"None":   NONE,
}

var keywordOrder = []string{"for", "in", "return", "True", "False", "None"}

var (
	lexer     *lexmachine.Lexer
	lexerErr  error
	lexerOnce sync.Once // monitors one-time initialization
)

// compiledLexer creates the lexmachine DFA once.
//
// If two patterns match a lexeme of the same length, lexmachine prefers the one
// added first. Literals and keywords are therefore added before the regular
// expressions for identifiers.
func compiledLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		for _, lit := range literals {
			lexer.Add([]byte(`\`+lit), makeToken(TokType(lit[0])))
		}
		for _, kw := range keywordOrder {
			lexer.Add([]byte(kw), makeToken(keywords[kw]))
		}
		lexer.Add([]byte(`\#[^\n]*`), skip) // comments
		lexer.Add([]byte(`\"[^"\n]*\"`), makeToken(STRING))
		lexer.Add([]byte(`\$*(_|[a-z]|[A-Z])(_|[a-z]|[A-Z]|[0-9])*`), makeToken(NAME))
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), makeToken(NUM))
		lexer.Add([]byte(`\r?\n`), makeToken(NEWLINE))
		lexer.Add([]byte(`( |\t)+`), skip)
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is an action which wraps a scanned match into a token.
func makeToken(t TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), nil, m), nil
	}
}

// Tokenize splits an input string into tokens. The last token is always of
// type EOF.
func Tokenize(input string) ([]Token, error) {
	lx, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	scan, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var toks []Token
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("line %d, column %d: unexpected input %q: %w",
					ui.FailLine, ui.FailColumn, excerpt(ui.Text, ui.StartTC, ui.FailTC), ErrSyntax)
			}
			return nil, err
		}
		lmtok := tok.(*lexmachine.Token)
		t, err := convert(lmtok)
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
	}
	end := uint64(len(input))
	toks = append(toks, Token{Type: EOF, Span: Span{end, end}})
	return toks, nil
}

func convert(lmtok *lexmachine.Token) (Token, error) {
	t := Token{
		Type:   TokType(lmtok.Type),
		Lexeme: string(lmtok.Lexeme),
		Span:   Span{uint64(lmtok.TC), uint64(lmtok.TC + len(lmtok.Lexeme))},
		Line:   lmtok.StartLine,
		Col:    lmtok.StartColumn,
	}
	switch t.Type {
	case NUM:
		if strings.Contains(t.Lexeme, ".") {
			f, err := strconv.ParseFloat(t.Lexeme, 64)
			if err != nil {
				return t, fmt.Errorf("line %d: malformed number %q: %w", t.Line, t.Lexeme, ErrSyntax)
			}
			t.Value = f
		} else {
			n, err := strconv.ParseInt(t.Lexeme, 10, 64)
			if err != nil {
				return t, fmt.Errorf("line %d: malformed number %q: %w", t.Line, t.Lexeme, ErrSyntax)
			}
			t.Value = n
		}
	case STRING:
		t.Value = t.Lexeme[1 : len(t.Lexeme)-1]
	case NAME:
		t.Value = t.Lexeme
	}
	tracer().Debugf("token %s", t)
	return t, nil
}

func excerpt(text []byte, from, to int) string {
	if to >= len(text) {
		to = len(text) - 1
	}
	if from < 0 || from > to {
		return ""
	}
	return string(text[from : to+1])
}
