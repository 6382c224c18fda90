package exprlang

import (
	"fmt"
	"strconv"
)

// TokType is a category type for a Token.
type TokType int

// Token types which are not literals. Literal tokens ('(', '+', …) use their
// character code as token type.
const (
	EOF TokType = -(iota + 1)
	NEWLINE
	NAME
	NUM
	STRING
	FOR
	IN
	RETURN
	TRUE
	FALSE
	NONE
)

var tokTypeNames = map[TokType]string{
	EOF:     "end of input",
	NEWLINE: "newline",
	NAME:    "identifier",
	NUM:     "number",
	STRING:  "string",
	FOR:     "'for'",
	IN:      "'in'",
	RETURN:  "'return'",
	TRUE:    "'True'",
	FALSE:   "'False'",
	NONE:    "'None'",
}

func (t TokType) String() string {
	if s, ok := tokTypeNames[t]; ok {
		return s
	}
	if t > 0 {
		return strconv.QuoteRune(rune(t))
	}
	return fmt.Sprintf("<token %d>", int(t))
}

// Token represents an input token, as produced by the scanner.
//
// An example would be a token for a floating point numer:
//
//    Type   = NUM         // category of the token
//    Lexeme = "3.1416"    // lexeme as it appeared in the input
//    Value  = 3.1416      // is a float64 value
//    Span   = 67…73       // occured from position 67 in the input
//
type Token struct {
	Type   TokType
	Lexeme string
	Value  interface{}
	Span   Span
	Line   int // 1-based
	Col    int // 1-based
}

func (t Token) String() string {
	if t.Type == EOF || t.Type == NEWLINE {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}

// Span is a small type for capturing a run of input bytes. A span denotes a
// start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
