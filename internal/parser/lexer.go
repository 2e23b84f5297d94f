package parser

import (
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenField
	TokenQuoted
)

type Token struct {
	Type  TokenType
	Value string
}

type Lexer struct {
	input []rune
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	if l.input[l.pos] == '"' {
		return l.readQuoted()
	}

	// word up to whitespace, or up to a colon when it names a field
	start := l.pos
	for l.pos < len(l.input) && !unicode.IsSpace(l.input[l.pos]) {
		if l.input[l.pos] == ':' {
			l.pos++
			word := string(l.input[start:l.pos])
			return Token{Type: TokenField, Value: strings.TrimSuffix(word, ":")}
		}
		l.pos++
	}

	return Token{Type: TokenString, Value: string(l.input[start:l.pos])}
}

// Rest returns the unread input without surrounding whitespace.
func (l *Lexer) Rest() string {
	l.skipWhitespace()
	rest := strings.TrimSpace(string(l.input[l.pos:]))
	l.pos = len(l.input)
	return rest
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// readQuoted reads "..." and returns the content without quotes. \" and \\
// stand for a quote and a backslash. An unterminated quote runs to the end
// of input.
func (l *Lexer) readQuoted() Token {
	l.pos++
	var val strings.Builder
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) && (l.input[l.pos+1] == '"' || l.input[l.pos+1] == '\\') {
			l.pos++
			c = l.input[l.pos]
		}
		val.WriteRune(c)
		l.pos++
	}
	if l.pos < len(l.input) {
		l.pos++
	}
	return Token{Type: TokenQuoted, Value: val.String()}
}
