package parser

import (
	"errors"
	"fmt"
	"strings"

	"bookshelf/internal/catalog"
)

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrTrailingText = errors.New("unexpected text after quoted value")
)

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Query is a single-field search request.
type Query struct {
	Field catalog.Field
	Value string
}

// String returns the canonical form, e.g. author:Herbert or title:"The Hobbit".
// Parse reads it back to the same query.
func (q Query) String() string {
	v := q.Value
	if v == "" || strings.ContainsAny(v, " \t\"") || strings.TrimSpace(v) != v {
		v = `"` + quoteEscaper.Replace(v) + `"`
	}
	return string(q.Field) + ":" + v
}

// Parse reads "field:value". The value is either quoted or the rest of the
// line; nothing may follow a quoted value. Input without a known field
// prefix is a title query.
func Parse(input string) (Query, error) {
	l := NewLexer(input)
	tok := l.NextToken()
	if tok.Type == TokenEOF {
		return Query{}, ErrEmptyQuery
	}
	field := catalog.FieldTitle
	src := NewLexer(input)
	if tok.Type == TokenField {
		if f, err := catalog.ParseField(tok.Value); err == nil {
			field, src = f, l
		}
	}
	v, err := readValue(src)
	if err != nil {
		return Query{}, err
	}
	return Query{Field: field, Value: v}, nil
}

func readValue(l *Lexer) (string, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) || l.input[l.pos] != '"' {
		return l.Rest(), nil
	}
	v := l.NextToken().Value
	if rest := l.Rest(); rest != "" {
		return "", fmt.Errorf("%w: %q", ErrTrailingText, rest)
	}
	return v, nil
}
