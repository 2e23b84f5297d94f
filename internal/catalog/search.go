package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Field selects which book attribute a search looks at.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldGenre  Field = "genre"
	FieldYear   Field = "year"
)

// Fields in the order the search form offers them.
var Fields = []Field{FieldTitle, FieldAuthor, FieldGenre, FieldYear}

// text accessors for the substring-matched fields; year is matched numerically.
var textAccessors = map[Field]func(Book) string{
	FieldTitle:  func(b Book) string { return b.Title },
	FieldAuthor: func(b Book) string { return b.Author },
	FieldGenre:  func(b Book) string { return string(b.Genre) },
}

func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if f == FieldYear {
		return f, nil
	}
	if _, ok := textAccessors[f]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Label is the capitalized name used in prompts.
func (f Field) Label() string {
	if f == "" {
		return ""
	}
	return strings.ToUpper(string(f[:1])) + string(f[1:])
}

// Search filters books by field. Year queries must parse as an integer and
// match exactly; text queries match case-insensitive substrings.
// An empty result is reported as ErrNoResults.
func Search(books []Book, field Field, query string) ([]Book, error) {
	var res []Book
	if field == FieldYear {
		year, err := strconv.Atoi(strings.TrimSpace(query))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidYear, query)
		}
		for _, b := range books {
			if b.Year == year {
				res = append(res, b)
			}
		}
	} else {
		get, ok := textAccessors[field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		fold := cases.Fold()
		q := fold.String(query)
		for _, b := range books {
			if strings.Contains(fold.String(get(b)), q) {
				res = append(res, b)
			}
		}
	}
	if len(res) == 0 {
		return nil, ErrNoResults
	}
	return res, nil
}
