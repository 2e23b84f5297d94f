package storage

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"bookshelf/internal/catalog"
)

// bookSchema describes the backing file. Year bounds are checked on input
// only, so they are not part of it.
func bookSchema() map[string]any {
	genres := make([]any, 0, len(catalog.Genres))
	for _, g := range catalog.Genres {
		genres = append(genres, string(g))
	}
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"title", "author", "year", "genre", "read"},
			"properties": map[string]any{
				"title":  map[string]any{"type": "string"},
				"author": map[string]any{"type": "string"},
				"year":   map[string]any{"type": "integer"},
				"genre":  map[string]any{"type": "string", "enum": genres},
				"read":   map[string]any{"type": "boolean"},
			},
		},
	}
}

// Validate checks raw backing-file content and returns one line per violation.
// A non-nil error means the content is not JSON at all.
func Validate(data []byte) ([]string, error) {
	res, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(bookSchema()),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	var problems []string
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}

func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}
