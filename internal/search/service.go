package search

import (
	"context"

	"bookshelf/internal/catalog"
	"bookshelf/internal/logger"
	"bookshelf/internal/parser"
)

// Service инкапсулирует логику поиска по каталогу
type Service struct {
	lib *catalog.Library
}

func New(lib *catalog.Library) *Service {
	return &Service{lib: lib}
}

// Search parses a one-line query and runs it against the library.
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	q, err := parser.Parse(query)
	if err != nil {
		return nil, err
	}
	return s.SearchField(ctx, q.Field, q.Value)
}

// SearchField runs a structured search, as the search form does. Catalog
// errors such as catalog.ErrNoResults are passed through.
func (s *Service) SearchField(ctx context.Context, field catalog.Field, value string) (*SearchResult, error) {
	canonical := parser.Query{Field: field, Value: value}.String()
	logger.For(ctx).WithField("query", canonical).Debug("search")

	books, err := s.lib.Search(field, value)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Query: canonical,
		Total: len(books),
		Books: ToDTOs(books),
	}, nil
}
