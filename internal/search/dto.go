package search

import "bookshelf/internal/catalog"

// BookDTO книга в том виде, в каком её показывают экраны и экспорт; Status уже посчитан
type BookDTO struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Read   bool   `json:"read"`
	Status string `json:"status"` // Read / Unread
}

// SearchResult ответ поиска: каноническая форма запроса и найденные книги
type SearchResult struct {
	Query string    `json:"query"` // canonical form
	Total int       `json:"total"`
	Books []BookDTO `json:"books"`
}

func ToDTO(b catalog.Book) BookDTO {
	return BookDTO{
		Title:  b.Title,
		Author: b.Author,
		Year:   b.Year,
		Genre:  string(b.Genre),
		Read:   b.Read,
		Status: b.Status(),
	}
}

func ToDTOs(books []catalog.Book) []BookDTO {
	out := make([]BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, ToDTO(b))
	}
	return out
}
