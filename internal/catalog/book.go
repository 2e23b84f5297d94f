package catalog

import (
	"fmt"
	"strings"
)

// Year bounds accepted when a book is entered.
const (
	MinYear = 1000
	MaxYear = 2025
)

// Genre is one of the fixed shelf categories.
type Genre string

const (
	Fiction        Genre = "Fiction"
	NonFiction     Genre = "Non-Fiction"
	Mystery        Genre = "Mystery"
	Fantasy        Genre = "Fantasy"
	ScienceFiction Genre = "Science Fiction"
	Biography      Genre = "Biography"
	History        Genre = "History"
	Romance        Genre = "Romance"
	Thriller       Genre = "Thriller"
	SelfHelp       Genre = "Self-Help"
)

// Genres lists every accepted genre in menu order.
var Genres = []Genre{
	Fiction, NonFiction, Mystery, Fantasy, ScienceFiction,
	Biography, History, Romance, Thriller, SelfHelp,
}

// ParseGenre matches s against the genre set ignoring case and surrounding spaces.
func ParseGenre(s string) (Genre, error) {
	s = strings.TrimSpace(s)
	for _, g := range Genres {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

// Book is a single catalog entry. JSON names match the backing file.
type Book struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Genre  Genre  `json:"genre"`
	Read   bool   `json:"read"`
}

// NewBook validates input-boundary constraints and returns the book.
// Stored books are never re-validated.
func NewBook(title, author string, year int, genre string, read bool) (Book, error) {
	if err := ValidateYear(year); err != nil {
		return Book{}, err
	}
	g, err := ParseGenre(genre)
	if err != nil {
		return Book{}, err
	}
	return Book{Title: title, Author: author, Year: year, Genre: g, Read: read}, nil
}

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, year, MinYear, MaxYear)
	}
	return nil
}

// Status renders the read flag the way the library screen shows it.
func (b Book) Status() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%d) - %s - %s", b.Title, b.Author, b.Year, b.Genre, b.Status())
}
