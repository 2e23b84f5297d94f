package catalog

import (
	"context"
	"fmt"
)

// Store persists the whole library as one unit.
type Store interface {
	Load(ctx context.Context) ([]Book, error)
	Save(ctx context.Context, books []Book) error
}

// Library owns the in-memory collection and writes it back through its
// store after every mutation.
type Library struct {
	store Store
	books []Book
}

// Open loads the collection from store.
func Open(ctx context.Context, store Store) (*Library, error) {
	books, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	return &Library{store: store, books: books}, nil
}

// commit saves books and makes them current only once the store has them.
func (l *Library) commit(ctx context.Context, books []Book) error {
	if err := l.store.Save(ctx, books); err != nil {
		return fmt.Errorf("save library: %w", err)
	}
	l.books = books
	return nil
}

// Add appends b without a duplicate check and persists.
func (l *Library) Add(ctx context.Context, b Book) error {
	return l.AddAll(ctx, []Book{b})
}

// AddAll appends books in order and persists once.
func (l *Library) AddAll(ctx context.Context, books []Book) error {
	next := make([]Book, 0, len(l.books)+len(books))
	next = append(next, l.books...)
	return l.commit(ctx, append(next, books...))
}

// Remove deletes every book titled title and persists. It returns
// ErrEmptyLibrary without touching the store when there is nothing to remove from.
// On a failed save the library is left as it was.
func (l *Library) Remove(ctx context.Context, title string) (int, error) {
	if len(l.books) == 0 {
		return 0, ErrEmptyLibrary
	}
	kept, n := RemoveByTitle(l.books, title)
	if err := l.commit(ctx, kept); err != nil {
		return 0, err
	}
	return n, nil
}

func (l *Library) Search(field Field, query string) ([]Book, error) {
	return Search(l.books, field, query)
}

// Books returns a copy of the collection in storage order.
func (l *Library) Books() []Book {
	return append([]Book{}, l.books...)
}

func (l *Library) Titles() []string {
	titles := make([]string, 0, len(l.books))
	for _, b := range l.books {
		titles = append(titles, b.Title)
	}
	return titles
}

func (l *Library) Len() int {
	return len(l.books)
}

func (l *Library) Stats() Stats {
	return ComputeStats(l.books)
}

func (l *Library) ReadBooks() []Book {
	return ReadBooks(l.books)
}

func (l *Library) UnreadBooks() []Book {
	return UnreadBooks(l.books)
}
