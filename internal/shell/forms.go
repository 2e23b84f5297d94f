package shell

import (
	"context"
	"errors"
	"strings"

	"bookshelf/internal/catalog"
	"bookshelf/internal/search"
)

func (s *Shell) addBook(ctx context.Context, args []string) error {
	s.out.Subheader("📖 Add a New Book")
	title, err := s.ask("📌 Enter Book Title: ")
	if err != nil {
		return err
	}
	author, err := s.ask("✍ Enter Author: ")
	if err != nil {
		return err
	}
	year, err := s.askYear("📅 Enter Publication Year: ")
	if err != nil {
		return err
	}
	genres := make([]string, 0, len(catalog.Genres))
	for _, g := range catalog.Genres {
		genres = append(genres, string(g))
	}
	genre, err := s.choose("📚 Select Genre", genres)
	if err != nil {
		return err
	}
	read, err := s.askYesNo("✅ Mark as Read? [y/N]: ")
	if err != nil {
		return err
	}

	b, err := catalog.NewBook(title, author, year, genre, read)
	if err != nil {
		s.out.Warnf("%v", err)
		return err
	}
	if err := s.lib.Add(ctx, b); err != nil {
		return err
	}
	s.out.Successf("Book added successfully!")
	return nil
}

func (s *Shell) removeBook(ctx context.Context, args []string) error {
	s.out.Subheader("🗑️ Remove a Book")
	if s.lib.Len() == 0 {
		s.out.Warnf("No books available to remove.")
		return catalog.ErrEmptyLibrary
	}
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		title, err = s.chooseTitle("Select Book to Remove", s.lib.Titles())
		if err != nil {
			return err
		}
	}
	n, err := s.lib.Remove(ctx, title)
	if err != nil {
		return err
	}
	switch n {
	case 0:
		s.out.Warnf("No book titled %q.", title)
	case 1:
		s.out.Successf("Book removed successfully!")
	default:
		s.out.Successf("Removed %d books titled %q.", n, title)
	}
	return nil
}

func (s *Shell) searchBook(ctx context.Context, args []string) error {
	s.out.Subheader("🔎 Search for a Book")
	var (
		res *search.SearchResult
		err error
	)
	if len(args) > 0 {
		res, err = s.search.Search(ctx, strings.Join(args, " "))
	} else {
		labels := make([]string, 0, len(catalog.Fields))
		for _, f := range catalog.Fields {
			labels = append(labels, f.Label())
		}
		label, cerr := s.choose("Search by", labels)
		if cerr != nil {
			return cerr
		}
		field, _ := catalog.ParseField(label)
		query, qerr := s.ask("Enter " + label + ": ")
		if qerr != nil {
			return qerr
		}
		res, err = s.search.SearchField(ctx, field, query)
	}

	switch {
	case errors.Is(err, catalog.ErrInvalidYear):
		s.out.Warnf("Please enter a valid year.")
		return err
	case errors.Is(err, catalog.ErrNoResults):
		s.out.Warnf("No matching books found!")
		return err
	case err != nil:
		return err
	}
	for _, b := range res.Books {
		s.out.BookLine(b)
	}
	return nil
}

func (s *Shell) listBooks(ctx context.Context, args []string) error {
	s.out.Subheader("📚 Your Library")
	books := s.lib.Books()
	if len(books) == 0 {
		s.out.Infof("Your library is empty!")
		return nil
	}
	for _, b := range search.ToDTOs(books) {
		s.out.BookLine(b)
	}
	return nil
}

func (s *Shell) statistics(ctx context.Context, args []string) error {
	s.out.Subheader("📊 Library Statistics")
	st := s.lib.Stats()
	s.out.Stats(st)
	if st.Total == 0 {
		s.out.Infof("Your library is empty!")
		return nil
	}
	for {
		ans, err := s.ask("📕 Show [r]ead or [u]nread books, Enter to go back: ")
		if err != nil {
			return err
		}
		var books []catalog.Book
		switch strings.ToLower(ans) {
		case "":
			return nil
		case "r", "read":
			books = s.lib.ReadBooks()
		case "u", "unread":
			books = s.lib.UnreadBooks()
		default:
			continue
		}
		for _, b := range search.ToDTOs(books) {
			s.out.Short(b)
		}
	}
}
