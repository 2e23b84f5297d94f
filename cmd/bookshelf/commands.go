package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bookshelf/internal/catalog"
	"bookshelf/internal/search"
	"bookshelf/internal/shell"
)

// errReported marks errors the command already showed to the user.
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

func (a *app) runShell(ctx context.Context) error {
	var in shell.Prompter
	if isTerminal(a.stdin) {
		in = shell.NewLinePrompter(a.cfg.CLI.HistoryFile)
	} else {
		lines, err := readLines(a.stdin)
		if err != nil {
			return err
		}
		in = &shell.ScriptPrompter{Lines: lines}
	}
	defer in.Close()
	return shell.New(a.lib, in, a.out, a.log).Run(ctx)
}

func newAddCmd(a *app) *cobra.Command {
	var (
		title, author, genre string
		year                 int
		read                 bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Example: `  bookshelf add --title Dune --author "Frank Herbert" --year 1965 \
    --genre "Science Fiction" --read`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.run("add", func(ctx context.Context, args []string) error {
		b, err := catalog.NewBook(title, author, year, genre, read)
		if err != nil {
			a.out.Warnf("%v", err)
			return reported(err)
		}
		if err := a.lib.Add(ctx, b); err != nil {
			return err
		}
		a.out.Successf("Book added successfully!")
		a.out.BookLine(search.ToDTO(b))
		return nil
	})
	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().IntVar(&year, "year", 0, fmt.Sprintf("Publication year (%d-%d)", catalog.MinYear, catalog.MaxYear))
	cmd.Flags().StringVar(&genre, "genre", "", "Genre: "+genreList())
	cmd.Flags().BoolVar(&read, "read", false, "Mark as read")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("genre")
	return cmd
}

func genreList() string {
	names := make([]string, 0, len(catalog.Genres))
	for _, g := range catalog.Genres {
		names = append(names, string(g))
	}
	return strings.Join(names, ", ")
}

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove every book with exactly this title",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = a.run("remove", func(ctx context.Context, args []string) error {
		title := strings.Join(args, " ")
		n, err := a.lib.Remove(ctx, title)
		switch {
		case errors.Is(err, catalog.ErrEmptyLibrary):
			a.out.Warnf("No books available to remove.")
			return reported(err)
		case err != nil:
			return err
		case n == 0:
			a.out.Warnf("No book titled %q.", title)
			return reported(catalog.ErrNoResults)
		}
		a.out.Successf("Removed %d book(s) titled %q.", n, title)
		return nil
	})
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search by title, author, genre or year",
		Long: `Search the library. The query is field:value where field is one of
title, author, genre or year; without a field the title is searched.
Text fields match case-insensitive substrings, year matches exactly.`,
		Example: `  bookshelf search hobbit
  bookshelf search author:tolkien
  bookshelf search 'title:"The Hobbit"'
  bookshelf search year:1965`,
		Args: cobra.MinimumNArgs(1),
	}
	svc := func() *search.Service { return search.New(a.lib) }
	cmd.RunE = a.run("search", func(ctx context.Context, args []string) error {
		res, err := svc().Search(ctx, strings.Join(args, " "))
		switch {
		case errors.Is(err, catalog.ErrInvalidYear):
			a.out.Warnf("Please enter a valid year.")
			return reported(err)
		case errors.Is(err, catalog.ErrNoResults):
			a.out.Warnf("No matching books found!")
			return reported(err)
		case err != nil:
			return err
		}
		if asJSON {
			return writeJSON(a.stdout, res)
		}
		a.out.Subheader(fmt.Sprintf("🔎 %d result(s) for %s", res.Total, res.Query))
		for _, b := range res.Books {
			a.out.BookLine(b)
		}
		return nil
	})
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "library"},
		Short:   "Show every book",
		Args:    cobra.NoArgs,
	}
	cmd.RunE = a.run("list", func(ctx context.Context, args []string) error {
		books := search.ToDTOs(a.lib.Books())
		if len(books) == 0 {
			a.out.Infof("Your library is empty!")
			return nil
		}
		if plain {
			for _, b := range books {
				a.out.BookLine(b)
			}
			return nil
		}
		a.out.Table(books)
		return nil
	})
	cmd.Flags().BoolVar(&plain, "plain", false, "One line per book instead of a table")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var showRead, showUnread bool
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"statistics"},
		Short:   "Show totals and the read percentage",
		Args:    cobra.NoArgs,
	}
	cmd.RunE = a.run("stats", func(ctx context.Context, args []string) error {
		st := a.lib.Stats()
		a.out.Stats(st)
		if st.Total == 0 {
			a.out.Infof("Your library is empty!")
			return nil
		}
		if showRead {
			a.out.Subheader("📗 Read")
			for _, b := range search.ToDTOs(a.lib.ReadBooks()) {
				a.out.Short(b)
			}
		}
		if showUnread {
			a.out.Subheader("📕 Unread")
			for _, b := range search.ToDTOs(a.lib.UnreadBooks()) {
				a.out.Short(b)
			}
		}
		return nil
	})
	cmd.Flags().BoolVar(&showRead, "read", false, "List the books read")
	cmd.Flags().BoolVar(&showUnread, "unread", false, "List the books not read yet")
	return cmd
}
