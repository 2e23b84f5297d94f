// Package shell is the interactive menu: Add Book, Remove Book, Search Book,
// Library and Statistics, each a small form over a line prompter.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"bookshelf/internal/catalog"
	"bookshelf/internal/metrics"
	"bookshelf/internal/middleware"
	"bookshelf/internal/search"
	"bookshelf/internal/ui"
)

type mode struct {
	name    string
	aliases []string
	run     middleware.Command
}

type Shell struct {
	lib    *catalog.Library
	search *search.Service
	in     Prompter
	out    *ui.Printer
	log    *logrus.Logger
	modes  []mode
}

func New(lib *catalog.Library, in Prompter, out *ui.Printer, log *logrus.Logger) *Shell {
	s := &Shell{
		lib:    lib,
		search: search.New(lib),
		in:     in,
		out:    out,
		log:    log,
	}
	s.modes = []mode{
		s.wrap("Add Book", "add", []string{"add"}, s.addBook),
		s.wrap("Remove Book", "remove", []string{"remove", "rm"}, s.removeBook),
		s.wrap("Search Book", "search", []string{"search", "find"}, s.searchBook),
		s.wrap("Library", "list", []string{"library", "list", "ls"}, s.listBooks),
		s.wrap("Statistics", "stats", []string{"statistics", "stats"}, s.statistics),
	}
	return s
}

func (s *Shell) wrap(name, op string, aliases []string, run middleware.Command) mode {
	return mode{
		name:    name,
		aliases: aliases,
		run: middleware.Chain(run,
			middleware.RequestID,
			middleware.RequestLogger(s.log, op),
			middleware.Instrument(op),
		),
	}
}

// Run shows the menu until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	s.out.Title("📚 Personal Library Manager")
	for {
		s.printMenu()
		line, err := s.in.Prompt("📌 Menu> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, ErrAborted) {
			continue
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		choice := strings.ToLower(fields[0])
		if choice == "q" || choice == "quit" || choice == "exit" {
			return nil
		}
		m, ok := s.lookup(choice)
		if !ok {
			s.out.Warnf("Unknown choice %q", fields[0])
			continue
		}

		err = m.run(ctx, fields[1:])
		metrics.ObserveLibrary(s.lib.Stats())
		switch {
		case err == nil, catalog.IsUserError(err):
			// forms print their own warnings
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrAborted):
			s.out.Infof("Cancelled.")
		default:
			s.out.Errorf("%v", err)
		}
		fmt.Fprintln(s.out.Writer())
	}
}

func (s *Shell) printMenu() {
	s.out.Subheader("📌 Menu")
	for i, m := range s.modes {
		s.out.Printf("  %d) %s\n", i+1, m.name)
	}
	s.out.Printf("  q) Quit\n")
}

func (s *Shell) lookup(choice string) (mode, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(s.modes) {
			return s.modes[n-1], true
		}
		return mode{}, false
	}
	for _, m := range s.modes {
		for _, a := range m.aliases {
			if a == choice {
				return m, true
			}
		}
	}
	return mode{}, false
}

func (s *Shell) ask(prompt string) (string, error) {
	line, err := s.in.Prompt(prompt)
	return strings.TrimSpace(line), err
}

// choose prints a numbered list and accepts a number or one of the options
// typed out (case-insensitive).
func (s *Shell) choose(label string, options []string) (string, error) {
	s.in.SetWords(options)
	defer s.in.SetWords(nil)
	for i, o := range options {
		s.out.Printf("  %d) %s\n", i+1, o)
	}
	for {
		ans, err := s.ask(label + ": ")
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(ans); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, o := range options {
			if strings.EqualFold(o, ans) {
				return o, nil
			}
		}
		s.out.Warnf("Pick 1-%d or type one of the options.", len(options))
	}
}

// chooseTitle accepts a title typed exactly as stored or its number in the
// list. An exact title wins over a number, so a book titled "2" is reachable.
func (s *Shell) chooseTitle(label string, titles []string) (string, error) {
	s.in.SetWords(titles)
	defer s.in.SetWords(nil)
	for i, t := range titles {
		s.out.Printf("  %d) %s\n", i+1, t)
	}
	for {
		ans, err := s.in.Prompt(label + ": ")
		if err != nil {
			return "", err
		}
		if i := slices.Index(titles, ans); i >= 0 {
			return titles[i], nil
		}
		ans = strings.TrimSpace(ans)
		if i := slices.Index(titles, ans); i >= 0 {
			return titles[i], nil
		}
		if n, err := strconv.Atoi(ans); err == nil && n >= 1 && n <= len(titles) {
			return titles[n-1], nil
		}
		s.out.Warnf("Type a title exactly as listed or pick 1-%d.", len(titles))
	}
}

func (s *Shell) askYear(prompt string) (int, error) {
	for {
		ans, err := s.ask(prompt)
		if err != nil {
			return 0, err
		}
		year, err := strconv.Atoi(ans)
		if err == nil {
			err = catalog.ValidateYear(year)
		}
		if err == nil {
			return year, nil
		}
		s.out.Warnf("Enter a year between %d and %d.", catalog.MinYear, catalog.MaxYear)
	}
}

func (s *Shell) askYesNo(prompt string) (bool, error) {
	ans, err := s.ask(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
