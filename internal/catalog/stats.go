package catalog

import "fmt"

type Stats struct {
	Total int
	Read  int
}

func (s Stats) Unread() int {
	return s.Total - s.Read
}

// Percent of books marked read; 0 for an empty library.
func (s Stats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Read) / float64(s.Total) * 100
}

func (s Stats) PercentString() string {
	return fmt.Sprintf("%.2f%%", s.Percent())
}

func ComputeStats(books []Book) Stats {
	st := Stats{Total: len(books)}
	for _, b := range books {
		if b.Read {
			st.Read++
		}
	}
	return st
}

func ReadBooks(books []Book) []Book {
	return filterRead(books, true)
}

func UnreadBooks(books []Book) []Book {
	return filterRead(books, false)
}

func filterRead(books []Book, read bool) []Book {
	res := []Book{}
	for _, b := range books {
		if b.Read == read {
			res = append(res, b)
		}
	}
	return res
}

// RemoveByTitle drops every book whose title equals title exactly and
// reports how many were dropped.
func RemoveByTitle(books []Book, title string) ([]Book, int) {
	kept := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Title != title {
			kept = append(kept, b)
		}
	}
	return kept, len(books) - len(kept)
}
