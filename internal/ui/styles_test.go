package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookshelf/internal/catalog"
	"bookshelf/internal/search"
)

var dune = search.BookDTO{Title: "Dune", Author: "Herbert", Year: 1965, Genre: "Science Fiction", Read: true, Status: "Read"}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Subheader("📖 Add a New Book")
	p.Successf("Book added successfully!")
	p.Warnf("No books available to remove.")
	p.BookLine(dune)
	p.Short(dune)

	out := buf.String()
	assert.Contains(t, out, "📖 Add a New Book\n")
	assert.Contains(t, out, "🎉 Book added successfully!\n")
	assert.Contains(t, out, "No books available to remove.")
	assert.Contains(t, out, "Dune by Herbert (1965) - Science Fiction - ✅ Read\n")
	assert.Contains(t, out, "📖 Dune by Herbert\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestPrinterStats(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Stats(catalog.Stats{Total: 1, Read: 1})
	assert.Equal(t, "📚 Total Books: 1\n📖 Books Read: 1 (100.00%)\n", buf.String())
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true).Table([]search.BookDTO{dune})
	out := buf.String()
	for _, s := range []string{"Title", "Dune", "Herbert", "1965", "Science Fiction", "Read"} {
		assert.Contains(t, out, s)
	}
}
