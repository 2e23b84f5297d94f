// Package ui renders shell output: headers, status messages and book tables.
package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"bookshelf/internal/catalog"
	"bookshelf/internal/search"
)

// Palette is the blue library theme, also used by the HTML export.
var (
	Primary = lipgloss.Color("#1976d2")
	Accent  = lipgloss.Color("#64b5f6")
	Success = lipgloss.Color("#2e7d32")
	Warning = lipgloss.Color("#f9a825")
	Info    = lipgloss.Color("#0288d1")
	Danger  = lipgloss.Color("#e53935")
)

type Styles struct {
	Title     lipgloss.Style
	Subheader lipgloss.Style
	Success   lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Read      lipgloss.Style
	Unread    lipgloss.Style
	Header    lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer, color bool) Styles {
	if !color {
		plain := r.NewStyle()
		return Styles{
			Title: plain.Bold(true), Subheader: plain.Bold(true),
			Success: plain, Info: plain, Warning: plain, Error: plain,
			Read: plain, Unread: plain, Header: plain.Bold(true),
		}
	}
	return Styles{
		Title:     r.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Subheader: r.NewStyle().Bold(true).Foreground(Primary),
		Success:   r.NewStyle().Foreground(Success),
		Info:      r.NewStyle().Foreground(Info),
		Warning:   r.NewStyle().Foreground(Warning),
		Error:     r.NewStyle().Bold(true).Foreground(Danger),
		Read:      r.NewStyle().Foreground(Success),
		Unread:    r.NewStyle().Foreground(Accent),
		Header:    r.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1),
	}
}

// Printer writes styled output for the shell and one-shot commands.
type Printer struct {
	w io.Writer
	s Styles
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, s: NewStyles(lipgloss.NewRenderer(w), color)}
}

func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) line(st lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, st.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Title(s string)     { p.line(p.s.Title, "%s", s) }
func (p *Printer) Subheader(s string) { p.line(p.s.Subheader, "%s", s) }

func (p *Printer) Successf(format string, args ...any) { p.line(p.s.Success, "🎉 "+format, args...) }
func (p *Printer) Infof(format string, args ...any)    { p.line(p.s.Info, "📭 "+format, args...) }
func (p *Printer) Warnf(format string, args ...any)    { p.line(p.s.Warning, "⚠️  "+format, args...) }
func (p *Printer) Errorf(format string, args ...any)   { p.line(p.s.Error, "❌ "+format, args...) }

func (p *Printer) Printf(format string, args ...any) { fmt.Fprintf(p.w, format, args...) }

// BookLine prints "Title by Author (Year) - Genre - Read".
func (p *Printer) BookLine(b search.BookDTO) {
	st := p.s.Unread
	mark := "❌"
	if b.Read {
		st, mark = p.s.Read, "✅"
	}
	fmt.Fprintf(p.w, "%s by %s (%d) - %s - %s\n",
		p.s.Subheader.Render(b.Title), b.Author, b.Year, b.Genre, st.Render(mark+" "+b.Status))
}

// Short prints "Title by Author" as the statistics lists do.
func (p *Printer) Short(b search.BookDTO) {
	fmt.Fprintf(p.w, "📖 %s by %s\n", b.Title, b.Author)
}

// Table prints books as a bordered table.
func (p *Printer) Table(books []search.BookDTO) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.s.Header.UnsetPadding().UnsetBold()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.s.Header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("#", "Title", "Author", "Year", "Genre", "Status")
	for i, b := range books {
		t.Row(strconv.Itoa(i+1), b.Title, b.Author, strconv.Itoa(b.Year), b.Genre, b.Status)
	}
	fmt.Fprintln(p.w, t.String())
}

// Stats prints the statistics screen header lines.
func (p *Printer) Stats(st catalog.Stats) {
	fmt.Fprintf(p.w, "📚 Total Books: %d\n", st.Total)
	fmt.Fprintf(p.w, "📖 Books Read: %d (%s)\n", st.Read, st.PercentString())
}
