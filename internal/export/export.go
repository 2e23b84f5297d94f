// Package export renders the library for use outside the shell.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"

	"github.com/microcosm-cc/bluemonday"

	"bookshelf/internal/catalog"
	"bookshelf/internal/search"
)

const (
	FormatJSON = "json"
	FormatHTML = "html"
)

type summary struct {
	Total       int              `json:"total"`
	Read        int              `json:"read"`
	Unread      int              `json:"unread"`
	ReadPercent float64          `json:"read_percent"`
	Items       []search.BookDTO `json:"items"`
}

// JSON flattens the library into a summary with totals and items.
func JSON(books []catalog.Book) ([]byte, error) {
	st := catalog.ComputeStats(books)
	out := summary{
		Total:       st.Total,
		Read:        st.Read,
		Unread:      st.Unread(),
		ReadPercent: math.Round(st.Percent()*100) / 100,
		Items:       search.ToDTOs(books), // ensure [] not null
	}
	return json.MarshalIndent(out, "", "  ")
}

var (
	page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Personal Library</title>
<style>
body { background-color: #e3f2fd; font-family: sans-serif; }
h1 { color: #1976d2; }
.book { font-size: 18px; }
.read { color: green; }
.unread { color: #555; }
</style>
</head>
<body>
<h1>Your Library</h1>
{{range .}}<p class="book {{if .Read}}read{{else}}unread{{end}}"><b>{{.Title}}</b> by {{.Author}} ({{.Year}}) - {{.Genre}} - {{.Status}}</p>
{{else}}<p class="empty">Your library is empty!</p>
{{end}}
</body>
</html>
`))

	// inline markup users may put in titles and authors, e.g. <i>Dune</i>
	policy = bluemonday.UGCPolicy()
)

// htmlBook carries title and author as sanitized markup; everything else is
// escaped by the template.
type htmlBook struct {
	Title  template.HTML
	Author template.HTML
	Year   int
	Genre  string
	Read   bool
	Status string
}

// HTML renders one paragraph per book. Titles and authors may carry inline
// HTML; it is sanitized so only harmless formatting survives.
func HTML(books []catalog.Book) ([]byte, error) {
	rows := make([]htmlBook, 0, len(books))
	for _, b := range search.ToDTOs(books) {
		rows = append(rows, htmlBook{
			Title:  template.HTML(policy.Sanitize(b.Title)),
			Author: template.HTML(policy.Sanitize(b.Author)),
			Year:   b.Year,
			Genre:  b.Genre,
			Read:   b.Read,
			Status: b.Status,
		})
	}
	var out bytes.Buffer
	if err := page.Execute(&out, rows); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return out.Bytes(), nil
}

// Render dispatches on format.
func Render(format string, books []catalog.Book) ([]byte, error) {
	switch format {
	case FormatJSON:
		return JSON(books)
	case FormatHTML:
		return HTML(books)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
