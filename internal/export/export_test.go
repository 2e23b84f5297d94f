package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/catalog"
)

var books = []catalog.Book{
	{Title: "Dune", Author: "Herbert", Year: 1965, Genre: catalog.ScienceFiction, Read: true},
	{Title: "Emma", Author: "Austen", Year: 1815, Genre: catalog.Romance},
	{Title: "Emma", Author: "Austen", Year: 1815, Genre: catalog.Romance},
}

func TestJSON(t *testing.T) {
	out, err := JSON(books)
	require.NoError(t, err)

	var got struct {
		Total       int              `json:"total"`
		Read        int              `json:"read"`
		ReadPercent float64          `json:"read_percent"`
		Items       []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 1, got.Read)
	assert.Equal(t, 33.33, got.ReadPercent)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Read", got.Items[0]["status"])
}

func TestJSONEmpty(t *testing.T) {
	out, err := JSON(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"items": []`)
	assert.Contains(t, string(out), `"read_percent": 0`)
}

func TestHTML(t *testing.T) {
	out, err := HTML(books)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<p class="book read"><b>Dune</b> by Herbert (1965) - Science Fiction - Read</p>`)
	assert.Contains(t, s, `<b>Emma</b> by Austen (1815) - Romance - Unread`)
	assert.Contains(t, s, "<style>")
}

func TestHTMLSanitizesInlineMarkup(t *testing.T) {
	out, err := HTML([]catalog.Book{{
		Title:  `<i>Dune</i><script>alert(1)</script>`,
		Author: `<b onclick="steal()">Herbert</b> <img src=x onerror=alert(1)>`,
		Year:   1965,
		Genre:  catalog.ScienceFiction,
	}})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<b><i>Dune</i></b>")
	assert.Contains(t, s, "<b>Herbert</b>")
	assert.NotContains(t, s, "<script>")
	assert.NotContains(t, s, "alert(1)")
	assert.NotContains(t, s, "onclick")
	assert.NotContains(t, s, "onerror")
}

func TestHTMLPlainTextStaysText(t *testing.T) {
	out, err := HTML([]catalog.Book{{Title: "Tom & Jerry", Author: "A < B", Year: 2000, Genre: catalog.Fiction}})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<b>Tom &amp; Jerry</b> by A &lt; B")
}

func TestHTMLEmpty(t *testing.T) {
	out, err := HTML(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Your library is empty!")
}

func TestRender(t *testing.T) {
	_, err := Render("pdf", books)
	assert.Error(t, err)
	out, err := Render(FormatJSON, books)
	require.NoError(t, err)
	assert.True(t, json.Valid(out))
}
