// Package importer bulk-loads books from JSON, JSON Lines or CSV files.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/htmlindex"

	"bookshelf/internal/catalog"
	"bookshelf/internal/metrics"
)

const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
)

type Options struct {
	Format string
	// Charset of the input, e.g. windows-1251. Empty means UTF-8.
	Charset string
	// Progress receives the progress bar; nil hides it.
	Progress io.Writer
	Log      *logrus.Entry
}

// Rejection explains why a record was skipped. Record numbers start at 1.
type Rejection struct {
	Record int
	Reason string
}

type Result struct {
	Books    []catalog.Book
	Rejected []Rejection
}

// record mirrors a backing-file entry before validation.
type record struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Read   bool   `json:"read"`
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".txt":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("cannot detect format of %s, use --format", path)
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	if charset == "" {
		return input, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Read decodes r and validates every record the same way the add form does.
// Invalid records are rejected individually; a malformed container (broken
// JSON array, unreadable CSV) fails the whole import.
func Read(r io.Reader, opts Options) (*Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	r, err := charsetReader(opts.Charset, r)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	var rows []rowOrErr
	switch opts.Format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&raws); err != nil {
			return nil, fmt.Errorf("decode json array: %w", err)
		}
	case FormatJSONL:
		raws, err = splitLines(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("unknown import format %q", opts.Format)
	}
	if err != nil {
		return nil, err
	}
	if rows == nil {
		for _, raw := range raws {
			var rec record
			err := json.Unmarshal(raw, &rec)
			rows = append(rows, rowOrErr{rec: rec, err: err})
		}
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("📚 importing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		bar = progressbar.DefaultSilent(int64(len(rows)))
	}

	res := &Result{Books: []catalog.Book{}}
	for i, row := range rows {
		b, err := row.book()
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Record: i + 1, Reason: err.Error()})
			metrics.ImportRecordsTotal.WithLabelValues("rejected").Inc()
			log.WithField("record", i+1).WithError(err).Warn("import.rejected")
		} else {
			res.Books = append(res.Books, b)
			metrics.ImportRecordsTotal.WithLabelValues("accepted").Inc()
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return res, nil
}

type rowOrErr struct {
	rec record
	err error
}

func (r rowOrErr) book() (catalog.Book, error) {
	if r.err != nil {
		return catalog.Book{}, r.err
	}
	return catalog.NewBook(r.rec.Title, r.rec.Author, r.rec.Year, r.rec.Genre, r.rec.Read)
}

func splitLines(r io.Reader) ([]json.RawMessage, error) {
	var out []json.RawMessage
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		out = append(out, append(json.RawMessage(nil), line...))
	}
	return out, sc.Err()
}

var csvColumns = []string{"title", "author", "year", "genre", "read"}

func readCSV(r io.Reader) ([]rowOrErr, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range csvColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", c)
		}
	}

	rows := []rowOrErr{}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, csvRow(idx, fields))
	}
	return rows, nil
}

func csvRow(idx map[string]int, fields []string) rowOrErr {
	get := func(col string) string {
		if i := idx[col]; i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	year, err := strconv.Atoi(get("year"))
	if err != nil {
		return rowOrErr{err: fmt.Errorf("%w: %q", catalog.ErrInvalidYear, get("year"))}
	}
	read, err := parseRead(get("read"))
	if err != nil {
		return rowOrErr{err: err}
	}
	return rowOrErr{rec: record{
		Title:  get("title"),
		Author: get("author"),
		Year:   year,
		Genre:  get("genre"),
		Read:   read,
	}}
}

func parseRead(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "0", "false", "no", "n", "unread":
		return false, nil
	case "1", "true", "yes", "y", "read":
		return true, nil
	}
	return false, fmt.Errorf("bad read flag %q", s)
}
