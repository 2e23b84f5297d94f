package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"bookshelf/internal/catalog"
	"bookshelf/internal/export"
	"bookshelf/internal/importer"
	"bookshelf/internal/logger"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = pretty.Pretty(data)
	if isTerminal(w) {
		data = pretty.Color(data, nil)
	}
	_, err = w.Write(data)
	return err
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func newExportCmd(a *app) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the library as a JSON summary or an HTML page",
		Example: `  bookshelf export --format html --out library.html
  bookshelf export --format json | jq .read_percent`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.run("export", func(ctx context.Context, args []string) error {
		data, err := export.Render(format, a.lib.Books())
		if err != nil {
			return err
		}
		if out == "" {
			_, err = a.stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		a.out.Successf("Exported %d book(s) to %s", a.lib.Len(), out)
		return nil
	})
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "Output format: json or html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var format, charset string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add books from a JSON, JSON Lines or CSV file",
		Long: `Import books in bulk. Every record is validated like the add form;
invalid records are reported and skipped, the rest are added in one save.
CSV files need a header row with title, author, year, genre and read columns.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.RunE = a.run("import", func(ctx context.Context, args []string) error {
		path := args[0]
		if format == "" {
			f, err := importer.DetectFormat(path)
			if err != nil {
				return err
			}
			format = f
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		opts := importer.Options{
			Format:  format,
			Charset: charset,
			Log:     logger.For(ctx).WithField("file", path),
		}
		if !quiet {
			opts.Progress = a.stderr
		}
		res, err := importer.Read(f, opts)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		for _, r := range res.Rejected {
			a.out.Warnf("record %d skipped: %s", r.Record, r.Reason)
		}
		if len(res.Books) == 0 {
			a.out.Infof("Nothing to import.")
			if len(res.Rejected) > 0 {
				return reported(catalog.ErrNoResults)
			}
			return nil
		}
		if err := a.lib.AddAll(ctx, res.Books); err != nil {
			return err
		}
		a.out.Successf("Imported %d book(s), skipped %d.", len(res.Books), len(res.Rejected))
		return nil
	})
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: "+strings.Join([]string{importer.FormatJSON, importer.FormatJSONL, importer.FormatCSV}, ", ")+" (default: from extension)")
	cmd.Flags().StringVar(&charset, "charset", "", "Input charset, e.g. windows-1251 (default: UTF-8)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}
