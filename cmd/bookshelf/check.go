package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"bookshelf/internal/config"
	"bookshelf/internal/storage"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "check",
		Short:       "Show the effective config and validate the backing file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noLibrary: "true"},
	}
	cmd.RunE = a.run("check", func(ctx context.Context, args []string) error {
		a.out.Title("🔍 bookshelf check")

		a.out.Subheader("[1] Config")
		a.out.Printf("  file:      %s\n", config.Path(a.configPath))
		a.out.Printf("  library:   %s (%s)\n", a.cfg.Library.Path, a.cfg.Library.Driver)
		a.out.Printf("  log level: %s\n", a.cfg.Log.Level)
		if a.cfg.Metrics.Textfile != "" {
			a.out.Printf("  metrics:   %s\n", a.cfg.Metrics.Textfile)
		}
		if a.cfg.Metrics.PushgatewayURL != "" {
			a.out.Printf("  push:      %s\n", a.cfg.Metrics.PushgatewayURL)
		}

		a.out.Subheader("[2] Backing file")
		if _, err := os.Stat(a.cfg.Library.Path); errors.Is(err, fs.ErrNotExist) {
			a.out.Infof("%s does not exist yet; it is created on the first save.", a.cfg.Library.Path)
			return nil
		} else if err != nil {
			return err
		}
		if a.cfg.Library.Driver == storage.DriverSQLite {
			return checkSQLite(ctx, a)
		}

		problems, err := storage.ValidateFile(a.cfg.Library.Path)
		if err != nil {
			a.out.Errorf("%s is not valid JSON: %v", a.cfg.Library.Path, err)
			return reported(errCheckFailed)
		}
		if len(problems) > 0 {
			for _, p := range problems {
				a.out.Warnf("%s", p)
			}
			a.out.Errorf("%d problem(s) in %s", len(problems), a.cfg.Library.Path)
			return reported(errCheckFailed)
		}
		a.out.Successf("PASS. %s matches the book schema.", a.cfg.Library.Path)
		return nil
	})
	return cmd
}

func checkSQLite(ctx context.Context, a *app) error {
	db, err := storage.OpenSQLite(ctx, a.cfg.Library.Path)
	if err != nil {
		a.out.Errorf("%v", err)
		return reported(errCheckFailed)
	}
	defer db.Close()
	books, err := db.Load(ctx)
	if err != nil {
		a.out.Errorf("%v", err)
		return reported(errCheckFailed)
	}
	a.out.Successf("PASS. %s holds %s.", a.cfg.Library.Path, plural(len(books), "book"))
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
