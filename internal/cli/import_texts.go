package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/config"
	"github.com/mrlokans/readingtracker/internal/database"
	"github.com/mrlokans/readingtracker/internal/database/segments"
	"github.com/mrlokans/readingtracker/internal/entities"
	"github.com/mrlokans/readingtracker/internal/importer"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// ImportTextsCommand splits the plain-text files of catalog books into
// segments and stores them in the local database.
type ImportTextsCommand struct {
	TextsDir      string
	DatabasePath  string
	TotalSegments int
	BookID        string
	Verbose       bool
	DryRun        bool

	Catalog catalog.Catalog
	Out     io.Writer
}

func NewImportTextsCommand() *ImportTextsCommand {
	return &ImportTextsCommand{
		Catalog: catalog.Default(),
		Out:     os.Stdout,
	}
}

func (cmd *ImportTextsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)

	fs.StringVar(&cmd.TextsDir, "texts", "./texts", "Directory containing the book text files")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.TotalSegments, "segments", config.DefaultTotalSegments, "Number of segments to split each book into")
	fs.StringVar(&cmd.BookID, "book", "", "Import only this catalog book id")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Split the texts and report without writing to the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Split catalog books into reading segments and store them.\n\n")
		fmt.Fprintf(os.Stderr, "Expected files inside the texts directory:\n")
		for _, b := range catalog.Default().All() {
			fmt.Fprintf(os.Stderr, "  %-24s %s\n", b.ID, b.TextFile)
		}
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import -texts ./texts\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import -book little-women -segments 40 -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.TotalSegments < 1 {
		return fmt.Errorf("-segments must be at least 1, got %d", cmd.TotalSegments)
	}
	if cmd.BookID != "" {
		if _, ok := cmd.Catalog.Find(cmd.BookID); !ok {
			return fmt.Errorf("unknown book: %s", cmd.BookID)
		}
	}

	return nil
}

func (cmd *ImportTextsCommand) sources() []importer.Source {
	if cmd.BookID != "" {
		book, _ := cmd.Catalog.Find(cmd.BookID)
		return []importer.Source{importer.SourceForBook(book, cmd.TextsDir, cmd.TotalSegments)}
	}
	return importer.SourcesFromCatalog(cmd.Catalog, cmd.TextsDir, cmd.TotalSegments)
}

func (cmd *ImportTextsCommand) Run() error {
	out := cmd.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "Book Text Import")
	fmt.Fprintln(out, "================")

	if cmd.DryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
	}
	fmt.Fprintf(out, "Texts: %s\n", cmd.TextsDir)

	log := logger.Nop()
	if cmd.Verbose {
		var err error
		if log, err = logger.New("development"); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer log.Sync()
	}

	var store importer.Store = discardStore{}
	if !cmd.DryRun {
		absDBPath, err := filepath.Abs(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		fmt.Fprintf(out, "Database: %s\n", absDBPath)

		db, err := database.NewDatabase(absDBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		store = segments.NewRepository(db.DB)
	}

	imp := importer.New(store, log)
	sources := cmd.sources()

	var imported int
	var importErrors []string
	for _, src := range sources {
		result, err := imp.ImportBook(context.Background(), src)
		if err != nil {
			importErrors = append(importErrors, err.Error())
			fmt.Fprintf(out, "  [ERROR] %s: %v\n", src.BookID, err)
			continue
		}
		imported++
		fmt.Fprintf(out, "  [OK] %s: %d paragraphs -> %d segments\n", result.BookID, result.Paragraphs, result.Segments)
	}

	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Books imported: %d/%d\n", imported, len(sources))

	if len(importErrors) > 0 {
		return fmt.Errorf("%d of %d books failed to import", len(importErrors), len(sources))
	}
	if cmd.DryRun {
		fmt.Fprintln(out, "\nDry run complete. Use without -dry-run to import.")
	}
	return nil
}

// discardStore accepts every book without writing it; used by -dry-run.
type discardStore struct{}

func (discardStore) SaveBook(context.Context, *entities.BookRecord, []entities.BookSegment) error {
	return nil
}
