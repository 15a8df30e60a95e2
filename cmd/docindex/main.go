package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/build"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/goldmark"
	dochttp "github.com/fwojciec/docindex/http"
	docslog "github.com/fwojciec/docindex/slog"
	"github.com/fwojciec/docindex/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Logger is created per invocation by Run unless set beforehand.
	Logger *slog.Logger
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Errors are reported on
// stderr before they are returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docindex"),
		kong.Description("Build a local full-text search index from Markdown documentation"),
		kong.Writers(stdout, stderr),
		kong.Vars(vars),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := fmt.Errorf("no command specified. Run 'docindex --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	logger := m.Logger
	if logger == nil {
		level := slog.LevelWarn
		if cli.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}
	deps.Logger = logger

	switch strings.Fields(kongCtx.Command())[0] {
	case "build":
		deps.Builder = &build.Builder{
			Loader:      docslog.NewLoggingLoader(fs.NewLoader(), logger),
			Chunker:     goldmark.NewChunker(),
			Index:       docslog.NewLoggingIndexWriter(sqlite.NewIndexWriter(), logger),
			Logger:      logger,
			Concurrency: cli.Build.Concurrency,
		}
		if cli.Build.Download {
			fetcher := dochttp.NewArchiveFetcher(
				dochttp.WithBaseURL(cli.Build.BaseURL),
				dochttp.WithTimeout(cli.Build.Timeout),
			)
			deps.Archives = docslog.NewLoggingArchiveFetcher(fetcher, logger)
		}
		if cli.Build.Upload {
			uploader := dochttp.NewUploader(cli.Build.APIURL, cli.Build.Token, cli.Build.Timeout)
			deps.Uploader = docslog.NewLoggingUploader(uploader, logger)
		}
	case "search":
		deps.OpenIndex = func(path string) (docindex.SearchService, io.Closer, error) {
			db := sqlite.NewDB(path)
			if err := db.Open(); err != nil {
				return nil, nil, err
			}
			return docslog.NewLoggingSearchService(sqlite.NewSearchService(db), logger), db, nil
		}
	}

	return kongCtx.Run(deps)
}
