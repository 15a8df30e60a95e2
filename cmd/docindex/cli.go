package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/build"
	dochttp "github.com/fwojciec/docindex/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Builder  *build.Builder
	Archives docindex.ArchiveFetcher
	Uploader docindex.Uploader

	// OpenIndex opens an existing index for querying. The returned closer
	// releases the underlying database.
	OpenIndex func(path string) (docindex.SearchService, io.Closer, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"DOCINDEX_VERBOSE" help:"Enable debug logging"`

	Build   BuildCmd   `cmd:"" help:"Build a search index from a Markdown documentation tree"`
	Search  SearchCmd  `cmd:"" help:"Query a built index"`
	Version VersionCmd `cmd:"" help:"Print the index schema version"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Output      string        `short:"o" default:"docs.db" env:"DOCINDEX_OUTPUT" help:"Path of the index file to write"`
	Root        string        `default:"doc" env:"DOCINDEX_ROOT" help:"Documentation root directory"`
	Concurrency int           `short:"c" default:"4" env:"DOCINDEX_CONCURRENCY" help:"Documents chunked in parallel"`
	Timeout     time.Duration `default:"5m" env:"DOCINDEX_TIMEOUT" help:"Timeout for download and upload requests"`

	Download      bool   `env:"DOCINDEX_DOWNLOAD" help:"Download the documentation archive instead of reading --root"`
	SourceVersion string `name:"version" env:"DOCINDEX_VERSION" help:"Source version to download"`
	BaseURL       string `name:"base-url" default:"${base_url}" env:"DOCINDEX_BASE_URL" help:"Repository URL archives are downloaded from"`

	Upload         bool   `env:"DOCINDEX_UPLOAD" help:"Upload the index to the package registry after building"`
	ProjectID      string `name:"project-id" env:"DOCINDEX_PROJECT_ID" help:"Registry project ID"`
	PackageName    string `name:"package-name" default:"docs-index" env:"DOCINDEX_PACKAGE_NAME" help:"Registry package name"`
	PackageVersion string `name:"package-version" env:"DOCINDEX_PACKAGE_VERSION" help:"Registry package version (defaults to --version)"`
	APIURL         string `name:"api-url" default:"${api_url}" env:"DOCINDEX_API_URL" help:"Registry API URL"`
	Token          string `env:"DOCINDEX_TOKEN" help:"Registry access token"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Index string   `arg:"" help:"Path to the index file"`
	Query []string `arg:"" help:"Search terms"`
	Limit int      `short:"n" default:"10" help:"Maximum number of results"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "docindex schema version %d\n", docindex.SchemaVersion)
	return nil
}

// vars are interpolated into CLI struct tags.
var vars = map[string]string{
	"base_url": dochttp.DefaultBaseURL,
	"api_url":  dochttp.DefaultAPIURL,
}

// describeError renders err for the operator, naming the failed build stage
// when known.
func describeError(err error) string {
	msg := docindex.ErrorMessage(err)
	if docindex.ErrorCode(err) == docindex.EINTERNAL {
		msg = err.Error()
	}

	var stageErr *build.Error
	if errors.As(err, &stageErr) {
		if docindex.ErrorCode(err) == docindex.EINTERNAL {
			msg = stageErr.Err.Error()
		}
		return fmt.Sprintf("%s failed: %s", stageErr.Stage, msg)
	}
	return msg
}
