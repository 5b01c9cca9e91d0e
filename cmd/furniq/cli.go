package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/fwojciec/furniq"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Terms    furniq.TermService
	Analyzer furniq.Analyzer
	Writer   furniq.ResultWriter

	// Stats describes the analyzer's dictionaries.
	Stats func() furniq.AnalyzerStats

	// Refresh reloads catalog terms into the analyzer.
	Refresh func(ctx context.Context) error

	// Lookup resolves a phrase against one category's dictionary.
	Lookup func(category furniq.Category, phrase string, n int) furniq.TermLookup

	// Dictionaries are the static tables in effect.
	Dictionaries map[furniq.Category]*furniq.Dictionary

	// LoadAnalyzer builds the analyzer when a command must not wait for it,
	// returning it with the function that reloads its catalog terms.
	LoadAnalyzer func(ctx context.Context) (furniq.Analyzer, func(context.Context) error, error)

	// Listener overrides the address serve listens on.
	Listener net.Listener
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug        bool   `help:"Enable debug logging" env:"FURNIQ_DEBUG"`
	Trace        bool   `help:"Include match details in results"`
	DB           string `name:"db" help:"Path to the local term database" env:"FURNIQ_DB"`
	DatabaseURL  string `name:"database-url" help:"Postgres DSN to load catalog terms from" env:"DATABASE_URL"`
	Dictionaries string             `help:"Directory of YAML dictionaries overriding the built-in tables" env:"FURNIQ_DICTIONARIES" type:"existingdir"`
	Threshold    map[string]float64 `help:"Minimum score of a fuzzy algorithm, e.g. Levenshtein=0.8 (repeatable)"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze one or more search queries"`
	Batch   BatchCmd   `cmd:"" help:"Analyze queries from a file and save the results"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP analysis API"`
	Terms   TermsCmd   `cmd:"" help:"Manage local brand and product terms"`
	Stats   StatsCmd   `cmd:"" help:"Show dictionary statistics"`
	Lookup  LookupCmd  `cmd:"" help:"Show how a phrase resolves against one dictionary"`

	// Named apart from the --dictionaries flag field.
	Dicts DictionariesCmd `cmd:"" name:"dictionaries" help:"Manage dictionary tables"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Texts []string `arg:"" name:"text" help:"Queries to analyze"`
	JSON  bool     `help:"Print results as JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string `arg:"" help:"File with one query per line, or - for stdin"`
	Out         string `short:"o" default:"results" help:"Output directory"`
	Name        string `help:"Base name of the result files (default: timestamped)"`
	Concurrency int    `short:"c" default:"0" help:"Concurrent analyses (default: GOMAXPROCS)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port    int           `default:"3000" help:"Port to listen on" env:"PORT"`
	RPS     float64       `name:"rps" default:"0" help:"Requests per second allowed per client (0 disables limiting)"`
	Burst   int           `default:"10" help:"Burst size for per-client limiting"`
	Refresh time.Duration `default:"0s" help:"Interval between catalog term reloads (0 disables)"`
}

// TermsCmd groups the term management subcommands.
type TermsCmd struct {
	Add    TermsAddCmd    `cmd:"" help:"Add a term"`
	List   TermsListCmd   `cmd:"" help:"List terms"`
	Delete TermsDeleteCmd `cmd:"" help:"Delete a term"`
}

// TermsAddCmd is the "terms add" subcommand.
type TermsAddCmd struct {
	Category string `arg:"" help:"Brand or ProductName"`
	Name     string `arg:"" help:"Term to add"`
}

// TermsListCmd is the "terms list" subcommand.
type TermsListCmd struct {
	Category string `help:"Only list terms of this category"`
	Limit    int    `default:"0" help:"Maximum number of terms (0 lists all)"`
	Offset   int    `default:"0" help:"Number of terms to skip"`
}

// TermsDeleteCmd is the "terms delete" subcommand.
type TermsDeleteCmd struct {
	ID string `arg:"" help:"Term ID"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	JSON bool `help:"Print statistics as JSON"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Category string `arg:"" help:"Category to search, e.g. ProductType"`
	Phrase   string `arg:"" help:"Phrase to look up"`
	Top      int    `short:"n" default:"3" help:"Number of fuzzy candidates"`
	JSON     bool   `help:"Print the lookup as JSON"`
}

// DictionariesCmd groups the dictionary subcommands.
type DictionariesCmd struct {
	Export DictionariesExportCmd `cmd:"" help:"Write the dictionary tables in effect as YAML"`
}

// DictionariesExportCmd is the "dictionaries export" subcommand.
type DictionariesExportCmd struct {
	Dir string `arg:"" help:"Directory to write the tables to"`
}
